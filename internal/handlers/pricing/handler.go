package pricing

import (
	"net/http"

	"mariachi/infras/otel"
	"mariachi/internal/domains/pricing/model/dto"
	"mariachi/internal/domains/pricing/service"
	"mariachi/shared/constant"
	"mariachi/shared/validator"
	"mariachi/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Pricing
	otel    otel.Otel
}

func New(service service.Pricing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/pricing", func(routerGroup chi.Router) {
		routerGroup.Post("/quote", handler.Quote)
	})
}

// Quote prices a booking without storing it.
// @Summary Preview a price
// @Description Returns the calculated total and its breakdown. A manual total overrides the result.
// @Tags Pricing
// @Accept json
// @Produce json
// @Param request body dto.QuoteRequest true "Pricing inputs"
// @Success 200 {object} response.Data[dto.QuoteResponse] "Price breakdown"
// @Failure 400 {object} response.Error
// @Router /v1/pricing/quote [post]
func (handler *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Quote")
	defer scope.End()

	req := dto.QuoteRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Quote(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to quote price")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

package availability

import (
	"net/http"

	"mariachi/infras/otel"
	"mariachi/internal/domains/availability/service"
	"mariachi/shared/constant"
	"mariachi/shared/validator"
	"mariachi/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Get("/grid", handler.GetGrid)
		routerGroup.Get("/{date}", handler.GetAvailableHours)
		routerGroup.Get("/{date}/status", handler.GetDateStatus)
	})
}

// GetGrid lists the bookable hours of a day.
// @Summary Get the hour grid
// @Tags Availability
// @Produce json
// @Success 200 {object} response.Data[dto.GridResponse] "Hour grid"
// @Router /v1/availability/grid [get]
func (handler *Handler) GetGrid(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGrid")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.service.Grid(ctx))
}

// GetAvailableHours lists the free hours of a date.
// @Summary Get available hours
// @Description Hours of the grid not taken by a block, reservation, pending quotation or rehearsal.
// @Tags Availability
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.AvailableHours] "Available hours"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/{date} [get]
func (handler *Handler) GetAvailableHours(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableHours")
	defer scope.End()

	date := chi.URLParam(r, constant.RequestParamDate)

	if err := validator.ValidateVar(date, "required,date"); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	hours, err := handler.service.GetAvailableHours(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("date", date).Msg("failed to get available hours")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, hours)
}

// GetDateStatus reports whether a date is blocked.
// @Summary Get the block status of a date
// @Tags Availability
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.DateStatus] "Date status"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/{date}/status [get]
func (handler *Handler) GetDateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDateStatus")
	defer scope.End()

	date := chi.URLParam(r, constant.RequestParamDate)

	if err := validator.ValidateVar(date, "required,date"); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	status, err := handler.service.CheckDateStatus(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("date", date).Msg("failed to check date status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, status)
}

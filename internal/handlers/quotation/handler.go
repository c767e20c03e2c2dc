package quotation

import (
	"net/http"

	"mariachi/infras/otel"
	availability "mariachi/internal/domains/availability/service"
	"mariachi/internal/domains/quotation/model"
	"mariachi/internal/domains/quotation/model/dto"
	"mariachi/internal/domains/quotation/service"
	"mariachi/shared"
	"mariachi/shared/constant"
	gDto "mariachi/shared/dto"
	"mariachi/shared/validator"
	"mariachi/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Quotation
	otel    otel.Otel
}

func New(service service.Quotation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/quotations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateQuotation)
		routerGroup.Get("/", handler.GetQuotations)
		routerGroup.Get("/{id}", handler.GetQuotationByID)
		routerGroup.Delete("/{id}", handler.DeleteQuotation)
		routerGroup.Post("/{id}/cancel", handler.CancelQuotation)
		routerGroup.Post("/{id}/convert", handler.ConvertQuotation)
	})
}

// CreateQuotation holds an hour range while the client decides.
// @Summary Create a quotation
// @Description Priced by duration. The range stays occupied while the quotation is En Espera.
// @Tags Quotation
// @Accept json
// @Produce json
// @Param request body dto.CreateQuotationRequest true "Quotation"
// @Success 201 {object} response.Data[dto.QuotationResponse] "Quotation created"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/quotations [post]
// @Security BearerAuth
func (handler *Handler) CreateQuotation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateQuotation")
	defer scope.End()

	req := dto.CreateQuotationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	quotation, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		if availability.IsRejection(err) {
			log.Info().Err(err).Msg("quotation refused")
		} else {
			log.Error().Err(err).Msg("failed to create quotation")
		}

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Quotation created successfully by user " + shared.UserFromContext(ctx))

	response.WithJSON(w, http.StatusCreated, quotation)
}

// GetQuotations lists quotations.
// @Summary Get all quotations
// @Tags Quotation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "En Espera, Convertida or Anulada"
// @Param event_date query string false "Event date (YYYY-MM-DD)"
// @Param client_id query string false "Client ID"
// @Success 200 {object} response.Data[dto.GetQuotationsResponse] "List of quotations"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/quotations [get]
// @Security BearerAuth
func (handler *Handler) GetQuotations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetQuotations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r)

	query := r.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if date := query.Get(model.FieldEventDate); date != constant.Empty {
		if err := validator.ValidateVar(date, "date"); err != nil {
			response.WithError(w, err)

			return
		}
	}

	for _, field := range []string{model.FieldStatus, model.FieldZone, model.FieldEventDate, model.FieldClientID} {
		filterGroup.AddEqIfPresent(field, model.TableName, query.Get(field))
	}

	quotations, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get quotations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Quotations retrieved successfully")

	response.WithJSON(w, http.StatusOK, quotations)
}

// GetQuotationByID retrieves a quotation.
// @Summary Get a quotation by ID
// @Tags Quotation
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} response.Data[dto.QuotationResponse] "Quotation details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/quotations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetQuotationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetQuotationByID")
	defer scope.End()

	quotation, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get quotation by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, quotation)
}

// CancelQuotation releases the range of a pending quotation.
// @Summary Cancel a quotation
// @Tags Quotation
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} response.Message "Quotation cancelled successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/quotations/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelQuotation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelQuotation")
	defer scope.End()

	if err := handler.service.Cancel(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel quotation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Quotation cancelled successfully by user " + shared.UserFromContext(ctx))

	response.WithMessage(w, http.StatusOK, "Quotation cancelled successfully")
}

// ConvertQuotation turns a pending quotation into a reservation at its start time.
// @Summary Convert a quotation
// @Description The quotation is marked Convertida only if the reservation passes validation. On rejection nothing changes.
// @Tags Quotation
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 201 {object} response.Data[dto.ConvertResponse] "Quotation converted"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/quotations/{id}/convert [post]
// @Security BearerAuth
func (handler *Handler) ConvertQuotation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConvertQuotation")
	defer scope.End()

	res, err := handler.service.Convert(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		if availability.IsRejection(err) {
			log.Info().Err(err).Msg("conversion refused, quotation kept")
		} else {
			log.Error().Err(err).Msg("failed to convert quotation")
		}

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Quotation converted successfully by user " + shared.UserFromContext(ctx))

	response.WithJSON(w, http.StatusCreated, res)
}

// DeleteQuotation removes a quotation.
// @Summary Delete a quotation
// @Tags Quotation
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} response.Message "Quotation deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/quotations/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteQuotation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteQuotation")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete quotation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Quotation deleted successfully by user " + shared.UserFromContext(ctx))

	response.WithMessage(w, http.StatusOK, "Quotation deleted successfully")
}

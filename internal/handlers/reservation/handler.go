package reservation

import (
	"net/http"

	"mariachi/infras/otel"
	availability "mariachi/internal/domains/availability/service"
	"mariachi/internal/domains/reservation/model"
	"mariachi/internal/domains/reservation/model/dto"
	"mariachi/internal/domains/reservation/service"
	"mariachi/shared"
	"mariachi/shared/constant"
	gDto "mariachi/shared/dto"
	"mariachi/shared/validator"
	"mariachi/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.Get("/", handler.GetReservations)
		routerGroup.Post("/sweep", handler.SweepReservations)
		routerGroup.Get("/{id}", handler.GetReservationByID)
		routerGroup.Patch("/{id}", handler.UpdateReservation)
		routerGroup.Delete("/{id}", handler.DeleteReservation)
		routerGroup.Post("/{id}/payments", handler.AddPayment)
		routerGroup.Post("/{id}/finalize", handler.FinalizeReservation)
		routerGroup.Post("/{id}/cancel", handler.CancelReservation)
	})
}

// CreateReservation books a one hour performance.
// @Summary Create a reservation
// @Description Checks the slot against blocks, reservations, pending quotations and rehearsals, then prices and stores it as Pendiente.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Reservation"
// @Success 201 {object} response.Data[dto.ReservationResponse] "Reservation created"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [post]
// @Security BearerAuth
func (handler *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := dto.CreateReservationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		if availability.IsRejection(err) {
			log.Info().Err(err).Msg("reservation refused")
		} else {
			log.Error().Err(err).Msg("failed to create reservation")
		}

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation created successfully by user " + shared.UserFromContext(ctx))

	response.WithJSON(w, http.StatusCreated, reservation)
}

// GetReservations lists reservations. Reservations whose event has passed are finalized first.
// @Summary Get all reservations
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Pendiente, Confirmado, Finalizado or Anulado"
// @Param zone query string false "Urbana or Rural"
// @Param event_date query string false "Event date (YYYY-MM-DD)"
// @Param client_id query string false "Client ID"
// @Success 200 {object} response.Data[dto.GetReservationsResponse] "List of reservations"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [get]
// @Security BearerAuth
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
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

	reservations, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservations retrieved successfully")

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetReservationByID retrieves a reservation with its payments.
// @Summary Get a reservation by ID
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.ReservationResponse] "Reservation details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	reservation, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservation by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, reservation)
}

// UpdateReservation edits a reservation that is still pending or confirmed.
// @Summary Update a reservation
// @Description Changing the zone or the repertoire reprices the reservation unless a total is given.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.UpdateReservationRequest true "Reservation fields"
// @Success 200 {object} response.Data[dto.ReservationResponse] "Reservation updated"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReservation")
	defer scope.End()

	req := dto.UpdateReservationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation updated successfully by user " + shared.UserFromContext(ctx))

	response.WithJSON(w, http.StatusOK, reservation)
}

// AddPayment records a payment against the outstanding balance.
// @Summary Add a payment
// @Description A pending reservation is confirmed once half of the total is paid.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.AddPaymentRequest true "Payment"
// @Success 201 {object} response.Data[dto.ReservationResponse] "Payment recorded"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id}/payments [post]
// @Security BearerAuth
func (handler *Handler) AddPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddPayment")
	defer scope.End()

	req := dto.AddPaymentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.AddPayment(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add payment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment added successfully by user " + shared.UserFromContext(ctx))

	response.WithJSON(w, http.StatusCreated, reservation)
}

// FinalizeReservation closes a reservation by hand.
// @Summary Finalize a reservation
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Message "Reservation finalized successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/reservations/{id}/finalize [post]
// @Security BearerAuth
func (handler *Handler) FinalizeReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".FinalizeReservation")
	defer scope.End()

	if err := handler.service.Finalize(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to finalize reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation finalized successfully by user " + shared.UserFromContext(ctx))

	response.WithMessage(w, http.StatusOK, "Reservation finalized successfully")
}

// CancelReservation annuls a reservation and frees its slot.
// @Summary Cancel a reservation
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Message "Reservation cancelled successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/reservations/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelReservation")
	defer scope.End()

	if err := handler.service.Cancel(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation cancelled successfully by user " + shared.UserFromContext(ctx))

	response.WithMessage(w, http.StatusOK, "Reservation cancelled successfully")
}

// DeleteReservation removes a reservation and its payments.
// @Summary Delete a reservation
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Message "Reservation deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReservation")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation deleted successfully by user " + shared.UserFromContext(ctx))

	response.WithMessage(w, http.StatusOK, "Reservation deleted successfully")
}

// SweepReservations finalizes every active reservation whose event has passed.
// @Summary Run the lifecycle sweep
// @Tags Reservation
// @Produce json
// @Success 200 {object} response.Data[dto.SweepResponse] "Finalized reservations"
// @Failure 500 {object} response.Error
// @Router /v1/reservations/sweep [post]
// @Security BearerAuth
func (handler *Handler) SweepReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SweepReservations")
	defer scope.End()

	res, err := handler.service.Sweep(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to sweep reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

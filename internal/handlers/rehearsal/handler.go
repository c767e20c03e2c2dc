package rehearsal

import (
	"net/http"

	"mariachi/infras/otel"
	availability "mariachi/internal/domains/availability/service"
	"mariachi/internal/domains/rehearsal/model"
	"mariachi/internal/domains/rehearsal/model/dto"
	"mariachi/internal/domains/rehearsal/service"
	"mariachi/shared"
	"mariachi/shared/constant"
	gDto "mariachi/shared/dto"
	"mariachi/shared/validator"
	"mariachi/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Rehearsal
	otel    otel.Otel
}

func New(service service.Rehearsal, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rehearsals", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRehearsal)
		routerGroup.Get("/", handler.GetRehearsals)
		routerGroup.Get("/{id}", handler.GetRehearsalByID)
		routerGroup.Patch("/{id}", handler.UpdateRehearsal)
		routerGroup.Delete("/{id}", handler.DeleteRehearsal)
		routerGroup.Post("/{id}/complete", handler.CompleteRehearsal)
	})
}

// CreateRehearsal schedules a one hour rehearsal.
// @Summary Create a rehearsal
// @Tags Rehearsal
// @Accept json
// @Produce json
// @Param request body dto.CreateRehearsalRequest true "Rehearsal"
// @Success 201 {object} response.Data[dto.RehearsalResponse] "Rehearsal created"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rehearsals [post]
// @Security BearerAuth
func (handler *Handler) CreateRehearsal(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRehearsal")
	defer scope.End()

	req := dto.CreateRehearsalRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	rehearsal, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		if availability.IsRejection(err) {
			log.Info().Err(err).Msg("rehearsal refused")
		} else {
			log.Error().Err(err).Msg("failed to create rehearsal")
		}

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rehearsal created successfully by user " + shared.UserFromContext(ctx))

	response.WithJSON(w, http.StatusCreated, rehearsal)
}

// GetRehearsals lists rehearsals.
// @Summary Get all rehearsals
// @Tags Rehearsal
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Rehearsal status"
// @Param rehearsal_date query string false "Rehearsal date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetRehearsalsResponse] "List of rehearsals"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rehearsals [get]
// @Security BearerAuth
func (handler *Handler) GetRehearsals(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRehearsals")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r)

	query := r.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if date := query.Get(model.FieldDate); date != constant.Empty {
		if err := validator.ValidateVar(date, "date"); err != nil {
			response.WithError(w, err)

			return
		}
	}

	filterGroup.AddEqIfPresent(model.FieldStatus, model.TableName, query.Get(model.FieldStatus))
	filterGroup.AddEqIfPresent(model.FieldDate, model.TableName, query.Get(model.FieldDate))

	rehearsals, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rehearsals")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rehearsals)
}

// GetRehearsalByID retrieves a rehearsal.
// @Summary Get a rehearsal by ID
// @Tags Rehearsal
// @Produce json
// @Param id path string true "Rehearsal ID"
// @Success 200 {object} response.Data[dto.RehearsalResponse] "Rehearsal details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rehearsals/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRehearsalByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRehearsalByID")
	defer scope.End()

	rehearsal, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rehearsal by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rehearsal)
}

// UpdateRehearsal edits the title, location, notes or repertoire of a rehearsal.
// @Summary Update a rehearsal
// @Tags Rehearsal
// @Accept json
// @Produce json
// @Param id path string true "Rehearsal ID"
// @Param request body dto.UpdateRehearsalRequest true "Rehearsal fields"
// @Success 200 {object} response.Message "Rehearsal updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/rehearsals/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRehearsal(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRehearsal")
	defer scope.End()

	req := dto.UpdateRehearsalRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update rehearsal")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rehearsal updated successfully by user " + shared.UserFromContext(ctx))

	response.WithMessage(w, http.StatusOK, "Rehearsal updated successfully")
}

// CompleteRehearsal marks a scheduled rehearsal as held.
// @Summary Complete a rehearsal
// @Tags Rehearsal
// @Produce json
// @Param id path string true "Rehearsal ID"
// @Success 200 {object} response.Message "Rehearsal completed successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/rehearsals/{id}/complete [post]
// @Security BearerAuth
func (handler *Handler) CompleteRehearsal(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CompleteRehearsal")
	defer scope.End()

	if err := handler.service.Complete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to complete rehearsal")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Rehearsal completed successfully")
}

// DeleteRehearsal removes a rehearsal.
// @Summary Delete a rehearsal
// @Tags Rehearsal
// @Produce json
// @Param id path string true "Rehearsal ID"
// @Success 200 {object} response.Message "Rehearsal deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rehearsals/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRehearsal(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRehearsal")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete rehearsal")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rehearsal deleted successfully by user " + shared.UserFromContext(ctx))

	response.WithMessage(w, http.StatusOK, "Rehearsal deleted successfully")
}

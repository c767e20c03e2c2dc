package block

import (
	"net/http"

	"mariachi/infras/otel"
	"mariachi/internal/domains/block/model"
	"mariachi/internal/domains/block/model/dto"
	"mariachi/internal/domains/block/repository"
	"mariachi/internal/domains/block/service"
	"mariachi/shared"
	"mariachi/shared/constant"
	gDto "mariachi/shared/dto"
	"mariachi/shared/validator"
	"mariachi/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Block
	otel    otel.Otel
}

func New(service service.Block, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/blocks", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBlock)
		routerGroup.Get("/", handler.GetBlocks)
		routerGroup.Get("/{id}", handler.GetBlockByID)
		routerGroup.Patch("/{id}/active", handler.SetBlockActive)
		routerGroup.Delete("/{id}", handler.DeleteBlock)
	})
}

// CreateBlock closes a date, a date range or an hour range of the calendar.
// @Summary Create a calendar block
// @Description Create a FULL_DATE, DATE_RANGE or TIME_RANGE block.
// @Tags Block
// @Accept json
// @Produce json
// @Param request body dto.CreateBlockRequest true "Block"
// @Success 201 {object} response.Data[dto.BlockResponse] "Block created"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blocks [post]
// @Security BearerAuth
func (handler *Handler) CreateBlock(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBlock")
	defer scope.End()

	req := dto.CreateBlockRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	block, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create block")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Block created successfully by user " + shared.UserFromContext(ctx))

	response.WithJSON(writer, http.StatusCreated, block)
}

// GetBlocks lists calendar blocks.
// @Summary Get all calendar blocks
// @Description Retrieve blocks, optionally filtered by type, active flag or a covered date.
// @Tags Block
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param type query string false "FULL_DATE, DATE_RANGE or TIME_RANGE"
// @Param is_active query boolean false "Filter by active flag"
// @Param date query string false "Only blocks covering this date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetBlocksResponse] "List of blocks"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blocks [get]
// @Security BearerAuth
func (handler *Handler) GetBlocks(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBlocks")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r)

	query := r.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	filterGroup.AddEqIfPresent(model.FieldType, model.TableName, query.Get(model.FieldType))

	filterGroup.AddEqIfPresent(model.FieldActive, model.TableName, shared.ConvertStringToBool(query.Get(model.FieldActive)))

	if date := query.Get(constant.RequestParamDate); date != constant.Empty {
		if err := validator.ValidateVar(date, "date"); err != nil {
			response.WithError(w, err)

			return
		}

		filterGroup.Filters = append(filterGroup.Filters, repository.SpanFilter(date))
	}

	blocks, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get blocks")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Blocks retrieved successfully")

	response.WithJSON(w, http.StatusOK, blocks)
}

// GetBlockByID retrieves a calendar block.
// @Summary Get a calendar block by ID
// @Tags Block
// @Produce json
// @Param id path string true "Block ID"
// @Success 200 {object} response.Data[dto.BlockResponse] "Block details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blocks/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBlockByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBlockByID")
	defer scope.End()

	block, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get block by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, block)
}

// SetBlockActive activates or deactivates a calendar block.
// @Summary Toggle a calendar block
// @Tags Block
// @Accept json
// @Produce json
// @Param id path string true "Block ID"
// @Param request body dto.SetActiveRequest true "Active flag"
// @Success 200 {object} response.Message "Block updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/blocks/{id}/active [patch]
// @Security BearerAuth
func (handler *Handler) SetBlockActive(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetBlockActive")
	defer scope.End()

	req := dto.SetActiveRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SetActive(ctx, chi.URLParam(r, constant.RequestParamID), *req.Active); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to toggle block")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Block updated successfully by user " + shared.UserFromContext(ctx))

	response.WithMessage(w, http.StatusOK, "Block updated successfully")
}

// DeleteBlock removes a calendar block.
// @Summary Delete a calendar block
// @Tags Block
// @Produce json
// @Param id path string true "Block ID"
// @Success 200 {object} response.Message "Block deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blocks/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBlock")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete block")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Block deleted successfully by user " + shared.UserFromContext(ctx))

	response.WithMessage(w, http.StatusOK, "Block deleted successfully")
}

package service

import (
	"context"
	"fmt"

	"mariachi/config"
	"mariachi/infras/otel"
	"mariachi/internal/domains/block/model"
	"mariachi/internal/domains/block/model/dto"
	"mariachi/internal/domains/block/repository"
	"mariachi/shared"
	"mariachi/shared/cache"
	"mariachi/shared/constant"
	gDto "mariachi/shared/dto"
	"mariachi/shared/failure"
	"mariachi/shared/slot"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBlock    = "block:get"
	cacheGetAllBlock = "block:gets"
	cacheCountBlock  = "block:count"
)

type Block interface {
	Create(ctx context.Context, req dto.CreateBlockRequest) (dto.BlockResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBlocksResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BlockResponse, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Block
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Block, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Block {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// normalize fills the implied end date and enforces the per-type date and hour rules.
func normalize(req *dto.CreateBlockRequest) error {
	switch req.Type {
	case model.TypeFullDate:
		req.EndDate = req.StartDate
	case model.TypeDateRange:
		if req.EndDate == constant.Empty {
			req.EndDate = req.StartDate
		}
	case model.TypeTimeRange:
		if req.EndDate == constant.Empty {
			req.EndDate = req.StartDate
		}

		if req.EndDate != req.StartDate {
			return failure.BadRequestFromString("a time range block must start and end on the same date") // nolint:wrapcheck
		}

		start, err := slot.Parse(req.StartTime)
		if err != nil {
			return failure.BadRequestFromString("start_time is required for a time range block") // nolint:wrapcheck
		}

		end, err := slot.Parse(req.EndTime)
		if err != nil {
			return failure.BadRequestFromString("end_time is required for a time range block") // nolint:wrapcheck
		}

		if end == 0 {
			end = slot.HoursPerDay
		}

		if start >= end {
			return failure.BadRequestFromString("start_time must be before end_time") // nolint:wrapcheck
		}
	}

	if req.StartDate > req.EndDate {
		return failure.BadRequestFromString("start_date must not be after end_date") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBlockRequest) (res dto.BlockResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = normalize(&req); err != nil {
		return res, err
	}

	block := req.ToModel(shared.UserFromContext(ctx))

	if err = s.repo.Insert(ctx, block); err != nil {
		log.Error().Err(err).Msg("failed to insert calendar block")

		return res, fmt.Errorf("failed to insert calendar block: %w", err)
	}

	s.invalidate(ctx, constant.Empty)

	res.FromModel(block)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBlocksResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBlock, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for calendar blocks")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get calendar blocks")

		return res, fmt.Errorf("failed to get calendar blocks: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save calendar blocks to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBlock, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count calendar blocks")

		return res, fmt.Errorf("failed to count calendar blocks: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save calendar block count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BlockResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBlock, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for calendar block")

		return res, nil
	}

	block, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get calendar block")

		return res, fmt.Errorf("failed to get calendar block: %w", err)
	}

	if block.ID == constant.Empty {
		return res, failure.NotFound("calendar block not found") // nolint:wrapcheck
	}

	res.FromModel(block)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save calendar block to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) SetActive(ctx context.Context, id string, active bool) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetActive")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if calendar block exists")

		return fmt.Errorf("failed to check if calendar block exists: %w", err)
	}

	if !exist {
		return failure.NotFound("calendar block not found") // nolint:wrapcheck
	}

	fields := shared.TransformFields(struct{}{}, shared.UserFromContext(ctx))
	fields[model.FieldActive] = active

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update calendar block")

		return fmt.Errorf("failed to update calendar block: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if calendar block exists")

		return fmt.Errorf("failed to check if calendar block exists: %w", err)
	}

	if !exist {
		return failure.NotFound("calendar block not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete calendar block")

		return fmt.Errorf("failed to delete calendar block: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// invalidate drops the cached block lists and the cached block itself in the
// background. Availability is retired before returning.
func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	shared.InvalidateAvailability(context.WithoutCancel(ctx), s.cache)

	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBlock, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete calendar block from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBlock)
		shared.InvalidateCaches(c, s.cache, cacheCountBlock)
	}()
}

package service

import (
	"context"
	"errors"
	"fmt"

	"mariachi/infras/otel"
	availability "mariachi/internal/domains/availability/service"
	"mariachi/internal/domains/rehearsal/model"
	"mariachi/internal/domains/rehearsal/model/dto"
	"mariachi/internal/domains/rehearsal/repository"
	"mariachi/shared"
	"mariachi/shared/cache"
	"mariachi/shared/constant"
	gDto "mariachi/shared/dto"
	"mariachi/shared/failure"
	"mariachi/shared/lock"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type Rehearsal interface {
	Create(ctx context.Context, req dto.CreateRehearsalRequest) (dto.RehearsalResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRehearsalsResponse, error)
	Get(ctx context.Context, id string) (dto.RehearsalResponse, error)
	Update(ctx context.Context, req dto.UpdateRehearsalRequest, id string) error
	Complete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Rehearsal
	availability availability.Availability
	locker       lock.Locker
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(repo repository.Rehearsal, availability availability.Availability, locker lock.Locker, cache cache.RedisCache, otel otel.Otel) Rehearsal {
	return &serviceImpl{
		repo:         repo,
		availability: availability,
		locker:       locker,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRehearsalRequest) (res dto.RehearsalResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	release, err := s.locker.Acquire(ctx, lock.DateKey(req.Date))
	if errors.Is(err, lock.ErrNotAcquired) {
		return res, failure.Conflict("another booking for this slot is in progress, try again") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to acquire date lock")

		return res, fmt.Errorf("failed to acquire date lock: %w", err)
	}
	defer release()

	if err = s.availability.ValidateRehearsal(ctx, req.Date, req.Time); err != nil {
		return res, err
	}

	rehearsal := req.ToModel(shared.UserFromContext(ctx))

	if err = s.repo.Insert(ctx, rehearsal); err != nil {
		log.Error().Err(err).Msg("failed to insert rehearsal")

		return res, fmt.Errorf("failed to insert rehearsal: %w", err)
	}

	s.invalidate(ctx)

	res.FromModel(rehearsal)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRehearsalsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rehearsals")

		return res, fmt.Errorf("failed to count rehearsals: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rehearsals")

		return res, fmt.Errorf("failed to get rehearsals: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RehearsalResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rehearsal, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(rehearsal)

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Rehearsal, error) {
	rehearsal, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get rehearsal")

		return rehearsal, fmt.Errorf("failed to get rehearsal: %w", err)
	}

	if rehearsal.ID == constant.Empty {
		return rehearsal, failure.NotFound("rehearsal not found") // nolint:wrapcheck
	}

	return rehearsal, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRehearsalRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.find(ctx, id); err != nil {
		return err
	}

	fields := shared.TransformFields(req, shared.UserFromContext(ctx))
	if req.RepertoireIDs != nil {
		fields[model.FieldRepertoireIDs] = pq.StringArray(req.RepertoireIDs)
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update rehearsal")

		return fmt.Errorf("failed to update rehearsal: %w", err)
	}

	return nil
}

// Complete marks a scheduled rehearsal as held, which frees its hours.
func (s *serviceImpl) Complete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Complete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rehearsal, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if !rehearsal.IsScheduled() {
		return failure.Conflict(fmt.Sprintf("rehearsal is already %s", rehearsal.Status)) // nolint:wrapcheck
	}

	fields := shared.TransformFields(struct{}{}, shared.UserFromContext(ctx))
	fields[model.FieldStatus] = model.StatusCompleted

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to complete rehearsal")

		return fmt.Errorf("failed to complete rehearsal: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if rehearsal exists")

		return fmt.Errorf("failed to check if rehearsal exists: %w", err)
	}

	if !exist {
		return failure.NotFound("rehearsal not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete rehearsal")

		return fmt.Errorf("failed to delete rehearsal: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	shared.InvalidateAvailability(context.WithoutCancel(ctx), s.cache)
}

package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"mariachi/config"
	"mariachi/infras/metrics"
	"mariachi/infras/otel"
	"mariachi/internal/domains/availability/dto"
	blockRepository "mariachi/internal/domains/block/repository"
	quotationRepository "mariachi/internal/domains/quotation/repository"
	rehearsalRepository "mariachi/internal/domains/rehearsal/repository"
	reservationModel "mariachi/internal/domains/reservation/model"
	reservationRepository "mariachi/internal/domains/reservation/repository"
	"mariachi/shared"
	"mariachi/shared/cache"
	"mariachi/shared/constant"
	"mariachi/shared/slot"
	"mariachi/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Availability answers which hours of a date are free and decides whether a
// new booking may take its slot. It only reads the four booking stores.
type Availability interface {
	Grid(ctx context.Context) dto.GridResponse
	CheckDateStatus(ctx context.Context, date string) (dto.DateStatus, error)
	GetAvailableHours(ctx context.Context, date string) (dto.AvailableHours, error)
	ValidateReservation(ctx context.Context, date, hour string) error
	ValidateRehearsal(ctx context.Context, date, hour string) error
	ValidateQuotation(ctx context.Context, date, start, end string) error
}

type serviceImpl struct {
	blocks       blockRepository.Block
	reservations reservationRepository.Reservation
	quotations   quotationRepository.Quotation
	rehearsals   rehearsalRepository.Rehearsal
	cfg          *config.Config
	cache        cache.RedisCache
	metrics      metrics.Metrics
	otel         otel.Otel
}

func New(
	blocks blockRepository.Block,
	reservations reservationRepository.Reservation,
	quotations quotationRepository.Quotation,
	rehearsals rehearsalRepository.Rehearsal,
	cfg *config.Config,
	cache cache.RedisCache,
	metrics metrics.Metrics,
	otel otel.Otel,
) Availability {
	return &serviceImpl{
		blocks:       blocks,
		reservations: reservations,
		quotations:   quotations,
		rehearsals:   rehearsals,
		cfg:          cfg,
		cache:        cache,
		metrics:      metrics,
		otel:         otel,
	}
}

func (s *serviceImpl) Grid(ctx context.Context) dto.GridResponse {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Grid")
	defer scope.End()

	return dto.GridResponse{Slots: slot.Grid()}
}

// load reads everything that may occupy date.
func (s *serviceImpl) load(ctx context.Context, date string) (snapshot Snapshot, err error) {
	snapshot.Date = date

	snapshot.Blocks, err = s.blocks.GetActiveOn(ctx, date)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("failed to get calendar blocks")

		return snapshot, fmt.Errorf("failed to get calendar blocks: %w", err)
	}

	snapshot.Reservations, err = s.reservations.GetOnDate(ctx, date,
		reservationModel.StatusPending, reservationModel.StatusConfirmed, reservationModel.StatusFinalized)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("failed to get reservations")

		return snapshot, fmt.Errorf("failed to get reservations: %w", err)
	}

	snapshot.Quotations, err = s.quotations.GetWaitingOn(ctx, date)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("failed to get quotations")

		return snapshot, fmt.Errorf("failed to get quotations: %w", err)
	}

	snapshot.Rehearsals, err = s.rehearsals.GetScheduledOn(ctx, date)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("failed to get rehearsals")

		return snapshot, fmt.Errorf("failed to get rehearsals: %w", err)
	}

	return snapshot, nil
}

func (s *serviceImpl) CheckDateStatus(ctx context.Context, date string) (res dto.DateStatus, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckDateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	blocks, err := s.blocks.GetActiveOn(ctx, date)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("failed to get calendar blocks")

		return res, fmt.Errorf("failed to get calendar blocks: %w", err)
	}

	return Snapshot{Date: date, Blocks: blocks}.Status(), nil
}

func (s *serviceImpl) GetAvailableHours(ctx context.Context, date string) (res dto.AvailableHours, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAvailableHours")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey, keyErr := shared.AvailabilityCacheKey(ctx, s.cache, date)
	if keyErr != nil {
		log.Warn().Err(keyErr).Str("date", date).Msg("availability cache unavailable, reading the stores")
	} else if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for availability")

		return res, nil
	}

	snapshot, err := s.load(ctx, date)
	if err != nil {
		return res, err
	}

	res = dto.AvailableHours{Date: date, Hours: snapshot.FreeHours()}

	if keyErr == nil {
		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save availability to cache")
			}
		}()
	}

	return res, nil
}

func (s *serviceImpl) ValidateReservation(ctx context.Context, date, hour string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ValidateReservation")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	defer func() { s.countRejection(EntityReservation, err) }()

	if date < timezone.Today() {
		return reject(ErrPastDate, reasonPastDate, "event date %s is in the past", date)
	}

	return s.validatePoint(ctx, date, hour)
}

func (s *serviceImpl) ValidateRehearsal(ctx context.Context, date, hour string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ValidateRehearsal")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	defer func() { s.countRejection(EntityRehearsal, err) }()

	return s.validatePoint(ctx, date, hour)
}

func (s *serviceImpl) validatePoint(ctx context.Context, date, hour string) error {
	parsed, err := slot.Parse(hour)
	if err != nil {
		return reject(ErrInvalidTime, reasonInvalidTime, "an event time is required")
	}

	snapshot, err := s.load(ctx, date)
	if err != nil {
		return err
	}

	if rejection := snapshot.CheckPoint(parsed); rejection != nil {
		return rejection
	}

	return nil
}

func (s *serviceImpl) ValidateQuotation(ctx context.Context, date, start, end string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ValidateQuotation")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	defer func() { s.countRejection(EntityQuotation, err) }()

	startHour, err := slot.Parse(start)
	if err != nil {
		return reject(ErrInvalidTime, reasonInvalidTime, "a start time is required")
	}

	endHour, err := slot.Parse(end)
	if err != nil {
		return reject(ErrInvalidTime, reasonInvalidTime, "an end time is required")
	}

	snapshot, err := s.load(ctx, date)
	if err != nil {
		return err
	}

	if rejection := snapshot.CheckRange(startHour, endHour); rejection != nil {
		return rejection
	}

	return nil
}

func (s *serviceImpl) countRejection(entity string, err error) {
	var rejection *RejectionError
	if errors.As(err, &rejection) {
		log.Info().Str("entity", entity).Str("reason", rejection.Reason).Msg(rejection.Error())
		s.metrics.CountRejection(entity, rejection.Reason)
	}
}

// IsRejection reports whether err is a booking refusal rather than an infrastructure failure.
func IsRejection(err error) bool {
	var rejection *RejectionError

	return errors.As(err, &rejection)
}

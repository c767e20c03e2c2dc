package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"mariachi/config"
	"mariachi/infras/kafka"
	"mariachi/infras/metrics"
	"mariachi/infras/otel"
	availability "mariachi/internal/domains/availability/service"
	pricingModel "mariachi/internal/domains/pricing/model"
	pricing "mariachi/internal/domains/pricing/service"
	"mariachi/internal/domains/reservation/model"
	"mariachi/internal/domains/reservation/model/dto"
	"mariachi/internal/domains/reservation/repository"
	"mariachi/shared"
	"mariachi/shared/cache"
	"mariachi/shared/constant"
	gDto "mariachi/shared/dto"
	"mariachi/shared/failure"
	"mariachi/shared/lock"
	gRepo "mariachi/shared/repository"
	"mariachi/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	EventCreated   = "reservation.created"
	EventPaid      = "reservation.paid"
	EventFinalized = "reservation.finalized"
	EventCancelled = "reservation.cancelled"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (dto.ReservationResponse, error)
	AddPayment(ctx context.Context, id string, req dto.AddPaymentRequest) (dto.ReservationResponse, error)
	Finalize(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Sweep(ctx context.Context) (dto.SweepResponse, error)
}

type serviceImpl struct {
	repo         repository.Reservation
	payments     repository.Payment
	availability availability.Availability
	locker       lock.Locker
	publisher    kafka.Publisher
	cfg          *config.Config
	cache        cache.RedisCache
	metrics      metrics.Metrics
	otel         otel.Otel
}

func New(
	repo repository.Reservation,
	payments repository.Payment,
	availability availability.Availability,
	locker lock.Locker,
	publisher kafka.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	metrics metrics.Metrics,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:         repo,
		payments:     payments,
		availability: availability,
		locker:       locker,
		publisher:    publisher,
		cfg:          cfg,
		cache:        cache,
		metrics:      metrics,
		otel:         otel,
	}
}

func acquire(ctx context.Context, locker lock.Locker, key string) (func(), error) {
	release, err := locker.Acquire(ctx, key)
	if errors.Is(err, lock.ErrNotAcquired) {
		return nil, failure.Conflict("another booking for this slot is in progress, try again") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to acquire lock")

		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}

	return release, nil
}

// stale maps an update whose open-status guard matched nothing.
func stale(err error) error {
	if errors.Is(err, gRepo.ErrNotUpdated) {
		return failure.Conflict("reservation is no longer open") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	release, err := acquire(ctx, s.locker, lock.DateKey(req.EventDate))
	if err != nil {
		return res, err
	}
	defer release()

	if err = s.availability.ValidateReservation(ctx, req.EventDate, req.EventTime); err != nil {
		return res, err
	}

	state := pricing.NewState(pricing.Input{
		Kind:          pricingModel.KindReservation,
		Zone:          req.Zone,
		RepertoireIDs: req.RepertoireIDs,
	})
	if req.TotalAmount != nil {
		state.Override(*req.TotalAmount)
	}

	reservation := req.ToModel(shared.UserFromContext(ctx), state.Total(), state.Manual())

	if err = s.repo.Insert(ctx, reservation); err != nil {
		log.Error().Err(err).Msg("failed to insert reservation")

		return res, fmt.Errorf("failed to insert reservation: %w", err)
	}

	res.FromModel(reservation)

	s.afterWrite(ctx, EventCreated, reservation.ID, res)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.sweepBeforeRead(ctx)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.sweepBeforeRead(ctx)

	return s.detail(ctx, id)
}

// detail reads a reservation with its payments.
func (s *serviceImpl) detail(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	reservation, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	payments, err := s.payments.GetByReservation(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation payments")

		return res, fmt.Errorf("failed to get reservation payments: %w", err)
	}

	res.FromModel(reservation)
	res.WithPayments(payments)

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Reservation, error) {
	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return reservation, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	return reservation, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	release, err := acquire(ctx, s.locker, lock.EntityKey(model.EntityName, id))
	if err != nil {
		return res, err
	}
	defer release()

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if current.IsTerminal() {
		return res, failure.BadRequestFromString(fmt.Sprintf("a %s reservation can no longer be modified", current.Status)) // nolint:wrapcheck
	}

	input := pricing.Input{
		Kind:          pricingModel.KindReservation,
		Zone:          current.Zone,
		RepertoireIDs: current.RepertoireIDs,
	}

	next := input
	if req.Zone != constant.Empty {
		next.Zone = req.Zone
	}

	if req.RepertoireIDs != nil {
		next.RepertoireIDs = req.RepertoireIDs
	}

	state := pricing.RestoreState(input, current.TotalAmount, current.ManualTotal)
	state.Update(next)

	if req.TotalAmount != nil {
		state.Override(*req.TotalAmount)
	}

	if state.Total() < current.PaidAmount {
		return res, failure.BadRequestFromString(fmt.Sprintf("total amount cannot be lower than the %d already paid", current.PaidAmount)) // nolint:wrapcheck
	}

	fields := shared.TransformFields(req, shared.UserFromContext(ctx))
	fields[model.FieldRepertoireIDs] = pq.StringArray(next.RepertoireIDs)
	fields[model.FieldTotalAmount] = state.Total()
	fields[model.FieldManualTotal] = state.Manual()

	if current.Status == model.StatusPending && model.ReachesConfirmation(current.PaidAmount, state.Total()) {
		fields[model.FieldStatus] = model.StatusConfirmed
	}

	if err = s.repo.Update(ctx, fields, repository.OpenByID(id)); err != nil {
		if conflict := stale(err); conflict != nil {
			return res, conflict
		}

		log.Error().Err(err).Msg("failed to update reservation")

		return res, fmt.Errorf("failed to update reservation: %w", err)
	}

	res, err = s.detail(ctx, id)
	if err != nil {
		return res, err
	}

	shared.InvalidateAvailability(context.WithoutCancel(ctx), s.cache)

	return res, nil
}

func (s *serviceImpl) AddPayment(ctx context.Context, id string, req dto.AddPaymentRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddPayment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	release, err := acquire(ctx, s.locker, lock.EntityKey(model.EntityName, id))
	if err != nil {
		return res, err
	}
	defer release()

	reservation, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if reservation.IsTerminal() {
		return res, failure.BadRequestFromString(fmt.Sprintf("payments cannot be added to a %s reservation", reservation.Status)) // nolint:wrapcheck
	}

	if req.Amount > reservation.Balance() {
		return res, failure.BadRequestFromString(fmt.Sprintf("payment of %d exceeds the outstanding balance of %d", req.Amount, reservation.Balance())) // nolint:wrapcheck
	}

	user := shared.UserFromContext(ctx)
	payment := req.ToModel(id, user)
	paid := reservation.PaidAmount + req.Amount

	fields := shared.TransformFields(struct{}{}, user)
	fields[model.FieldPaidAmount] = paid

	if reservation.Status == model.StatusPending && model.ReachesConfirmation(paid, reservation.TotalAmount) {
		fields[model.FieldStatus] = model.StatusConfirmed
	}

	err = s.repo.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := s.payments.InsertTx(ctx, tx, payment); err != nil {
			return err //nolint:wrapcheck
		}

		return s.repo.UpdateTx(ctx, tx, fields, repository.OpenByID(id)) //nolint:wrapcheck
	})
	if err != nil {
		if conflict := stale(err); conflict != nil {
			return res, conflict
		}

		log.Error().Err(err).Msg("failed to register payment")

		return res, fmt.Errorf("failed to register payment: %w", err)
	}

	res, err = s.detail(ctx, id)
	if err != nil {
		return res, err
	}

	s.publish(ctx, EventPaid, id, res)

	return res, nil
}

func (s *serviceImpl) Finalize(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Finalize")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.transition(ctx, id, model.StatusFinalized, EventFinalized)
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.transition(ctx, id, model.StatusCancelled, EventCancelled)
}

// transition moves an open reservation to a terminal status. It holds the
// same entity lock as Update and AddPayment.
func (s *serviceImpl) transition(ctx context.Context, id, status, event string) error {
	release, err := acquire(ctx, s.locker, lock.EntityKey(model.EntityName, id))
	if err != nil {
		return err
	}
	defer release()

	reservation, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if reservation.IsTerminal() {
		return failure.Conflict(fmt.Sprintf("reservation is already %s", reservation.Status)) // nolint:wrapcheck
	}

	fields := shared.TransformFields(struct{}{}, shared.UserFromContext(ctx))
	fields[model.FieldStatus] = status

	if err := s.repo.Update(ctx, fields, repository.OpenByID(id)); err != nil {
		if conflict := stale(err); conflict != nil {
			return conflict
		}

		log.Error().Err(err).Str("status", status).Msg("failed to update reservation status")

		return fmt.Errorf("failed to update reservation status: %w", err)
	}

	reservation.Status = status

	var payload dto.ReservationResponse
	payload.FromModel(reservation)

	s.afterWrite(ctx, event, id, payload)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if reservation exists")

		return fmt.Errorf("failed to check if reservation exists: %w", err)
	}

	if !exist {
		return failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete reservation")

		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	shared.InvalidateAvailability(context.WithoutCancel(ctx), s.cache)

	return nil
}

// afterWrite retires the cached availability before the caller returns and
// announces the change.
func (s *serviceImpl) afterWrite(ctx context.Context, eventType, id string, payload any) {
	shared.InvalidateAvailability(context.WithoutCancel(ctx), s.cache)

	s.publish(ctx, eventType, id, payload)
}

func (s *serviceImpl) publish(ctx context.Context, eventType, id string, payload any) {
	event := kafka.Event{
		Type:       eventType,
		Key:        id,
		OccurredAt: timezone.Now(),
		Payload:    payload,
	}

	go func() {
		if err := s.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
			log.Error().Err(err).Str("type", eventType).Str("id", id).Msg("failed to publish reservation event")
		}
	}()
}

package service

import (
	"context"
	"errors"
	"fmt"

	"mariachi/infras/kafka"
	"mariachi/infras/otel"
	availability "mariachi/internal/domains/availability/service"
	pricingModel "mariachi/internal/domains/pricing/model"
	pricing "mariachi/internal/domains/pricing/service"
	"mariachi/internal/domains/quotation/model"
	"mariachi/internal/domains/quotation/model/dto"
	"mariachi/internal/domains/quotation/repository"
	reservationDto "mariachi/internal/domains/reservation/model/dto"
	reservation "mariachi/internal/domains/reservation/service"
	"mariachi/shared"
	"mariachi/shared/cache"
	"mariachi/shared/constant"
	gDto "mariachi/shared/dto"
	"mariachi/shared/failure"
	"mariachi/shared/lock"
	"mariachi/shared/saga"
	"mariachi/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	EventCreated   = "quotation.created"
	EventCancelled = "quotation.cancelled"
	EventConverted = "quotation.converted"
)

type Quotation interface {
	Create(ctx context.Context, req dto.CreateQuotationRequest) (dto.QuotationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetQuotationsResponse, error)
	Get(ctx context.Context, id string) (dto.QuotationResponse, error)
	Cancel(ctx context.Context, id string) error
	Convert(ctx context.Context, id string) (dto.ConvertResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Quotation
	availability availability.Availability
	reservations reservation.Reservation
	locker       lock.Locker
	publisher    kafka.Publisher
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Quotation,
	availability availability.Availability,
	reservations reservation.Reservation,
	locker lock.Locker,
	publisher kafka.Publisher,
	cache cache.RedisCache,
	otel otel.Otel,
) Quotation {
	return &serviceImpl{
		repo:         repo,
		availability: availability,
		reservations: reservations,
		locker:       locker,
		publisher:    publisher,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) acquire(ctx context.Context, key string) (func(), error) {
	release, err := s.locker.Acquire(ctx, key)
	if errors.Is(err, lock.ErrNotAcquired) {
		return nil, failure.Conflict("another booking for this slot is in progress, try again") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to acquire lock")

		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}

	return release, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateQuotationRequest) (res dto.QuotationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	release, err := s.acquire(ctx, lock.DateKey(req.EventDate))
	if err != nil {
		return res, err
	}
	defer release()

	if err = s.availability.ValidateQuotation(ctx, req.EventDate, req.StartTime, req.EndTime); err != nil {
		return res, err
	}

	state := pricing.NewState(pricing.Input{
		Kind:          pricingModel.KindQuotation,
		Zone:          req.Zone,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		RepertoireIDs: req.RepertoireIDs,
	})
	if req.TotalAmount != nil {
		state.Override(*req.TotalAmount)
	}

	quotation := req.ToModel(shared.UserFromContext(ctx), state.Total(), state.Manual())

	if err = s.repo.Insert(ctx, quotation); err != nil {
		log.Error().Err(err).Msg("failed to insert quotation")

		return res, fmt.Errorf("failed to insert quotation: %w", err)
	}

	res.FromModel(quotation)

	s.afterWrite(ctx, EventCreated, quotation.ID, res)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetQuotationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count quotations")

		return res, fmt.Errorf("failed to count quotations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get quotations")

		return res, fmt.Errorf("failed to get quotations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.QuotationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	quotation, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(quotation)

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Quotation, error) {
	quotation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get quotation")

		return quotation, fmt.Errorf("failed to get quotation: %w", err)
	}

	if quotation.ID == constant.Empty {
		return quotation, failure.NotFound("quotation not found") // nolint:wrapcheck
	}

	return quotation, nil
}

// Cancel shares the entity lock with Convert, so a quotation is never both
// cancelled and converted.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	release, err := s.acquire(ctx, lock.EntityKey(model.EntityName, id))
	if err != nil {
		return err
	}
	defer release()

	quotation, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if !quotation.IsWaiting() {
		return failure.Conflict(fmt.Sprintf("quotation is already %s", quotation.Status)) // nolint:wrapcheck
	}

	if err = s.setStatus(ctx, id, model.StatusCancelled); err != nil {
		return err
	}

	quotation.Status = model.StatusCancelled

	var payload dto.QuotationResponse
	payload.FromModel(quotation)

	s.afterWrite(ctx, EventCancelled, id, payload)

	return nil
}

// Convert turns a waiting quotation into a reservation at its start time. The
// quotation gives up its range first so the new reservation does not collide
// with it; if the reservation cannot be created the prior status is restored.
func (s *serviceImpl) Convert(ctx context.Context, id string) (res dto.ConvertResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Convert")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	release, err := s.acquire(ctx, lock.EntityKey(model.EntityName, id))
	if err != nil {
		return res, err
	}
	defer release()

	quotation, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !quotation.IsWaiting() {
		return res, failure.Conflict(fmt.Sprintf("only a quotation %s can be converted, this one is %s", model.StatusWaiting, quotation.Status)) // nolint:wrapcheck
	}

	prior := quotation.Status

	var created reservationDto.ReservationResponse

	conversion := saga.New("quotation.convert",
		saga.Step{
			Name: "release-range",
			Action: func(ctx context.Context) error {
				return s.setStatus(ctx, id, model.StatusConverted)
			},
			Compensate: func(ctx context.Context) error {
				return s.setStatus(ctx, id, prior)
			},
		},
		saga.Step{
			Name: "create-reservation",
			Action: func(ctx context.Context) error {
				var err error

				created, err = s.reservations.Create(ctx, toReservation(quotation))

				return err //nolint:wrapcheck
			},
			Compensate: func(ctx context.Context) error {
				return s.reservations.Delete(ctx, created.ID) //nolint:wrapcheck
			},
		},
		saga.Step{
			Name: "link-reservation",
			Action: func(ctx context.Context) error {
				fields := shared.TransformFields(struct{}{}, shared.UserFromContext(ctx))
				fields[model.FieldReservationID] = created.ID

				return s.update(ctx, id, fields)
			},
		},
	)

	if err = conversion.Run(ctx); err != nil {
		return res, err //nolint:wrapcheck
	}

	quotation.Status = model.StatusConverted
	quotation.ReservationID = created.ID

	res.Quotation.FromModel(quotation)
	res.ReservationID = created.ID

	s.afterWrite(ctx, EventConverted, id, res)

	return res, nil
}

// toReservation keeps only the start of the quoted range; the quoted total
// carries over as an operator-set amount.
func toReservation(quotation model.Quotation) reservationDto.CreateReservationRequest {
	total := quotation.TotalAmount

	return reservationDto.CreateReservationRequest{
		ClientID:      quotation.ClientID,
		ClientName:    quotation.ClientName,
		ClientPhone:   quotation.ClientPhone,
		ClientEmail:   quotation.ClientEmail,
		EventDate:     quotation.Date(),
		EventTime:     quotation.StartTime,
		Location:      quotation.Location,
		Address:       quotation.Address,
		Zone:          quotation.Zone,
		RepertoireIDs: quotation.RepertoireIDs,
		TotalAmount:   &total,
		Notes:         fmt.Sprintf("Convertida desde cotización %s", quotation.ID),
	}
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if quotation exists")

		return fmt.Errorf("failed to check if quotation exists: %w", err)
	}

	if !exist {
		return failure.NotFound("quotation not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete quotation")

		return fmt.Errorf("failed to delete quotation: %w", err)
	}

	shared.InvalidateAvailability(context.WithoutCancel(ctx), s.cache)

	return nil
}

func (s *serviceImpl) setStatus(ctx context.Context, id, status string) error {
	fields := shared.TransformFields(struct{}{}, shared.UserFromContext(ctx))
	fields[model.FieldStatus] = status

	return s.update(ctx, id, fields)
}

func (s *serviceImpl) update(ctx context.Context, id string, fields map[string]any) error {
	if err := s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update quotation")

		return fmt.Errorf("failed to update quotation: %w", err)
	}

	return nil
}

func (s *serviceImpl) afterWrite(ctx context.Context, eventType, id string, payload any) {
	shared.InvalidateAvailability(context.WithoutCancel(ctx), s.cache)

	event := kafka.Event{
		Type:       eventType,
		Key:        id,
		OccurredAt: timezone.Now(),
		Payload:    payload,
	}

	go func() {
		if err := s.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
			log.Error().Err(err).Str("type", eventType).Str("id", id).Msg("failed to publish quotation event")
		}
	}()
}

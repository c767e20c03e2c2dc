package service

import (
	"context"
	"fmt"

	"mariachi/internal/domains/reservation/model"
	"mariachi/internal/domains/reservation/model/dto"
	"mariachi/internal/domains/reservation/repository"
	"mariachi/shared"
	"mariachi/shared/constant"
	"mariachi/shared/lock"
	"mariachi/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Sweep finalizes every open reservation whose event time has passed. An
// outstanding balance is settled with a cash "Saldo Final" payment first.
// Reservations that fail are logged and left for the next run.
func (s *serviceImpl) Sweep(ctx context.Context) (res dto.SweepResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Sweep")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := timezone.Now()

	due, err := s.repo.GetDue(ctx, timezone.Today())
	if err != nil {
		log.Error().Err(err).Msg("failed to get due reservations")

		return res, fmt.Errorf("failed to get due reservations: %w", err)
	}

	res.ReservationIDs = []string{}

	for _, candidate := range due {
		startsAt, err := candidate.StartsAt(timezone.GetLocation())
		if err != nil {
			log.Warn().Err(err).Str("id", candidate.ID).Str("time", candidate.EventTime).Msg("skipping reservation with unreadable event time")

			continue
		}

		if startsAt.After(now) {
			continue
		}

		finalized, err := s.finalizeDue(ctx, candidate.ID)
		if err != nil {
			log.Error().Err(err).Str("id", candidate.ID).Msg("failed to finalize reservation")

			continue
		}

		if finalized {
			res.ReservationIDs = append(res.ReservationIDs, candidate.ID)
		}
	}

	res.Finalized = len(res.ReservationIDs)

	if res.Finalized > 0 {
		s.metrics.CountSwept(res.Finalized)

		shared.InvalidateAvailability(context.WithoutCancel(ctx), s.cache)

		log.Info().Int("finalized", res.Finalized).Msg("swept past reservations")
	}

	return res, nil
}

// finalizeDue re-reads the reservation under its lock so a concurrent sweep or
// payment never settles the same balance twice.
func (s *serviceImpl) finalizeDue(ctx context.Context, id string) (bool, error) {
	release, err := s.locker.Acquire(ctx, lock.EntityKey(model.EntityName, id))
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer release()

	reservation, err := s.find(ctx, id)
	if err != nil {
		return false, err
	}

	if !reservation.IsActive() {
		return false, nil
	}

	fields := shared.TransformFields(struct{}{}, constant.ContextSystem)
	fields[model.FieldStatus] = model.StatusFinalized

	var settlement *model.Payment

	if balance := reservation.Balance(); balance > 0 {
		payment := model.NewSettlement(id, balance, constant.ContextSystem)
		settlement = &payment
		fields[model.FieldPaidAmount] = reservation.TotalAmount
	}

	err = s.repo.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if settlement != nil {
			if err := s.payments.InsertTx(ctx, tx, *settlement); err != nil {
				return err //nolint:wrapcheck
			}
		}

		return s.repo.UpdateTx(ctx, tx, fields, repository.OpenByID(id)) //nolint:wrapcheck
	})
	if err != nil {
		return false, fmt.Errorf("failed to finalize reservation: %w", err)
	}

	reservation.Status = model.StatusFinalized
	reservation.PaidAmount = reservation.TotalAmount

	var payload dto.ReservationResponse
	payload.FromModel(reservation)

	s.publish(ctx, EventFinalized, id, payload)

	return true, nil
}

func (s *serviceImpl) sweepBeforeRead(ctx context.Context) {
	if _, err := s.Sweep(ctx); err != nil {
		log.Warn().Err(err).Msg("sweep before read failed, serving current data")
	}
}

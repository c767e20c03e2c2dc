package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"mariachi/config"
	kafkaMocks "mariachi/infras/kafka/mocks"
	metricsMocks "mariachi/infras/metrics/mocks"
	"mariachi/infras/otel/mocks"
	availabilityMocks "mariachi/internal/domains/availability/mocks"
	reservationMocks "mariachi/internal/domains/reservation/mocks"
	"mariachi/internal/domains/reservation/model"
	"mariachi/internal/domains/reservation/model/dto"
	"mariachi/internal/domains/reservation/repository"
	"mariachi/internal/domains/reservation/service"
	cacheMocks "mariachi/shared/cache/mocks"
	gDto "mariachi/shared/dto"
	"mariachi/shared/failure"
	"mariachi/shared/lock"
	gRepo "mariachi/shared/repository"
)

type fixture struct {
	svc          service.Reservation
	repo         *reservationMocks.MockReservation
	payments     *reservationMocks.MockPayment
	availability *availabilityMocks.MockAvailability
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:         reservationMocks.NewMockReservation(ctrl),
		payments:     reservationMocks.NewMockPayment(ctrl),
		availability: availabilityMocks.NewMockAvailability(ctrl),
	}

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Incr(gomock.Any(), gomock.Any()).Return(int64(1), nil).AnyTimes()

	publisher := kafkaMocks.NewMockPublisher(ctrl)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(
		f.repo,
		f.payments,
		f.availability,
		lock.NewLocal(),
		publisher,
		&config.Config{},
		mockCache,
		metricsMocks.NewMetrics(),
		mocks.NewOtel(),
	)

	return f
}

func (f fixture) runTransactions() {
	f.repo.EXPECT().
		WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(tx *sqlx.Tx) error) error {
			return fn(nil)
		}).
		AnyTimes()
}

func (f fixture) noneDue() {
	f.repo.EXPECT().GetDue(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
}

func date(value string) time.Time {
	parsed, _ := time.Parse(time.DateOnly, value)

	return parsed
}

func reservation(status string, total, paid int64) model.Reservation {
	return model.Reservation{
		ID:          "res-1",
		ClientName:  "Lucía Paredes",
		EventDate:   date("2999-05-10"),
		EventTime:   "20:00",
		Zone:        "Urbana",
		TotalAmount: total,
		PaidAmount:  paid,
		Status:      status,
	}
}

func TestReservationService_Create(t *testing.T) {
	manual := int64(300000)

	tests := []struct {
		name     string
		req      dto.CreateReservationRequest
		setup    func(f fixture)
		wantCode int
		check    func(t *testing.T, res dto.ReservationResponse)
	}{
		{
			name: "urban reservation pays the flat rate",
			req: dto.CreateReservationRequest{
				ClientName: "Lucía Paredes",
				EventDate:  "2999-05-10",
				EventTime:  "20:00",
				Zone:       "Urbana",
			},
			setup: func(f fixture) {
				f.availability.EXPECT().ValidateReservation(gomock.Any(), "2999-05-10", "20:00").Return(nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, r model.Reservation) error {
						assert.Equal(t, model.StatusPending, r.Status)
						assert.False(t, r.ManualTotal)

						return nil
					})
			},
			check: func(t *testing.T, res dto.ReservationResponse) {
				t.Helper()
				assert.Equal(t, int64(480000), res.TotalAmount)
				assert.Equal(t, int64(480000), res.Balance)
				assert.Equal(t, "2999-05-10", res.EventDate)
			},
		},
		{
			name: "rural reservation with extra songs",
			req: dto.CreateReservationRequest{
				ClientName:    "Lucía Paredes",
				EventDate:     "2999-05-10",
				EventTime:     "14:00",
				Zone:          "Rural",
				RepertoireIDs: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"},
			},
			setup: func(f fixture) {
				f.availability.EXPECT().ValidateReservation(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, res dto.ReservationResponse) {
				t.Helper()
				assert.Equal(t, int64(670000), res.TotalAmount)
				assert.Len(t, res.RepertoireIDs, 9)
			},
		},
		{
			name: "operator total is kept as manual",
			req: dto.CreateReservationRequest{
				ClientName:  "Lucía Paredes",
				EventDate:   "2999-05-10",
				EventTime:   "20:00",
				Zone:        "Urbana",
				TotalAmount: &manual,
			},
			setup: func(f fixture) {
				f.availability.EXPECT().ValidateReservation(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, res dto.ReservationResponse) {
				t.Helper()
				assert.Equal(t, manual, res.TotalAmount)
				assert.True(t, res.ManualTotal)
			},
		},
		{
			name: "taken slot is rejected before insert",
			req: dto.CreateReservationRequest{
				ClientName: "Lucía Paredes",
				EventDate:  "2999-05-10",
				EventTime:  "20:00",
				Zone:       "Urbana",
			},
			setup: func(f fixture) {
				f.availability.EXPECT().
					ValidateReservation(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(failure.Conflict("the 20:00 slot is already reserved"))
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "insert failure",
			req: dto.CreateReservationRequest{
				ClientName: "Lucía Paredes",
				EventDate:  "2999-05-10",
				EventTime:  "20:00",
				Zone:       "Urbana",
			},
			setup: func(f fixture) {
				f.availability.EXPECT().ValidateReservation(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			res, err := f.svc.Create(context.Background(), tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			tt.check(t, res)
		})
	}
}

func TestReservationService_AddPayment(t *testing.T) {
	tests := []struct {
		name       string
		current    model.Reservation
		req        dto.AddPaymentRequest
		wantCode   int
		wantStatus string
	}{
		{
			name:       "half of the total confirms a pending reservation",
			current:    reservation(model.StatusPending, 480000, 0),
			req:        dto.AddPaymentRequest{Amount: 240000, Type: model.PaymentTypeDeposit, Method: model.PaymentMethodTransfer},
			wantStatus: model.StatusConfirmed,
		},
		{
			name:    "less than half keeps it pending",
			current: reservation(model.StatusPending, 480000, 0),
			req:     dto.AddPaymentRequest{Amount: 239999, Type: model.PaymentTypeDeposit, Method: model.PaymentMethodCash},
		},
		{
			name:    "installment on a confirmed reservation",
			current: reservation(model.StatusConfirmed, 480000, 240000),
			req:     dto.AddPaymentRequest{Amount: 100000, Type: model.PaymentTypeInstallment, Method: model.PaymentMethodCard},
		},
		{
			name:     "payment above the balance",
			current:  reservation(model.StatusConfirmed, 480000, 400000),
			req:      dto.AddPaymentRequest{Amount: 90000, Type: model.PaymentTypeFinal, Method: model.PaymentMethodCash},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "cancelled reservation takes no payments",
			current:  reservation(model.StatusCancelled, 480000, 0),
			req:      dto.AddPaymentRequest{Amount: 1000, Type: model.PaymentTypeDeposit, Method: model.PaymentMethodCash},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.current, nil)

			if tt.wantCode == 0 {
				f.runTransactions()
				f.payments.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, p model.Payment) error {
						assert.Equal(t, tt.current.ID, p.ReservationID)
						assert.Equal(t, tt.req.Amount, p.Amount)

						return nil
					})
				f.repo.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, tt.current.PaidAmount+tt.req.Amount, fields[model.FieldPaidAmount])

						if tt.wantStatus != "" {
							assert.Equal(t, tt.wantStatus, fields[model.FieldStatus])
						} else {
							assert.NotContains(t, fields, model.FieldStatus)
						}

						return nil
					})

				after := tt.current
				after.PaidAmount += tt.req.Amount
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(after, nil)
				f.payments.EXPECT().GetByReservation(gomock.Any(), tt.current.ID).Return([]model.Payment{{ID: "pay-1", Amount: tt.req.Amount}}, nil)
			}

			res, err := f.svc.AddPayment(context.Background(), tt.current.ID, tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.current.PaidAmount+tt.req.Amount, res.PaidAmount)
			assert.Len(t, res.Payments, 1)
		})
	}
}

func TestReservationService_AddPayment_TransactionFailure(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservation(model.StatusPending, 480000, 0), nil)
	f.runTransactions()
	f.payments.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("constraint"))

	_, err := f.svc.AddPayment(context.Background(), "res-1", dto.AddPaymentRequest{Amount: 1000})

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}

func TestReservationService_AddPayment_ClosedMeanwhile(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservation(model.StatusPending, 480000, 0), nil)
	f.runTransactions()
	f.payments.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.repo.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), repository.OpenByID("res-1")).
		Return(fmt.Errorf("failed to update data (reservation): %w", gRepo.ErrNotUpdated))

	_, err := f.svc.AddPayment(context.Background(), "res-1", dto.AddPaymentRequest{Amount: 240000})

	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
}

// store is an in-memory reservation row honouring the open-status guard.
type store struct {
	mu      sync.Mutex
	current model.Reservation
	writes  []string
}

func (s *store) get(context.Context, gDto.FilterGroup, ...string) (model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current, nil
}

func (s *store) write(fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.IsTerminal() {
		return gRepo.ErrNotUpdated
	}

	if paid, ok := fields[model.FieldPaidAmount].(int64); ok {
		s.current.PaidAmount = paid
	}

	if status, ok := fields[model.FieldStatus].(string); ok {
		s.current.Status = status
		s.writes = append(s.writes, status)
	}

	return nil
}

func TestReservationService_CancelWaitsForPayment(t *testing.T) {
	f := newFixture(t)
	f.runTransactions()

	row := &store{current: reservation(model.StatusPending, 480000, 0)}

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).DoAndReturn(row.get).AnyTimes()
	f.repo.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), repository.OpenByID("res-1")).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
			return row.write(fields)
		})
	f.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), repository.OpenByID("res-1")).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			return row.write(fields)
		})
	f.payments.EXPECT().GetByReservation(gomock.Any(), "res-1").Return(nil, nil)

	inserting := make(chan struct{})
	proceed := make(chan struct{})

	f.payments.EXPECT().
		InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *sqlx.Tx, model.Payment) error {
			close(inserting)
			<-proceed

			return nil
		})

	paid := make(chan error, 1)

	go func() {
		_, err := f.svc.AddPayment(context.Background(), "res-1", dto.AddPaymentRequest{
			Amount: 240000,
			Type:   model.PaymentTypeDeposit,
			Method: model.PaymentMethodTransfer,
		})
		paid <- err
	}()

	<-inserting

	cancelled := make(chan error, 1)

	go func() {
		cancelled <- f.svc.Cancel(context.Background(), "res-1")
	}()

	select {
	case err := <-cancelled:
		t.Fatalf("cancel returned while the payment was in flight: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(proceed)

	require.NoError(t, <-paid)
	require.NoError(t, <-cancelled)

	row.mu.Lock()
	defer row.mu.Unlock()

	assert.Equal(t, []string{model.StatusConfirmed, model.StatusCancelled}, row.writes)
	assert.Equal(t, model.StatusCancelled, row.current.Status)
	assert.Equal(t, int64(240000), row.current.PaidAmount)
}

func TestReservationService_Sweep(t *testing.T) {
	past := model.Reservation{
		ID:          "res-past",
		EventDate:   date("2000-01-01"),
		EventTime:   "20:00",
		TotalAmount: 480000,
		PaidAmount:  100000,
		Status:      model.StatusPending,
	}
	settled := model.Reservation{
		ID:          "res-settled",
		EventDate:   date("2000-01-02"),
		EventTime:   "00:00",
		TotalAmount: 480000,
		PaidAmount:  480000,
		Status:      model.StatusConfirmed,
	}
	upcoming := reservation(model.StatusPending, 480000, 0)

	f := newFixture(t)
	f.runTransactions()
	f.repo.EXPECT().GetDue(gomock.Any(), gomock.Any()).Return([]model.Reservation{past, settled, upcoming}, nil)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(past, nil)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(settled, nil)

	f.payments.EXPECT().
		InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, p model.Payment) error {
			assert.Equal(t, "res-past", p.ReservationID)
			assert.Equal(t, int64(380000), p.Amount)
			assert.Equal(t, model.PaymentTypeFinal, p.Type)
			assert.Equal(t, model.PaymentMethodCash, p.Method)

			return nil
		})

	var updates []map[string]any

	f.repo.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
			updates = append(updates, fields)

			return nil
		}).
		Times(2)

	res, err := f.svc.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, res.Finalized)
	assert.Equal(t, []string{"res-past", "res-settled"}, res.ReservationIDs)

	require.Len(t, updates, 2)
	assert.Equal(t, model.StatusFinalized, updates[0][model.FieldStatus])
	assert.Equal(t, int64(480000), updates[0][model.FieldPaidAmount])
	assert.Equal(t, model.StatusFinalized, updates[1][model.FieldStatus])
	assert.NotContains(t, updates[1], model.FieldPaidAmount)
}

func TestReservationService_Sweep_IsIdempotent(t *testing.T) {
	stale := model.Reservation{
		ID:          "res-past",
		EventDate:   date("2000-01-01"),
		EventTime:   "20:00",
		TotalAmount: 480000,
		PaidAmount:  100000,
		Status:      model.StatusPending,
	}
	current := stale
	current.Status = model.StatusFinalized
	current.PaidAmount = 480000

	f := newFixture(t)
	f.repo.EXPECT().GetDue(gomock.Any(), gomock.Any()).Return([]model.Reservation{stale}, nil)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)

	res, err := f.svc.Sweep(context.Background())

	require.NoError(t, err)
	assert.Zero(t, res.Finalized)
	assert.Empty(t, res.ReservationIDs)
}

func TestReservationService_Sweep_SkipsFailures(t *testing.T) {
	first := model.Reservation{ID: "res-a", EventDate: date("2000-01-01"), EventTime: "12:00", TotalAmount: 480000, PaidAmount: 480000, Status: model.StatusConfirmed}
	second := model.Reservation{ID: "res-b", EventDate: date("2000-01-01"), EventTime: "18:00", TotalAmount: 480000, PaidAmount: 480000, Status: model.StatusConfirmed}

	f := newFixture(t)
	f.runTransactions()
	f.repo.EXPECT().GetDue(gomock.Any(), gomock.Any()).Return([]model.Reservation{first, second}, nil)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(first, nil)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(second, nil)
	f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("deadlock"))
	f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"res-b"}, res.ReservationIDs)
}

func TestReservationService_Sweep_StoreFailure(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().GetDue(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	_, err := f.svc.Sweep(context.Background())

	require.Error(t, err)
}

func TestReservationService_Get(t *testing.T) {
	t.Run("includes payments and balance", func(t *testing.T) {
		f := newFixture(t)
		f.noneDue()
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservation(model.StatusConfirmed, 480000, 240000), nil)
		f.payments.EXPECT().GetByReservation(gomock.Any(), "res-1").Return([]model.Payment{
			{ID: "pay-1", Amount: 240000, Type: model.PaymentTypeDeposit, Method: model.PaymentMethodCash},
		}, nil)

		res, err := f.svc.Get(context.Background(), "res-1")

		require.NoError(t, err)
		assert.Equal(t, int64(240000), res.Balance)
		require.Len(t, res.Payments, 1)
		assert.Equal(t, model.PaymentTypeDeposit, res.Payments[0].Type)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.noneDue()
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Reservation{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("sweep failure does not fail the read", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetDue(gomock.Any(), gomock.Any()).Return(nil, errors.New("db hiccup"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservation(model.StatusPending, 480000, 0), nil)
		f.payments.EXPECT().GetByReservation(gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.svc.Get(context.Background(), "res-1")

		require.NoError(t, err)
		assert.Empty(t, res.Payments)
	})
}

func TestReservationService_GetAll(t *testing.T) {
	f := newFixture(t)
	f.noneDue()
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Reservation{
		reservation(model.StatusPending, 480000, 0),
	}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 11, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Reservations, 1)
}

func TestReservationService_Update(t *testing.T) {
	t.Run("zone change re-prices a calculated total", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservation(model.StatusPending, 480000, 0), nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, int64(650000), fields[model.FieldTotalAmount])
				assert.Equal(t, false, fields[model.FieldManualTotal])
				assert.Equal(t, "Rural", fields[model.FieldZone])

				return nil
			})
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservation(model.StatusPending, 650000, 0), nil)
		f.payments.EXPECT().GetByReservation(gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.svc.Update(context.Background(), dto.UpdateReservationRequest{Zone: "Rural"}, "res-1")

		require.NoError(t, err)
		assert.Equal(t, int64(650000), res.TotalAmount)
	})

	t.Run("manual total survives an unrelated edit", func(t *testing.T) {
		current := reservation(model.StatusPending, 300000, 0)
		current.ManualTotal = true

		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, int64(300000), fields[model.FieldTotalAmount])
				assert.Equal(t, true, fields[model.FieldManualTotal])
				assert.Equal(t, "Salón Imperial", fields["location"])

				return nil
			})
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		f.payments.EXPECT().GetByReservation(gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := f.svc.Update(context.Background(), dto.UpdateReservationRequest{Location: "Salón Imperial"}, "res-1")

		require.NoError(t, err)
	})

	t.Run("lowering the total below the paid amount", func(t *testing.T) {
		lower := int64(100000)

		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservation(model.StatusConfirmed, 480000, 240000), nil)

		_, err := f.svc.Update(context.Background(), dto.UpdateReservationRequest{TotalAmount: &lower}, "res-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("a lower total can confirm a pending reservation", func(t *testing.T) {
		lower := int64(200000)

		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservation(model.StatusPending, 480000, 100000), nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusConfirmed, fields[model.FieldStatus])

				return nil
			})
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservation(model.StatusConfirmed, 200000, 100000), nil)
		f.payments.EXPECT().GetByReservation(gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := f.svc.Update(context.Background(), dto.UpdateReservationRequest{TotalAmount: &lower}, "res-1")

		require.NoError(t, err)
	})

	t.Run("finalized reservation is read-only", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservation(model.StatusFinalized, 480000, 480000), nil)

		_, err := f.svc.Update(context.Background(), dto.UpdateReservationRequest{Notes: "late"}, "res-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestReservationService_Transitions(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		action    func(svc service.Reservation) error
		want      string
		updateErr error
		wantCode  int
	}{
		{
			name:   "cancel a pending reservation",
			status: model.StatusPending,
			action: func(svc service.Reservation) error { return svc.Cancel(context.Background(), "res-1") },
			want:   model.StatusCancelled,
		},
		{
			name:   "finalize a confirmed reservation",
			status: model.StatusConfirmed,
			action: func(svc service.Reservation) error { return svc.Finalize(context.Background(), "res-1") },
			want:   model.StatusFinalized,
		},
		{
			name:     "cancel twice",
			status:   model.StatusCancelled,
			action:   func(svc service.Reservation) error { return svc.Cancel(context.Background(), "res-1") },
			wantCode: http.StatusConflict,
		},
		{
			name:     "finalize a cancelled reservation",
			status:   model.StatusCancelled,
			action:   func(svc service.Reservation) error { return svc.Finalize(context.Background(), "res-1") },
			wantCode: http.StatusConflict,
		},
		{
			name:      "closed between read and write",
			status:    model.StatusConfirmed,
			action:    func(svc service.Reservation) error { return svc.Cancel(context.Background(), "res-1") },
			want:      model.StatusCancelled,
			updateErr: fmt.Errorf("failed to update data (reservation): %w", gRepo.ErrNotUpdated),
			wantCode:  http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reservation(tt.status, 480000, 0), nil)

			if tt.want != "" {
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), repository.OpenByID("res-1")).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, tt.want, fields[model.FieldStatus])
						assert.NotContains(t, fields, model.FieldPaidAmount)

						return tt.updateErr
					})
			}

			err := tt.action(f.svc)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestReservationService_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, f.svc.Delete(context.Background(), "res-1"))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Delete(context.Background(), "res-1")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

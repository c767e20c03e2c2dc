package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"mariachi/infras/otel"
	"mariachi/infras/postgres"
	"mariachi/internal/domains/reservation/model"
	"mariachi/shared/constant"
	gDto "mariachi/shared/dto"
	gRepo "mariachi/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Reservation interface {
	Insert(ctx context.Context, model model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	WithTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	GetOnDate(ctx context.Context, date string, statuses ...string) ([]model.Reservation, error)
	GetDue(ctx context.Context, date string) ([]model.Reservation, error)
}

type Payment interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Payment) error
	GetByReservation(ctx context.Context, reservationID string) ([]model.Payment, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func statusFilter(statuses ...string) gDto.Filter {
	return gDto.Filter{
		Field:    model.FieldStatus,
		Value:    statuses,
		Operator: gDto.FilterOperatorIn,
		Table:    model.TableName,
	}
}

// OpenByID matches the reservation only while it is still Pendiente or
// Confirmado, so a status write racing a cancellation updates nothing.
func OpenByID(id string) gDto.FilterGroup {
	open := statusFilter(model.StatusPending, model.StatusConfirmed)
	open.ArgName = "open_status"

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Value:    id,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			open,
		},
	}
}

// GetOnDate returns the reservations of a date in any of the given statuses.
func (r *repositoryImpl) GetOnDate(ctx context.Context, date string, statuses ...string) ([]model.Reservation, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetOnDate")
	defer scope.End()

	return r.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{ //nolint:wrapcheck
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEventDate,
				Value:    date,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			statusFilter(statuses...),
		},
	})
}

// GetDue returns the open reservations dated on or before date. The caller
// decides which of them are actually past their event time.
func (r *repositoryImpl) GetDue(ctx context.Context, date string) ([]model.Reservation, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetDue")
	defer scope.End()

	return r.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldEventDate, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{ //nolint:wrapcheck
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEventDate,
				Value:    date,
				Operator: gDto.FilterOperatorLessEq,
				Table:    model.TableName,
			},
			statusFilter(model.StatusPending, model.StatusConfirmed),
		},
	})
}

type paymentRepositoryImpl struct {
	gRepo.Repository[model.Payment]
	otel otel.Otel
}

func NewPayment(db *postgres.Connection, otel otel.Otel) Payment {
	return &paymentRepositoryImpl{
		Repository: gRepo.NewRepository[model.Payment](model.PaymentEntityName, model.PaymentTableName, model.FieldPaymentID, db, otel),
		otel:       otel,
	}
}

func (r *paymentRepositoryImpl) GetByReservation(ctx context.Context, reservationID string) ([]model.Payment, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.PaymentEntityName+".GetByReservation")
	defer scope.End()

	params := gDto.QueryParams{SortBy: model.FieldPaymentPaidAt, SortDir: gDto.SortDirAsc}

	return r.GetAll(ctx, params, gDto.FilterGroup{ //nolint:wrapcheck
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldPaymentReservationID,
				Value:    reservationID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.PaymentTableName,
			},
		},
	})
}

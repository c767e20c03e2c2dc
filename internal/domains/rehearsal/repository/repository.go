package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"mariachi/infras/otel"
	"mariachi/infras/postgres"
	"mariachi/internal/domains/rehearsal/model"
	"mariachi/shared/constant"
	gDto "mariachi/shared/dto"
	gRepo "mariachi/shared/repository"
)

type Rehearsal interface {
	Insert(ctx context.Context, model model.Rehearsal) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Rehearsal, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Rehearsal, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetScheduledOn(ctx context.Context, date string) ([]model.Rehearsal, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Rehearsal]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Rehearsal {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Rehearsal](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) GetScheduledOn(ctx context.Context, date string) ([]model.Rehearsal, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetScheduledOn")
	defer scope.End()

	return r.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{ //nolint:wrapcheck
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldDate,
				Value:    date,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.StatusScheduled,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	})
}

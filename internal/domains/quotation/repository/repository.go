package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"mariachi/infras/otel"
	"mariachi/infras/postgres"
	"mariachi/internal/domains/quotation/model"
	"mariachi/shared/constant"
	gDto "mariachi/shared/dto"
	gRepo "mariachi/shared/repository"
)

type Quotation interface {
	Insert(ctx context.Context, model model.Quotation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Quotation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Quotation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetWaitingOn(ctx context.Context, date string) ([]model.Quotation, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Quotation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Quotation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Quotation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) GetWaitingOn(ctx context.Context, date string) ([]model.Quotation, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetWaitingOn")
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
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.StatusWaiting,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	})
}

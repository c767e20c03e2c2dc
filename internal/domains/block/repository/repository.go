package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"mariachi/infras/otel"
	"mariachi/infras/postgres"
	"mariachi/internal/domains/block/model"
	"mariachi/shared/constant"
	gDto "mariachi/shared/dto"
	gRepo "mariachi/shared/repository"
)

type Block interface {
	Insert(ctx context.Context, model model.Block) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Block, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Block, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetActiveOn(ctx context.Context, date string) ([]model.Block, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Block]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Block {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Block](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetActiveOn loads every active block whose date span touches date.
// Callers still match by type through model.Block.Covers.
func (r *repositoryImpl) GetActiveOn(ctx context.Context, date string) ([]model.Block, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetActiveOn")
	defer scope.End()

	return r.GetAll(ctx, gDto.QueryParams{}, ActiveOnFilter(date)) //nolint:wrapcheck
}

func ActiveOnFilter(date string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldActive,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			SpanFilter(date),
		},
	}
}

// SpanFilter matches blocks whose start and end dates enclose date.
func SpanFilter(date string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				ArgName:  "date_from",
				Field:    model.FieldStartDate,
				Value:    date,
				Operator: gDto.FilterOperatorLessEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "date_to",
				Field:    model.FieldEndDate,
				Value:    date,
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    model.TableName,
			},
		},
	}
}

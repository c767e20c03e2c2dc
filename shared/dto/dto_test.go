package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mariachi/shared/constant"
	"mariachi/shared/dto"
	"mariachi/shared/model"
	"mariachi/shared/timezone"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2024, 9, 1, 18, 0, 0, 0, time.UTC)
	modifiedAt := createdAt.Add(26 * time.Hour)

	var metadata dto.Metadata
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "client-1",
		ModifiedBy: "employee-7",
	})

	assert.Equal(t, dto.Metadata{
		CreatedAt:  timezone.Format(createdAt, constant.DateFormat),
		ModifiedAt: timezone.Format(modifiedAt, constant.DateFormat),
		CreatedBy:  "client-1",
		ModifiedBy: "employee-7",
	}, metadata)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  dto.QueryParams
	}{
		{
			name:  "defaults",
			query: "",
			want:  dto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: "DESC"},
		},
		{
			name:  "explicit values",
			query: "?page=3&limit=25&sort_by=event_date&sort_dir=asc",
			want:  dto.QueryParams{Page: 3, Limit: 25, SortBy: "event_date", SortDir: "ASC"},
		},
		{
			name:  "invalid numbers fall back",
			query: "?page=-1&limit=abc",
			want:  dto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: "DESC"},
		},
		{
			name:  "limit capped",
			query: "?limit=5000",
			want:  dto.QueryParams{Page: 1, Limit: constant.MaxValueLimit, SortBy: "created_at", SortDir: "DESC"},
		},
		{
			name:  "unknown sort direction ignored",
			query: "?sort_dir=sideways",
			want:  dto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: "DESC"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var params dto.QueryParams
			params.FromRequest(httptest.NewRequest("GET", "/v1/reservations"+tt.query, nil))

			assert.Equal(t, tt.want, params)
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "eq with table",
			filter:    dto.Filter{Field: "status", Value: "Pendiente", Operator: dto.FilterOperatorEq, Table: "reservations"},
			wantWhere: "reservations.status = :status",
			wantArgs:  map[string]any{"status": "Pendiente"},
		},
		{
			name:      "not eq",
			filter:    dto.Filter{Field: "status", Value: "Cancelado", Operator: dto.FilterOperatorNotEq},
			wantWhere: "status != :status",
			wantArgs:  map[string]any{"status": "Cancelado"},
		},
		{
			name:      "less eq with arg name",
			filter:    dto.Filter{ArgName: "date_from", Field: "start_date", Value: "2024-07-15", Operator: dto.FilterOperatorLessEq},
			wantWhere: "start_date <= :date_from",
			wantArgs:  map[string]any{"date_from": "2024-07-15"},
		},
		{
			name:      "greater eq",
			filter:    dto.Filter{Field: "end_date", Value: "2024-07-15", Operator: dto.FilterOperatorGreaterEq},
			wantWhere: "end_date >= :end_date",
			wantArgs:  map[string]any{"end_date": "2024-07-15"},
		},
		{
			name:      "like",
			filter:    dto.Filter{Field: "email", Value: "rosa", Operator: dto.FilterOperatorLike},
			wantWhere: "LOWER(email) LIKE LOWER(:email)",
			wantArgs:  map[string]any{"email": "%rosa%"},
		},
		{
			name:      "in",
			filter:    dto.Filter{Field: "status", Value: []string{"Pendiente", "Finalizado"}, Operator: dto.FilterOperatorIn},
			wantWhere: "status IN (:status_0, :status_1)",
			wantArgs:  map[string]any{"status_0": "Pendiente", "status_1": "Finalizado"},
		},
		{
			name:      "in with empty set",
			filter:    dto.Filter{Field: "status", Value: []string{}, Operator: dto.FilterOperatorIn},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "status", Value: "x", Operator: "between"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		group := dto.FilterGroup{}

		where, args := group.GetWhereClause()
		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("nested", func(t *testing.T) {
		group := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorAnd,
			Filters: []any{
				dto.Filter{Field: "event_date", Value: "2024-09-15", Operator: dto.FilterOperatorEq},
				dto.FilterGroup{
					Operator: dto.FilterGroupOperatorOr,
					Filters: []any{
						dto.Filter{ArgName: "pending", Field: "status", Value: "Pendiente", Operator: dto.FilterOperatorEq},
						dto.Filter{ArgName: "finalized", Field: "status", Value: "Finalizado", Operator: dto.FilterOperatorEq},
					},
				},
			},
		}

		where, args := group.GetWhereClause()
		assert.Equal(t, "(event_date = :event_date AND (status = :pending OR status = :finalized))", where)
		assert.Equal(t, map[string]any{"event_date": "2024-09-15", "pending": "Pendiente", "finalized": "Finalizado"}, args)
	})

	t.Run("skips empty clauses", func(t *testing.T) {
		group := dto.FilterGroup{
			Filters: []any{
				dto.FilterGroup{},
				dto.Filter{Field: "zone", Value: "Rural", Operator: dto.FilterOperatorEq},
			},
		}

		where, _ := group.GetWhereClause()
		assert.Equal(t, "(zone = :zone)", where)
	})
}

func TestFilterGroup_AddIfPresent(t *testing.T) {
	active := false

	var nilFlag *bool

	group := dto.FilterGroup{}
	group.AddEqIfPresent("status", "reservations", "")
	group.AddEqIfPresent("status", "reservations", nil)
	group.AddEqIfPresent("is_active", "calendar_blocks", nilFlag)
	group.AddEqIfPresent("zone", "reservations", "Urbana")
	group.AddEqIfPresent("is_active", "calendar_blocks", &active)
	group.AddLikeIfPresent("email", "users", "ROSA")

	assert.Equal(t, dto.FilterGroupOperatorAnd, group.Operator)
	assert.Equal(t, []any{
		dto.Filter{Field: "zone", Value: "Urbana", Operator: dto.FilterOperatorEq, Table: "reservations"},
		dto.Filter{Field: "is_active", Value: false, Operator: dto.FilterOperatorEq, Table: "calendar_blocks"},
		dto.Filter{Field: "email", Value: "ROSA", Operator: dto.FilterOperatorLike, Table: "users"},
	}, group.Filters)
}

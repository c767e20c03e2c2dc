package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mariachi/infras/otel/mocks"
	"mariachi/shared/dto"
	"mariachi/shared/failure"
	"mariachi/shared/model"
)

type song struct {
	ID     string `db:"id"`
	Title  string `db:"title"`
	Hidden string `db:"-"`
	Notes  string
	model.Metadata
}

func newSongRepository() Repository[song] {
	return NewRepository[song]("song", "songs", "id", nil, mocks.NewOtel())
}

func TestRepository_Columns(t *testing.T) {
	repo := newSongRepository()

	assert.Equal(t, []string{"id", "title", "created_at", "modified_at", "created_by", "modified_by"}, repo.columns)
	assert.Equal(t, "songs.id, songs.title", repo.selectList([]string{"title", "id"}))
}

func TestRepository_BuildWhereClause(t *testing.T) {
	repo := newSongRepository()

	where, args := repo.BuildWhereClause(dto.FilterGroup{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = repo.BuildWhereClause(dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "id", Value: "s-1", Operator: dto.FilterOperatorEq, Table: "songs"},
		},
	})
	assert.Equal(t, " WHERE (songs.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "s-1"}, args)
}

func TestRepository_OrderBy(t *testing.T) {
	repo := newSongRepository()

	tests := []struct {
		name   string
		params dto.QueryParams
		want   string
	}{
		{name: "known column", params: dto.QueryParams{SortBy: "created_at", SortDir: "DESC"}, want: " ORDER BY songs.created_at DESC"},
		{name: "unknown column", params: dto.QueryParams{SortBy: "1; DROP TABLE songs", SortDir: "ASC"}},
		{name: "missing direction", params: dto.QueryParams{SortBy: "title"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repo.orderBy(tt.params))
		})
	}
}

func TestPaginate(t *testing.T) {
	args := map[string]any{}
	assert.Empty(t, paginate(dto.QueryParams{}, args))
	assert.Empty(t, args)

	assert.Equal(t, " LIMIT :limit", paginate(dto.QueryParams{Limit: 5}, args))
	assert.Equal(t, map[string]any{"limit": 5}, args)

	args = map[string]any{}
	assert.Equal(t, " LIMIT :limit OFFSET :offset", paginate(dto.QueryParams{Page: 3, Limit: 10}, args))
	assert.Equal(t, map[string]any{"limit": 10, "offset": 20}, args)
}

func TestRepository_Constraint(t *testing.T) {
	repo := newSongRepository()

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "unique violation",
			err:      fmt.Errorf("exec: %w", &pq.Error{Code: "23505"}),
			wantCode: http.StatusConflict,
		},
		{
			name:     "foreign key violation",
			err:      &pq.Error{Code: "23503"},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "other postgres error",
			err:  &pq.Error{Code: "40001"},
		},
		{
			name: "not a postgres error",
			err:  errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := repo.constraint(tt.err)

			if tt.wantCode == 0 {
				assert.NoError(t, mapped)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(mapped))
		})
	}
}

type recordingExecer struct {
	query    string
	args     map[string]any
	affected int64
}

func (e *recordingExecer) NamedExecContext(_ context.Context, query string, arg interface{}) (sql.Result, error) {
	e.query = query
	e.args, _ = arg.(map[string]any)

	return driverResult(e.affected), nil
}

type driverResult int64

func (r driverResult) LastInsertId() (int64, error) { return 0, nil }
func (r driverResult) RowsAffected() (int64, error) { return int64(r), nil }

func TestRepository_Update(t *testing.T) {
	repo := newSongRepository()
	guarded := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "id", Value: "s-1", Operator: dto.FilterOperatorEq, Table: "songs"},
			dto.Filter{ArgName: "open", Field: "title", Value: []string{"Cielito Lindo"}, Operator: dto.FilterOperatorIn, Table: "songs"},
		},
	}

	t.Run("matched row", func(t *testing.T) {
		exec := &recordingExecer{affected: 1}

		err := repo.update(context.Background(), "Update", exec, map[string]any{"title": "La Bikina"}, guarded)

		require.NoError(t, err)
		assert.Equal(t, "UPDATE songs SET title = :title WHERE (songs.id = :id AND songs.title IN (:open_0))", exec.query)
		assert.Equal(t, map[string]any{"id": "s-1", "open_0": "Cielito Lindo", "title": "La Bikina"}, exec.args)
	})

	t.Run("guard no longer holds", func(t *testing.T) {
		exec := &recordingExecer{}

		err := repo.update(context.Background(), "Update", exec, map[string]any{"title": "La Bikina"}, guarded)

		require.ErrorIs(t, err, ErrNotUpdated)
	})

	t.Run("missing filter", func(t *testing.T) {
		exec := &recordingExecer{affected: 1}

		err := repo.update(context.Background(), "Update", exec, map[string]any{"title": "La Bikina"}, dto.FilterGroup{})

		require.ErrorIs(t, err, errRequiredFilter)
		assert.Empty(t, exec.query)
	})
}

package dto

import (
	"mariachi/shared/constant"
	"net/http"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	SortBy  string `json:"sort_by"`
	SortDir string `json:"sort_dir" enums:"ASC,DESC"`
}

// FromRequest reads page, limit, sort_by and sort_dir from the query string.
// Invalid values fall back to the defaults and limit is capped at MaxValueLimit.
// The sort column is checked against the table later by the repository.
func (q *QueryParams) FromRequest(r *http.Request) {
	query := r.URL.Query()

	q.Page = positiveInt(query.Get(constant.RequestParamPage), constant.DefaultValuePage)
	q.Limit = min(positiveInt(query.Get(constant.RequestParamLimit), constant.DefaultValueLimit), constant.MaxValueLimit)
	q.SortBy = constant.DefaultValueSortBy
	q.SortDir = constant.DefaultValueSortDir

	if sortBy := strings.TrimSpace(query.Get(constant.RequestParamSortBy)); sortBy != "" {
		q.SortBy = sortBy
	}

	if sortDir := strings.ToUpper(query.Get(constant.RequestParamSortDir)); sortDir == SortDirAsc || sortDir == SortDirDesc {
		q.SortDir = sortDir
	}
}

func positiveInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}

	return parsed
}

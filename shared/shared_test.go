package shared_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mariachi/shared"
	"mariachi/shared/cache"
	"mariachi/shared/constant"
	"mariachi/shared/dto"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "true", input: "true", expected: boolPtr(true)},
		{name: "false", input: "false", expected: boolPtr(false)},
		{name: "numeric true", input: "1", expected: boolPtr(true)},
		{name: "numeric false", input: "0", expected: boolPtr(false)},
		{name: "upper case", input: "TRUE", expected: boolPtr(true)},
		{name: "spanish word returns nil", input: "si", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.ConvertStringToBool(tt.input)

			switch {
			case tt.expected == nil && result != nil:
				t.Errorf("expected nil, got %v", *result)
			case tt.expected != nil && result == nil:
				t.Errorf("expected %v, got nil", *tt.expected)
			case tt.expected != nil && *result != *tt.expected:
				t.Errorf("expected %v, got %v", *tt.expected, *result)
			}
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "no reservations", total: 0, limit: 10, expected: 1},
		{name: "zero limit", total: 40, limit: 0, expected: 1},
		{name: "negative limit", total: 40, limit: -5, expected: 1},
		{name: "exact division", total: 40, limit: 10, expected: 4},
		{name: "remainder adds a page", total: 41, limit: 10, expected: 5},
		{name: "fewer than a page", total: 3, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := shared.CalculateTotalPage(tt.total, tt.limit); result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	type update struct {
		ClientName string   `db:"client_name"`
		Zone       string   `db:"zone"`
		Notes      string   `db:"notes"`
		Total      *int64   `db:"total_amount"`
		Repertoire []string `json:"repertoire_ids"`
	}

	zero := int64(0)

	tests := []struct {
		name     string
		data     any
		username string
		expected map[string]any
	}{
		{
			name:     "only set db fields are kept",
			data:     update{ClientName: "Familia Pérez", Zone: "Rural", Repertoire: []string{"s1"}},
			username: "admin",
			expected: map[string]any{
				"client_name": "Familia Pérez",
				"zone":        "Rural",
			},
		},
		{
			name:     "pointer to zero is not a zero field",
			data:     update{Total: &zero},
			username: "employee",
			expected: map[string]any{
				"total_amount": &zero,
			},
		},
		{
			name:     "empty update keeps only metadata",
			data:     update{},
			username: constant.ContextSystem,
			expected: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.TransformFields(tt.data, tt.username)

			if _, ok := result[constant.FieldModifiedAt].(time.Time); !ok {
				t.Error("expected modified_at to be a time.Time")
			}

			if result[constant.FieldModifiedBy] != tt.username {
				t.Errorf("expected modified_by to be %s, got %v", tt.username, result[constant.FieldModifiedBy])
			}

			delete(result, constant.FieldModifiedAt)
			delete(result, constant.FieldModifiedBy)

			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID("r-1", "id", "reservations")

	expected := dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    "id",
				Value:    "r-1",
				Operator: dto.FilterOperatorEq,
				Table:    "reservations",
			},
		},
	}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("expected %+v, got %+v", expected, result)
	}
}

func TestUserFromContext(t *testing.T) {
	if user := shared.UserFromContext(context.Background()); user != constant.ContextGuest {
		t.Errorf("expected %s, got %s", constant.ContextGuest, user)
	}

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "u-1")

	if user := shared.UserFromContext(ctx); user != "u-1" {
		t.Errorf("expected u-1, got %s", user)
	}
}

func TestBuildCacheKey(t *testing.T) {
	if key := shared.BuildCacheKey(constant.CacheKeyAvailability, "2024-09-15"); key != "availability:2024-09-15" {
		t.Errorf("unexpected key %s", key)
	}

	if key := shared.BuildCacheKey("reservation:get"); key != "reservation:get" {
		t.Errorf("unexpected key %s", key)
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 2, Limit: 10, SortBy: "event_date", SortDir: "ASC"}

	pending := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}
	pending.AddEqIfPresent("status", "reservations", "Pendiente")

	confirmed := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}
	confirmed.AddEqIfPresent("status", "reservations", "Confirmado")

	first := shared.BuildCacheKeyWithQuery("reservation:gets", params, pending)
	again := shared.BuildCacheKeyWithQuery("reservation:gets", params, pending)
	other := shared.BuildCacheKeyWithQuery("reservation:gets", params, confirmed)

	if first != again {
		t.Errorf("expected a stable key, got %s and %s", first, again)
	}

	if first == other {
		t.Errorf("expected different filters to produce different keys, got %s", first)
	}

	if !strings.HasPrefix(first, "reservation:gets:2:10:event_date:ASC:") {
		t.Errorf("unexpected key %s", first)
	}
}

func boolPtr(b bool) *bool {
	return &b
}

// memoryCache is a RedisCache over a map, enough to replay interleavings.
type memoryCache struct {
	values  map[string][]byte
	failGet bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]byte{}}
}

func (m *memoryCache) Save(_ context.Context, key string, value any, _ int) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.values[key] = raw

	return nil
}

func (m *memoryCache) Get(_ context.Context, key string, value any) error {
	if m.failGet {
		return errors.New("connection refused")
	}

	raw, ok := m.values[key]
	if !ok {
		return fmt.Errorf("failed to get cache value: %w", cache.Nil)
	}

	return json.Unmarshal(raw, value)
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	delete(m.values, key)

	return nil
}

func (m *memoryCache) Clear(_ context.Context, _ string) error {
	return nil
}

func (m *memoryCache) Incr(ctx context.Context, key string) (int64, error) {
	var value int64

	_ = m.Get(ctx, key, &value)
	value++

	return value, m.Save(ctx, key, value, 0)
}

func TestAvailabilityCacheKey_StaleSaveAfterInvalidation(t *testing.T) {
	ctx := context.Background()
	redisCache := newMemoryCache()

	before, err := shared.AvailabilityCacheKey(ctx, redisCache, "2024-09-15")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if before != "availability:0:2024-09-15" {
		t.Errorf("unexpected key %s", before)
	}

	// a write lands between the snapshot and the save of a concurrent read
	shared.InvalidateAvailability(ctx, redisCache)

	if err = redisCache.Save(ctx, before, []string{"16:00"}, 300); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	after, err := shared.AvailabilityCacheKey(ctx, redisCache, "2024-09-15")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if after == before {
		t.Fatalf("expected a new generation, got %s", after)
	}

	var hours []string
	if err = redisCache.Get(ctx, after, &hours); !errors.Is(err, cache.Nil) {
		t.Errorf("expected a miss for the new generation, got %v (%v)", hours, err)
	}
}

func TestAvailabilityCacheKey_CacheDown(t *testing.T) {
	redisCache := newMemoryCache()
	redisCache.failGet = true

	if _, err := shared.AvailabilityCacheKey(context.Background(), redisCache, "2024-09-15"); err == nil {
		t.Error("expected an error when the generation cannot be read")
	}
}

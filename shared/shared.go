package shared

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"mariachi/shared/cache"
	"mariachi/shared/constant"
	"mariachi/shared/dto"
	"mariachi/shared/timezone"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the non-zero db-tagged fields of a struct into an update map
// stamped with modified_at and modified_by.
func TransformFields(data interface{}, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// UserFromContext returns the authenticated user id, or the guest marker.
func UserFromContext(ctx context.Context) string {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == "" {
		return constant.ContextGuest
	}

	return user
}

func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// BuildCacheKeyWithQuery derives a stable key from the pagination params and the rendered filter.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	keys := slices.Sorted(maps.Keys(args))
	values := make([]string, 0, len(keys))

	for _, key := range keys {
		values = append(values, fmt.Sprintf("%s=%v", key, args[key]))
	}

	return BuildCacheKey(
		prefix,
		strconv.Itoa(params.Page),
		strconv.Itoa(params.Limit),
		params.SortBy,
		params.SortDir,
		where,
		strings.Join(values, ","),
	)
}

// InvalidateCaches clears every key under prefix. Failures are logged only.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

var availabilityGenerationKey = BuildCacheKey(constant.CacheKeyAvailability, "generation")

// AvailabilityCacheKey keys the cached hours of date under the current
// availability generation. A miss on the generation reads as generation 0.
func AvailabilityCacheKey(ctx context.Context, redisCache cache.RedisCache, date string) (string, error) {
	var generation int64

	if err := redisCache.Get(ctx, availabilityGenerationKey, &generation); err != nil && !errors.Is(err, cache.Nil) {
		return "", fmt.Errorf("failed to read availability generation: %w", err)
	}

	return BuildCacheKey(constant.CacheKeyAvailability, strconv.FormatInt(generation, 10), date), nil
}

// InvalidateAvailability starts a new availability generation. Hours computed
// from a snapshot taken before the write can still be saved, but only under a
// generation nobody reads any more. Runs inline so the next read sees it.
func InvalidateAvailability(ctx context.Context, redisCache cache.RedisCache) {
	if _, err := redisCache.Incr(ctx, availabilityGenerationKey); err != nil {
		log.Error().Err(err).Msg("failed to invalidate availability cache")
	}
}

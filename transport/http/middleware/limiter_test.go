package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"mariachi/config"
	metricsMocks "mariachi/infras/metrics/mocks"
	otelMocks "mariachi/infras/otel/mocks"
	"mariachi/shared/cache"
	cacheMocks "mariachi/shared/cache/mocks"
	"mariachi/shared/constant"
	"mariachi/transport/http/middleware"
)

func limiterConfig(enable bool) *config.Config {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = 3
	cfg.App.RateLimiter.WindowSeconds = 60

	return cfg
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name          string
		enable        bool
		setupMock     func(m *cacheMocks.MockRedisCache)
		wantCode      int
		wantRemaining string
	}{
		{
			name:      "disabled",
			setupMock: func(*cacheMocks.MockRedisCache) {},
			wantCode:  http.StatusOK,
		},
		{
			name:   "first request in window",
			enable: true,
			setupMock: func(m *cacheMocks.MockRedisCache) {
				m.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				m.EXPECT().Save(gomock.Any(), gomock.Any(), 1, 60).Return(nil)
			},
			wantCode:      http.StatusOK,
			wantRemaining: "2",
		},
		{
			name:   "limit exceeded",
			enable: true,
			setupMock: func(m *cacheMocks.MockRedisCache) {
				m.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*int) = 3

						return nil
					})
				m.EXPECT().Save(gomock.Any(), gomock.Any(), 4, 60).Return(nil)
			},
			wantCode:      http.StatusTooManyRequests,
			wantRemaining: "0",
		},
		{
			name:   "cache down fails open",
			enable: true,
			setupMock: func(m *cacheMocks.MockRedisCache) {
				m.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
			},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			redisCache := cacheMocks.NewMockRedisCache(ctrl)
			tt.setupMock(redisCache)

			app := middleware.NewAppMiddleware(otelMocks.NewOtel(), limiterConfig(tt.enable), redisCache, metricsMocks.NewMetrics())

			handler := app.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/v1/reservations", nil)
			req.RemoteAddr = "203.0.113.7:51234"

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		})
	}
}

package metrics_test

import (
	"mariachi/config"
	"mariachi/infras/metrics"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Handler(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "mariachi-test"

	m := metrics.New(cfg)
	m.ObserveHTTP(http.MethodGet, "/v1/availability/{date}", http.StatusOK, 15*time.Millisecond)
	m.CountRejection("reservation", "conflict")
	m.CountSwept(2)

	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	body := recorder.Body.String()
	assert.Contains(t, body, `mariachi_http_requests_total{app="mariachi-test",method="GET",route="/v1/availability/{date}",status="200"} 1`)
	assert.Contains(t, body, `mariachi_booking_rejections_total{app="mariachi-test",entity="reservation",reason="conflict"} 1`)
	assert.Contains(t, body, `mariachi_reservations_swept_total{app="mariachi-test"} 2`)
}

func TestMetrics_NewIsRepeatable(t *testing.T) {
	cfg := &config.Config{}

	assert.NotPanics(t, func() {
		metrics.New(cfg)
		metrics.New(cfg)
	})
}

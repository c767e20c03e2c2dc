package mocks

import (
	"mariachi/infras/metrics"
	"net/http"
	"time"
)

type metricsImpl struct {
}

// ObserveHTTP implements metrics.Metrics.
func (m *metricsImpl) ObserveHTTP(_, _ string, _ int, _ time.Duration) {

}

// CountRejection implements metrics.Metrics.
func (m *metricsImpl) CountRejection(_, _ string) {

}

// CountSwept implements metrics.Metrics.
func (m *metricsImpl) CountSwept(_ int) {

}

// Handler implements metrics.Metrics.
func (m *metricsImpl) Handler() http.Handler {
	return http.NotFoundHandler()
}

func NewMetrics() metrics.Metrics {
	return &metricsImpl{}
}

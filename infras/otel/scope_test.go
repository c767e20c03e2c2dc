package otel_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace/noop"

	"mariachi/infras/otel"
)

type zone string

func (z zone) String() string { return "zone:" + string(z) }

func TestAttribute(t *testing.T) {
	at := time.Date(2024, 7, 15, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		want  attribute.KeyValue
	}{
		{name: "bool", value: true, want: attribute.Bool("k", true)},
		{name: "string", value: "19:00", want: attribute.String("k", "19:00")},
		{name: "int", value: 17, want: attribute.Int("k", 17)},
		{name: "int64", value: int64(480000), want: attribute.Int64("k", 480000)},
		{name: "float", value: 0.5, want: attribute.Float64("k", 0.5)},
		{name: "strings", value: []string{"08:00", "09:00"}, want: attribute.StringSlice("k", []string{"08:00", "09:00"})},
		{name: "ints", value: []int{8, 9}, want: attribute.IntSlice("k", []int{8, 9})},
		{name: "duration", value: 1500 * time.Millisecond, want: attribute.Int64("k.ms", 1500)},
		{name: "time", value: at, want: attribute.String("k", "2024-07-15T19:00:00Z")},
		{name: "stringer", value: zone("Urbana"), want: attribute.String("k", "zone:Urbana")},
		{name: "fallback", value: struct{ A int }{A: 1}, want: attribute.String("k", "{1}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, otel.Attribute("k", tt.value))
		})
	}
}

func TestScope_NoopSpan(t *testing.T) {
	_, span := noop.NewTracerProvider().Tracer("test").Start(t.Context(), "op")
	scope := otel.NewScope(span)

	assert.NotPanics(t, func() {
		scope.SetAttributes(map[string]any{"date": "2024-07-15", "hours": []int{19, 20}})
		scope.TraceIfError(nil)
		scope.TraceError(errors.New("conflict"))
		scope.AddEvent("checked")
		scope.End()
	})
}

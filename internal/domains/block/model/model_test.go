package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mariachi/internal/domains/block/model"
)

func day(value string) time.Time {
	parsed, _ := time.Parse(time.DateOnly, value)

	return parsed
}

func TestBlock_Covers(t *testing.T) {
	tests := []struct {
		name  string
		block model.Block
		date  string
		want  bool
	}{
		{"full date exact match", model.Block{Type: model.TypeFullDate, StartDate: day("2024-07-15"), EndDate: day("2024-07-15")}, "2024-07-15", true},
		{"full date other day", model.Block{Type: model.TypeFullDate, StartDate: day("2024-07-15"), EndDate: day("2024-07-15")}, "2024-07-16", false},
		{"date range first day", model.Block{Type: model.TypeDateRange, StartDate: day("2024-08-01"), EndDate: day("2024-08-03")}, "2024-08-01", true},
		{"date range last day", model.Block{Type: model.TypeDateRange, StartDate: day("2024-08-01"), EndDate: day("2024-08-03")}, "2024-08-03", true},
		{"date range after", model.Block{Type: model.TypeDateRange, StartDate: day("2024-08-01"), EndDate: day("2024-08-03")}, "2024-08-04", false},
		{"time range exact date", model.Block{Type: model.TypeTimeRange, StartDate: day("2024-07-16"), EndDate: day("2024-07-16")}, "2024-07-16", true},
		{"unknown type", model.Block{Type: "WEEKLY", StartDate: day("2024-07-16")}, "2024-07-16", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.block.Covers(tt.date))
		})
	}
}

func TestBlock_Hours(t *testing.T) {
	block := model.Block{Type: model.TypeTimeRange, StartTime: "21:00", EndTime: "00:00"}
	assert.Equal(t, []int{21, 22, 23}, block.Hours())

	block = model.Block{Type: model.TypeTimeRange, StartTime: "10:00", EndTime: "12:00"}
	assert.Equal(t, []int{10, 11}, block.Hours())

	assert.Nil(t, model.Block{Type: model.TypeFullDate}.Hours())
	assert.Nil(t, model.Block{Type: model.TypeTimeRange, StartTime: "bad"}.Hours())
}

package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mariachi/infras/otel/mocks"
	"mariachi/internal/domains/pricing/model"
	"mariachi/internal/domains/pricing/model/dto"
	"mariachi/internal/domains/pricing/service"
)

func songs(count int) []string {
	ids := make([]string, count)
	for i := range ids {
		ids[i] = fmt.Sprintf("song-%d", i)
	}

	return ids
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name  string
		input service.Input
		want  int64
	}{
		{
			name:  "urban reservation without extra songs",
			input: service.Input{Kind: model.KindReservation, Zone: model.ZoneUrban, RepertoireIDs: songs(0)},
			want:  480000,
		},
		{
			name:  "rural reservation three songs over quota",
			input: service.Input{Kind: model.KindReservation, Zone: model.ZoneRural, RepertoireIDs: songs(10)},
			want:  680000,
		},
		{
			name:  "reservation ignores time range",
			input: service.Input{Kind: model.KindReservation, Zone: model.ZoneUrban, StartTime: "08:00", EndTime: "12:00"},
			want:  480000,
		},
		{
			name:  "urban quotation of two hours",
			input: service.Input{Kind: model.KindQuotation, Zone: model.ZoneUrban, StartTime: "08:00", EndTime: "10:00", RepertoireIDs: songs(7)},
			want:  960000,
		},
		{
			name:  "quotation across midnight",
			input: service.Input{Kind: model.KindQuotation, Zone: model.ZoneUrban, StartTime: "23:00", EndTime: "01:00"},
			want:  960000,
		},
		{
			name:  "quotation without times bills one hour",
			input: service.Input{Kind: model.KindQuotation, Zone: model.ZoneRural},
			want:  650000,
		},
		{
			name:  "quotation with equal times bills one hour",
			input: service.Input{Kind: model.KindQuotation, Zone: model.ZoneUrban, StartTime: "10:00", EndTime: "10:00", RepertoireIDs: songs(8)},
			want:  490000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.Calculate(tt.input))
		})
	}
}

func TestState(t *testing.T) {
	input := service.Input{Kind: model.KindReservation, Zone: model.ZoneUrban}

	state := service.NewState(input)
	assert.Equal(t, int64(480000), state.Total())
	assert.False(t, state.Manual())

	state.Override(400000)
	assert.True(t, state.Manual())

	assert.Equal(t, int64(400000), state.Update(input), "same input keeps the override")
	assert.True(t, state.Manual())

	input.Zone = model.ZoneRural
	assert.Equal(t, int64(650000), state.Update(input), "changed zone recalculates")
	assert.False(t, state.Manual())

	input.RepertoireIDs = songs(9)
	assert.Equal(t, int64(670000), state.Update(input))
}

func TestRestoreState(t *testing.T) {
	input := service.Input{Kind: model.KindReservation, Zone: model.ZoneUrban}

	assert.Equal(t, int64(100), service.RestoreState(input, 100, true).Total())
	assert.Equal(t, int64(480000), service.RestoreState(input, 100, false).Total())
}

func TestPricingService_Quote(t *testing.T) {
	svc := service.New(mocks.NewOtel())

	res, err := svc.Quote(context.Background(), dto.QuoteRequest{
		Kind:          model.KindQuotation,
		Zone:          model.ZoneUrban,
		StartTime:     "08:00",
		EndTime:       "10:00",
		RepertoireIDs: songs(9),
	})
	require.NoError(t, err)
	assert.Equal(t, dto.QuoteResponse{
		Base:       480000,
		Hours:      2,
		ExtraSongs: 2,
		Surcharge:  20000,
		Calculated: 980000,
		Total:      980000,
	}, res)

	manual := int64(900000)

	res, err = svc.Quote(context.Background(), dto.QuoteRequest{Kind: model.KindReservation, Zone: model.ZoneRural, ManualTotal: &manual})
	require.NoError(t, err)
	assert.Equal(t, int64(650000), res.Calculated)
	assert.Equal(t, manual, res.Total)
	assert.True(t, res.Manual)
}

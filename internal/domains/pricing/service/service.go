package service

import (
	"context"

	"mariachi/infras/otel"
	"mariachi/internal/domains/pricing/model/dto"
	"mariachi/shared/constant"
)

type Pricing interface {
	Quote(ctx context.Context, req dto.QuoteRequest) (dto.QuoteResponse, error)
}

type serviceImpl struct {
	otel otel.Otel
}

func New(otel otel.Otel) Pricing {
	return &serviceImpl{
		otel: otel,
	}
}

func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteRequest) (res dto.QuoteResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()

	input := Input{
		Kind:          req.Kind,
		Zone:          req.Zone,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		RepertoireIDs: req.RepertoireIDs,
	}

	breakdown := input.Breakdown()

	state := NewState(input)
	if req.ManualTotal != nil {
		state.Override(*req.ManualTotal)
	}

	res = dto.QuoteResponse{
		Base:       breakdown.Base,
		Hours:      breakdown.Hours,
		ExtraSongs: breakdown.ExtraSongs,
		Surcharge:  breakdown.Surcharge,
		Calculated: breakdown.Total,
		Total:      state.Total(),
		Manual:     state.Manual(),
	}

	return res, nil
}

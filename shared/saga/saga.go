// Package saga runs multi-store mutations as ordered steps with compensating actions.
package saga

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Step struct {
	Name       string
	Action     func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

type Saga struct {
	name  string
	steps []Step
}

func New(name string, steps ...Step) *Saga {
	return &Saga{
		name:  name,
		steps: steps,
	}
}

// Run executes the steps in order. When a step fails, the compensations of the
// steps that already completed run in reverse order and the step error is returned,
// joined with any compensation failure.
func (s *Saga) Run(ctx context.Context) error {
	for idx, step := range s.steps {
		err := step.Action(ctx)
		if err == nil {
			continue
		}

		log.Warn().Err(err).Str("saga", s.name).Str("step", step.Name).Msg("saga step failed, compensating")

		if compErr := s.compensate(context.WithoutCancel(ctx), idx); compErr != nil {
			return errors.Join(err, compErr)
		}

		return err
	}

	return nil
}

func (s *Saga) compensate(ctx context.Context, failedIdx int) error {
	var errs []error

	for idx := failedIdx - 1; idx >= 0; idx-- {
		step := s.steps[idx]
		if step.Compensate == nil {
			continue
		}

		if err := step.Compensate(ctx); err != nil {
			log.Error().Err(err).Str("saga", s.name).Str("step", step.Name).Msg("failed to compensate saga step")

			errs = append(errs, fmt.Errorf("failed to compensate %s: %w", step.Name, err))
		}
	}

	return errors.Join(errs...)
}

package service

import (
	"slices"

	"mariachi/internal/domains/pricing/model"
	"mariachi/shared/slot"
)

type Input struct {
	Kind          string
	Zone          string
	StartTime     string
	EndTime       string
	RepertoireIDs []string
}

func (i Input) equal(other Input) bool {
	return i.Kind == other.Kind &&
		i.Zone == other.Zone &&
		i.StartTime == other.StartTime &&
		i.EndTime == other.EndTime &&
		slices.Equal(i.RepertoireIDs, other.RepertoireIDs)
}

type Breakdown struct {
	Base       int64
	Hours      int
	ExtraSongs int
	Surcharge  int64
	Total      int64
}

// Breakdown prices an input. Quotations multiply the base by their duration,
// reservations pay the flat base.
func (i Input) Breakdown() Breakdown {
	res := Breakdown{
		Base:  model.BaseRate(i.Zone),
		Hours: 1,
	}

	if i.Kind == model.KindQuotation {
		res.Hours = slot.Duration(i.StartTime, i.EndTime)
	}

	if extra := len(i.RepertoireIDs) - model.IncludedSongs; extra > 0 {
		res.ExtraSongs = extra
		res.Surcharge = int64(extra) * model.ExtraSongPrice
	}

	res.Total = res.Base*int64(res.Hours) + res.Surcharge

	return res
}

func Calculate(input Input) int64 {
	return input.Breakdown().Total
}

// State tracks a total that an operator may override. The override holds until
// one of the pricing inputs changes.
type State struct {
	input  Input
	total  int64
	manual bool
}

func NewState(input Input) *State {
	return &State{input: input, total: Calculate(input)}
}

// RestoreState rebuilds the state of a stored record.
func RestoreState(input Input, total int64, manual bool) *State {
	if !manual {
		total = Calculate(input)
	}

	return &State{input: input, total: total, manual: manual}
}

// Update recalculates when the input differs from the last one seen and drops
// any manual override.
func (s *State) Update(input Input) int64 {
	if s.input.equal(input) {
		return s.total
	}

	s.input = input
	s.total = Calculate(input)
	s.manual = false

	return s.total
}

func (s *State) Override(total int64) {
	s.total = total
	s.manual = true
}

func (s *State) Total() int64 {
	return s.total
}

func (s *State) Manual() bool {
	return s.manual
}

package service

import (
	"slices"

	"mariachi/internal/domains/availability/dto"
	blockModel "mariachi/internal/domains/block/model"
	quotationModel "mariachi/internal/domains/quotation/model"
	rehearsalModel "mariachi/internal/domains/rehearsal/model"
	reservationModel "mariachi/internal/domains/reservation/model"
	"mariachi/shared/slot"
)

// Snapshot is everything that occupies one date.
type Snapshot struct {
	Date         string
	Blocks       []blockModel.Block
	Reservations []reservationModel.Reservation
	Quotations   []quotationModel.Quotation
	Rehearsals   []rehearsalModel.Rehearsal
}

// fullBlock returns the first active whole-day block covering the date.
func (s Snapshot) fullBlock() (blockModel.Block, bool) {
	idx := slices.IndexFunc(s.Blocks, func(block blockModel.Block) bool {
		return block.Active && block.IsFull() && block.Covers(s.Date)
	})
	if idx == -1 {
		return blockModel.Block{}, false
	}

	return s.Blocks[idx], true
}

func (s Snapshot) partialBlocks() []blockModel.Block {
	partial := []blockModel.Block{}

	for _, block := range s.Blocks {
		if block.Active && block.Type == blockModel.TypeTimeRange && block.Covers(s.Date) {
			partial = append(partial, block)
		}
	}

	return partial
}

// Status resolves the block state of the date. Whole-day blocks win over time ranges.
func (s Snapshot) Status() dto.DateStatus {
	status := dto.DateStatus{Date: s.Date}

	if block, ok := s.fullBlock(); ok {
		status.IsBlocked = true
		status.Reason = block.Reason
		status.Type = block.Type

		return status
	}

	partial := s.partialBlocks()
	if len(partial) == 0 {
		return status
	}

	status.HasPartialBlocks = true
	status.BlockedRanges = make([]dto.BlockedRange, len(partial))

	for i, block := range partial {
		status.BlockedRanges[i] = dto.BlockedRange{
			Start:  block.StartTime,
			End:    block.EndTime,
			Reason: block.Reason,
		}
	}

	return status
}

// Occupied collects the hours shown as taken. Point events hold their hour
// and the one after it, quotations hold their whole range.
func (s Snapshot) Occupied() map[int]struct{} {
	occupied := map[int]struct{}{}

	mark := func(hours ...int) {
		for _, hour := range hours {
			occupied[slot.Normalize(hour)] = struct{}{}
		}
	}

	for _, block := range s.partialBlocks() {
		mark(block.Hours()...)
	}

	for _, reservation := range s.Reservations {
		if reservation.Status == reservationModel.StatusCancelled {
			continue
		}

		if hour, err := slot.Parse(reservation.EventTime); err == nil {
			mark(hour, slot.Next(hour))
		}
	}

	for _, quotation := range s.Quotations {
		if quotation.IsWaiting() {
			mark(quotation.Hours()...)
		}
	}

	for _, rehearsal := range s.Rehearsals {
		if !rehearsal.IsScheduled() {
			continue
		}

		if hour, err := slot.Parse(rehearsal.Time); err == nil {
			mark(hour, slot.Next(hour))
		}
	}

	return occupied
}

// FreeHours lists the grid slots nobody holds, in grid order.
func (s Snapshot) FreeHours() []string {
	if s.Status().IsBlocked {
		return []string{}
	}

	occupied := s.Occupied()
	free := []string{}

	for _, value := range slot.Grid() {
		hour, _ := slot.Parse(value)

		if _, taken := occupied[hour]; !taken {
			free = append(free, value)
		}
	}

	return free
}

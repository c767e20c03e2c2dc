package service

import (
	"slices"

	"mariachi/shared/slot"
)

// footprint is the window an existing point event guards against new
// submissions: its own hour and the hour before it.
func footprint(hour int) []int {
	return []int{slot.Prev(hour), hour}
}

func overlaps(a, b []int) bool {
	return slices.ContainsFunc(a, func(hour int) bool {
		return slices.Contains(b, hour)
	})
}

// checkBlocks rejects when the date is closed or any of hours falls in a time range block.
func (s Snapshot) checkBlocks(hours []int) *RejectionError {
	if block, ok := s.fullBlock(); ok {
		return reject(ErrDateBlocked, reasonBlocked, "date %s is blocked: %s", s.Date, block.Reason)
	}

	for _, block := range s.partialBlocks() {
		if overlaps(hours, block.Hours()) {
			return reject(ErrDateBlocked, reasonBlocked,
				"hours %s to %s on %s are blocked: %s", block.StartTime, block.EndTime, s.Date, block.Reason)
		}
	}

	return nil
}

// checkReservations compares the requested hours against the footprints of
// the active reservations.
func (s Snapshot) checkReservations(hours []int) *RejectionError {
	for _, reservation := range s.Reservations {
		if !reservation.IsActive() {
			continue
		}

		hour, err := slot.Parse(reservation.EventTime)
		if err != nil {
			continue
		}

		if overlaps(hours, footprint(hour)) {
			return reject(ErrSlotConflict, reasonConflictReservation,
				"conflicts with a reservation at %s on %s; an event needs the hour before it free", reservation.EventTime, s.Date)
		}
	}

	return nil
}

func (s Snapshot) checkRehearsals(hours []int) *RejectionError {
	for _, rehearsal := range s.Rehearsals {
		if !rehearsal.IsScheduled() {
			continue
		}

		hour, err := slot.Parse(rehearsal.Time)
		if err != nil {
			continue
		}

		if overlaps(hours, footprint(hour)) {
			return reject(ErrSlotConflict, reasonConflictRehearsal,
				"conflicts with rehearsal %q at %s on %s", rehearsal.Title, rehearsal.Time, s.Date)
		}
	}

	return nil
}

func (s Snapshot) checkQuotations(hours []int) *RejectionError {
	for _, quotation := range s.Quotations {
		if !quotation.IsWaiting() {
			continue
		}

		if overlaps(hours, quotation.Hours()) {
			return reject(ErrSlotConflict, reasonConflictQuotation,
				"conflicts with a pending quotation from %s to %s on %s", quotation.StartTime, quotation.EndTime, s.Date)
		}
	}

	return nil
}

// CheckPoint validates a single-hour event. Blocks only see the hour itself;
// a pending quotation must also leave the hour before it free, as a
// reservation would.
func (s Snapshot) CheckPoint(hour int) *RejectionError {
	if err := s.checkBlocks([]int{hour}); err != nil {
		return err
	}

	if err := s.checkReservations([]int{hour}); err != nil {
		return err
	}

	if err := s.checkQuotations(footprint(hour)); err != nil {
		return err
	}

	return s.checkRehearsals([]int{hour})
}

// CheckRange validates a quotation holding [start, end).
func (s Snapshot) CheckRange(start, end int) *RejectionError {
	if start == end {
		return reject(ErrInvalidTime, reasonInvalidTime, "start and end time must differ")
	}

	hours := slot.Expand(start, end)

	if err := s.checkBlocks(hours); err != nil {
		return err
	}

	if err := s.checkReservations(hours); err != nil {
		return err
	}

	if err := s.checkQuotations(hours); err != nil {
		return err
	}

	return s.checkRehearsals(hours)
}

package model

import (
	"mariachi/shared/constant"
	"mariachi/shared/model"
	"mariachi/shared/slot"
	"time"
)

const (
	TableName  = "calendar_blocks"
	EntityName = "calendar_block"

	FieldID          = "id"
	FieldType        = "type"
	FieldReason      = "reason"
	FieldDescription = "description"
	FieldStartDate   = "start_date"
	FieldEndDate     = "end_date"
	FieldStartTime   = "start_time"
	FieldEndTime     = "end_time"
	FieldActive      = "is_active"
)

const (
	TypeFullDate  = "FULL_DATE"
	TypeDateRange = "DATE_RANGE"
	TypeTimeRange = "TIME_RANGE"
)

type Block struct {
	ID          string    `db:"id"`
	Type        string    `db:"type"`
	Reason      string    `db:"reason"`
	Description string    `db:"description"`
	StartDate   time.Time `db:"start_date"`
	EndDate     time.Time `db:"end_date"`
	StartTime   string    `db:"start_time"`
	EndTime     string    `db:"end_time"`
	Active      bool      `db:"is_active"`
	model.Metadata
}

// IsFull reports whether the block closes whole days regardless of the hour.
func (b Block) IsFull() bool {
	return b.Type == TypeFullDate || b.Type == TypeDateRange
}

// Covers matches a YYYY-MM-DD date by block type. FULL_DATE and TIME_RANGE
// match their start date only, DATE_RANGE matches the inclusive range.
func (b Block) Covers(date string) bool {
	start := b.StartDate.Format(constant.DateOnlyFormat)

	switch b.Type {
	case TypeFullDate, TypeTimeRange:
		return start == date
	case TypeDateRange:
		return start <= date && date <= b.EndDate.Format(constant.DateOnlyFormat)
	default:
		return false
	}
}

// Hours expands a TIME_RANGE block into the hours of [StartTime, EndTime).
func (b Block) Hours() []int {
	if b.Type != TypeTimeRange {
		return nil
	}

	start, err := slot.Parse(b.StartTime)
	if err != nil {
		return nil
	}

	end, err := slot.Parse(b.EndTime)
	if err != nil {
		return nil
	}

	return slot.Expand(start, end)
}

package model

import (
	"mariachi/shared/constant"
	"mariachi/shared/model"
	"mariachi/shared/slot"
	"time"

	"github.com/lib/pq"
)

const (
	TableName  = "quotations"
	EntityName = "quotation"

	FieldID            = "id"
	FieldClientID      = "client_id"
	FieldClientName    = "client_name"
	FieldEventDate     = "event_date"
	FieldStartTime     = "start_time"
	FieldEndTime       = "end_time"
	FieldZone          = "zone"
	FieldTotalAmount   = "total_amount"
	FieldStatus        = "status"
	FieldReservationID = "reservation_id"
)

const (
	StatusWaiting   = "En Espera"
	StatusConverted = "Convertida"
	StatusCancelled = "Anulada"
)

type Quotation struct {
	ID            string         `db:"id"`
	ClientID      string         `db:"client_id"`
	ClientName    string         `db:"client_name"`
	ClientPhone   string         `db:"client_phone"`
	ClientEmail   string         `db:"client_email"`
	EventDate     time.Time      `db:"event_date"`
	StartTime     string         `db:"start_time"`
	EndTime       string         `db:"end_time"`
	Location      string         `db:"location"`
	Address       string         `db:"address"`
	Zone          string         `db:"zone"`
	RepertoireIDs pq.StringArray `db:"repertoire_ids"`
	TotalAmount   int64          `db:"total_amount"`
	ManualTotal   bool           `db:"manual_total"`
	Status        string         `db:"status"`
	ReservationID string         `db:"reservation_id"`
	Notes         string         `db:"notes"`
	model.Metadata
}

// IsWaiting reports whether the quotation still holds its range.
func (q Quotation) IsWaiting() bool {
	return q.Status == StatusWaiting
}

func (q Quotation) Date() string {
	return q.EventDate.Format(constant.DateOnlyFormat)
}

// Hours expands [StartTime, EndTime) into the hours it holds.
func (q Quotation) Hours() []int {
	start, err := slot.Parse(q.StartTime)
	if err != nil {
		return nil
	}

	end, err := slot.Parse(q.EndTime)
	if err != nil {
		return nil
	}

	if start == end {
		return nil
	}

	return slot.Expand(start, end)
}

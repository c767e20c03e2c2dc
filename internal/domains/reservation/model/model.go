package model

import (
	"mariachi/shared/constant"
	"mariachi/shared/model"
	"mariachi/shared/slot"
	"time"

	"github.com/lib/pq"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID            = "id"
	FieldClientID      = "client_id"
	FieldClientName    = "client_name"
	FieldEventDate     = "event_date"
	FieldEventTime     = "event_time"
	FieldZone          = "zone"
	FieldRepertoireIDs = "repertoire_ids"
	FieldTotalAmount   = "total_amount"
	FieldPaidAmount    = "paid_amount"
	FieldManualTotal   = "manual_total"
	FieldStatus        = "status"
	FieldNotes         = "notes"
)

const (
	StatusPending   = "Pendiente"
	StatusConfirmed = "Confirmado"
	StatusFinalized = "Finalizado"
	StatusCancelled = "Anulado"
)

type Reservation struct {
	ID            string         `db:"id"`
	ClientID      string         `db:"client_id"`
	ClientName    string         `db:"client_name"`
	ClientPhone   string         `db:"client_phone"`
	ClientEmail   string         `db:"client_email"`
	EventDate     time.Time      `db:"event_date"`
	EventTime     string         `db:"event_time"`
	Location      string         `db:"location"`
	Address       string         `db:"address"`
	Zone          string         `db:"zone"`
	RepertoireIDs pq.StringArray `db:"repertoire_ids"`
	TotalAmount   int64          `db:"total_amount"`
	PaidAmount    int64          `db:"paid_amount"`
	ManualTotal   bool           `db:"manual_total"`
	Status        string         `db:"status"`
	Notes         string         `db:"notes"`
	model.Metadata
}

// IsActive reports whether the reservation still holds its slot.
func (r Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

func (r Reservation) IsTerminal() bool {
	return r.Status == StatusFinalized || r.Status == StatusCancelled
}

func (r Reservation) Date() string {
	return r.EventDate.Format(constant.DateOnlyFormat)
}

func (r Reservation) Balance() int64 {
	return r.TotalAmount - r.PaidAmount
}

// StartsAt is the event instant. A 00:00 event is the closing slot of the
// working day, so it falls on the following midnight.
func (r Reservation) StartsAt(loc *time.Location) (time.Time, error) {
	hour, err := slot.Parse(r.EventTime)
	if err != nil {
		return time.Time{}, err
	}

	if hour == 0 {
		hour = slot.HoursPerDay
	}

	year, month, day := r.EventDate.Date()

	return time.Date(year, month, day, hour, 0, 0, 0, loc), nil
}

// ReachesConfirmation reports whether paid covers at least half of total.
func ReachesConfirmation(paid, total int64) bool {
	return paid*2 >= total
}

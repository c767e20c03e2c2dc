package dto

import (
	"mariachi/internal/domains/reservation/model"
	"mariachi/shared"
	"mariachi/shared/constant"
	gDto "mariachi/shared/dto"
	gModel "mariachi/shared/model"
	"mariachi/shared/timezone"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateReservationRequest struct {
	ClientID      string   `json:"client_id"      validate:"omitempty,max=64"`
	ClientName    string   `json:"client_name"    validate:"required,max=150"`
	ClientPhone   string   `json:"client_phone"   validate:"omitempty,max=30"`
	ClientEmail   string   `json:"client_email"   validate:"omitempty,email"`
	EventDate     string   `json:"event_date"     validate:"required,date"`
	EventTime     string   `json:"event_time"     validate:"required,slot"`
	Location      string   `json:"location"       validate:"omitempty,max=150"`
	Address       string   `json:"address"        validate:"omitempty,max=255"`
	Zone          string   `json:"zone"           validate:"required,oneof=Urbana Rural"`
	RepertoireIDs []string `json:"repertoire_ids" validate:"omitempty,dive,required"`
	TotalAmount   *int64   `json:"total_amount"   validate:"omitempty,gte=0"`
	Notes         string   `json:"notes"          validate:"omitempty,max=1000"`
}

func (c *CreateReservationRequest) ToModel(user string, total int64, manual bool) model.Reservation {
	eventDate, _ := time.Parse(constant.DateOnlyFormat, c.EventDate)

	repertoire := pq.StringArray{}
	if c.RepertoireIDs != nil {
		repertoire = c.RepertoireIDs
	}

	return model.Reservation{
		ID:            uuid.NewString(),
		ClientID:      c.ClientID,
		ClientName:    c.ClientName,
		ClientPhone:   c.ClientPhone,
		ClientEmail:   c.ClientEmail,
		EventDate:     eventDate,
		EventTime:     c.EventTime,
		Location:      c.Location,
		Address:       c.Address,
		Zone:          c.Zone,
		RepertoireIDs: repertoire,
		TotalAmount:   total,
		ManualTotal:   manual,
		Status:        model.StatusPending,
		Notes:         c.Notes,
		Metadata:      gModel.NewMetadata(user, timezone.Now()),
	}
}

// UpdateReservationRequest edits everything but the slot. Fields with a db tag
// are written as-is when set; repertoire and total go through re-pricing.
type UpdateReservationRequest struct {
	ClientName    string   `db:"client_name"  json:"client_name"    validate:"omitempty,max=150"`
	ClientPhone   string   `db:"client_phone" json:"client_phone"   validate:"omitempty,max=30"`
	ClientEmail   string   `db:"client_email" json:"client_email"   validate:"omitempty,email"`
	Location      string   `db:"location"     json:"location"       validate:"omitempty,max=150"`
	Address       string   `db:"address"      json:"address"        validate:"omitempty,max=255"`
	Zone          string   `db:"zone"         json:"zone"           validate:"omitempty,oneof=Urbana Rural"`
	Notes         string   `db:"notes"        json:"notes"          validate:"omitempty,max=1000"`
	RepertoireIDs []string `json:"repertoire_ids" validate:"omitempty,dive,required"`
	TotalAmount   *int64   `json:"total_amount"   validate:"omitempty,gte=0"`
}

type AddPaymentRequest struct {
	Amount int64  `json:"amount" validate:"required,gt=0"`
	Type   string `json:"type"   validate:"required,oneof=Anticipo Abono 'Saldo Final'"`
	Method string `json:"method" validate:"required,oneof=Efectivo Transferencia Tarjeta"`
	Notes  string `json:"notes"  validate:"omitempty,max=500"`
}

func (a *AddPaymentRequest) ToModel(reservationID, user string) model.Payment {
	now := timezone.Now()

	return model.Payment{
		ID:            uuid.NewString(),
		ReservationID: reservationID,
		Amount:        a.Amount,
		Type:          a.Type,
		Method:        a.Method,
		PaidAt:        now,
		Notes:         a.Notes,
		Metadata:      gModel.NewMetadata(user, now),
	}
}

type PaymentResponse struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
	Type   string `json:"type"`
	Method string `json:"method"`
	PaidAt string `json:"paid_at"`
	Notes  string `json:"notes,omitempty"`
}

func (p *PaymentResponse) FromModel(model model.Payment) {
	p.ID = model.ID
	p.Amount = model.Amount
	p.Type = model.Type
	p.Method = model.Method
	p.PaidAt = timezone.Format(model.PaidAt, constant.DateFormat)
	p.Notes = model.Notes
}

type ReservationResponse struct {
	ID            string            `json:"id"`
	ClientID      string            `json:"client_id,omitempty"`
	ClientName    string            `json:"client_name"`
	ClientPhone   string            `json:"client_phone,omitempty"`
	ClientEmail   string            `json:"client_email,omitempty"`
	EventDate     string            `json:"event_date"`
	EventTime     string            `json:"event_time"`
	Location      string            `json:"location,omitempty"`
	Address       string            `json:"address,omitempty"`
	Zone          string            `json:"zone"`
	RepertoireIDs []string          `json:"repertoire_ids"`
	TotalAmount   int64             `json:"total_amount"`
	PaidAmount    int64             `json:"paid_amount"`
	Balance       int64             `json:"balance"`
	ManualTotal   bool              `json:"manual_total"`
	Status        string            `json:"status"`
	Notes         string            `json:"notes,omitempty"`
	Payments      []PaymentResponse `json:"payments,omitempty"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.ClientID = model.ClientID
	r.ClientName = model.ClientName
	r.ClientPhone = model.ClientPhone
	r.ClientEmail = model.ClientEmail
	r.EventDate = model.Date()
	r.EventTime = model.EventTime
	r.Location = model.Location
	r.Address = model.Address
	r.Zone = model.Zone
	r.RepertoireIDs = model.RepertoireIDs
	r.TotalAmount = model.TotalAmount
	r.PaidAmount = model.PaidAmount
	r.Balance = model.Balance()
	r.ManualTotal = model.ManualTotal
	r.Status = model.Status
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

func (r *ReservationResponse) WithPayments(payments []model.Payment) {
	r.Payments = make([]PaymentResponse, len(payments))
	for i, payment := range payments {
		r.Payments[i].FromModel(payment)
	}
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

type SweepResponse struct {
	Finalized      int      `json:"finalized"`
	ReservationIDs []string `json:"reservation_ids"`
}

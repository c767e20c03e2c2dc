package dto

import (
	"mariachi/internal/domains/quotation/model"
	"mariachi/shared"
	"mariachi/shared/constant"
	gDto "mariachi/shared/dto"
	gModel "mariachi/shared/model"
	"mariachi/shared/timezone"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateQuotationRequest struct {
	ClientID      string   `json:"client_id"      validate:"omitempty,max=64"`
	ClientName    string   `json:"client_name"    validate:"required,max=150"`
	ClientPhone   string   `json:"client_phone"   validate:"omitempty,max=30"`
	ClientEmail   string   `json:"client_email"   validate:"omitempty,email"`
	EventDate     string   `json:"event_date"     validate:"required,date"`
	StartTime     string   `json:"start_time"     validate:"required,slot"`
	EndTime       string   `json:"end_time"       validate:"required,slot"`
	Location      string   `json:"location"       validate:"omitempty,max=150"`
	Address       string   `json:"address"        validate:"omitempty,max=255"`
	Zone          string   `json:"zone"           validate:"required,oneof=Urbana Rural"`
	RepertoireIDs []string `json:"repertoire_ids" validate:"omitempty,dive,required"`
	TotalAmount   *int64   `json:"total_amount"   validate:"omitempty,gte=0"`
	Notes         string   `json:"notes"          validate:"omitempty,max=1000"`
}

func (c *CreateQuotationRequest) ToModel(user string, total int64, manual bool) model.Quotation {
	eventDate, _ := time.Parse(constant.DateOnlyFormat, c.EventDate)

	repertoire := pq.StringArray{}
	if c.RepertoireIDs != nil {
		repertoire = c.RepertoireIDs
	}

	return model.Quotation{
		ID:            uuid.NewString(),
		ClientID:      c.ClientID,
		ClientName:    c.ClientName,
		ClientPhone:   c.ClientPhone,
		ClientEmail:   c.ClientEmail,
		EventDate:     eventDate,
		StartTime:     c.StartTime,
		EndTime:       c.EndTime,
		Location:      c.Location,
		Address:       c.Address,
		Zone:          c.Zone,
		RepertoireIDs: repertoire,
		TotalAmount:   total,
		ManualTotal:   manual,
		Status:        model.StatusWaiting,
		Notes:         c.Notes,
		Metadata:      gModel.NewMetadata(user, timezone.Now()),
	}
}

type QuotationResponse struct {
	ID            string   `json:"id"`
	ClientID      string   `json:"client_id,omitempty"`
	ClientName    string   `json:"client_name"`
	ClientPhone   string   `json:"client_phone,omitempty"`
	ClientEmail   string   `json:"client_email,omitempty"`
	EventDate     string   `json:"event_date"`
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	Location      string   `json:"location,omitempty"`
	Address       string   `json:"address,omitempty"`
	Zone          string   `json:"zone"`
	RepertoireIDs []string `json:"repertoire_ids"`
	TotalAmount   int64    `json:"total_amount"`
	ManualTotal   bool     `json:"manual_total"`
	Status        string   `json:"status"`
	ReservationID string   `json:"reservation_id,omitempty"`
	Notes         string   `json:"notes,omitempty"`
	gDto.Metadata
}

func (q *QuotationResponse) FromModel(model model.Quotation) {
	q.ID = model.ID
	q.ClientID = model.ClientID
	q.ClientName = model.ClientName
	q.ClientPhone = model.ClientPhone
	q.ClientEmail = model.ClientEmail
	q.EventDate = model.Date()
	q.StartTime = model.StartTime
	q.EndTime = model.EndTime
	q.Location = model.Location
	q.Address = model.Address
	q.Zone = model.Zone
	q.RepertoireIDs = model.RepertoireIDs
	q.TotalAmount = model.TotalAmount
	q.ManualTotal = model.ManualTotal
	q.Status = model.Status
	q.ReservationID = model.ReservationID
	q.Notes = model.Notes
	q.Metadata.FromModel(model.Metadata)
}

type GetQuotationsResponse struct {
	Quotations []QuotationResponse `json:"quotations"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (g *GetQuotationsResponse) FromModels(models []model.Quotation, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Quotations = make([]QuotationResponse, len(models))
	for i, mod := range models {
		g.Quotations[i].FromModel(mod)
	}
}

type ConvertResponse struct {
	Quotation     QuotationResponse `json:"quotation"`
	ReservationID string            `json:"reservation_id"`
}

package dto

import (
	"mariachi/internal/domains/rehearsal/model"
	"mariachi/shared"
	"mariachi/shared/constant"
	gDto "mariachi/shared/dto"
	gModel "mariachi/shared/model"
	"mariachi/shared/timezone"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateRehearsalRequest struct {
	Title         string   `json:"title"          validate:"required,max=150"`
	Location      string   `json:"location"       validate:"omitempty,max=150"`
	Date          string   `json:"date"           validate:"required,date"`
	Time          string   `json:"time"           validate:"required,slot"`
	Notes         string   `json:"notes"          validate:"omitempty,max=1000"`
	RepertoireIDs []string `json:"repertoire_ids" validate:"omitempty,dive,required"`
}

func (c *CreateRehearsalRequest) ToModel(user string) model.Rehearsal {
	day, _ := time.Parse(constant.DateOnlyFormat, c.Date)

	repertoire := pq.StringArray{}
	if c.RepertoireIDs != nil {
		repertoire = c.RepertoireIDs
	}

	return model.Rehearsal{
		ID:            uuid.NewString(),
		Title:         c.Title,
		Location:      c.Location,
		Date:          day,
		Time:          c.Time,
		Notes:         c.Notes,
		RepertoireIDs: repertoire,
		Status:        model.StatusScheduled,
		Metadata:      gModel.NewMetadata(user, timezone.Now()),
	}
}

// UpdateRehearsalRequest never moves the rehearsal; a new slot means a new rehearsal.
type UpdateRehearsalRequest struct {
	Title         string   `db:"title"    json:"title"          validate:"omitempty,max=150"`
	Location      string   `db:"location" json:"location"       validate:"omitempty,max=150"`
	Notes         string   `db:"notes"    json:"notes"          validate:"omitempty,max=1000"`
	RepertoireIDs []string `json:"repertoire_ids" validate:"omitempty,dive,required"`
}

type RehearsalResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Location      string   `json:"location,omitempty"`
	Date          string   `json:"date"`
	Time          string   `json:"time"`
	Notes         string   `json:"notes,omitempty"`
	RepertoireIDs []string `json:"repertoire_ids"`
	Status        string   `json:"status"`
	gDto.Metadata
}

func (r *RehearsalResponse) FromModel(model model.Rehearsal) {
	r.ID = model.ID
	r.Title = model.Title
	r.Location = model.Location
	r.Date = model.Day()
	r.Time = model.Time
	r.Notes = model.Notes
	r.RepertoireIDs = model.RepertoireIDs
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetRehearsalsResponse struct {
	Rehearsals []RehearsalResponse `json:"rehearsals"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (g *GetRehearsalsResponse) FromModels(models []model.Rehearsal, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Rehearsals = make([]RehearsalResponse, len(models))
	for i, mod := range models {
		g.Rehearsals[i].FromModel(mod)
	}
}

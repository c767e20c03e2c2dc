package model

import (
	"mariachi/shared/constant"
	"mariachi/shared/model"
	"time"

	"github.com/lib/pq"
)

const (
	TableName  = "rehearsals"
	EntityName = "rehearsal"

	FieldID            = "id"
	FieldTitle         = "title"
	FieldLocation      = "location"
	FieldDate          = "rehearsal_date"
	FieldTime          = "rehearsal_time"
	FieldStatus        = "status"
	FieldNotes         = "notes"
	FieldRepertoireIDs = "repertoire_ids"
)

const (
	StatusScheduled = "Programado"
	StatusCompleted = "Completado"
)

type Rehearsal struct {
	ID            string         `db:"id"`
	Title         string         `db:"title"`
	Location      string         `db:"location"`
	Date          time.Time      `db:"rehearsal_date"`
	Time          string         `db:"rehearsal_time"`
	Notes         string         `db:"notes"`
	RepertoireIDs pq.StringArray `db:"repertoire_ids"`
	Status        string         `db:"status"`
	model.Metadata
}

func (r Rehearsal) IsScheduled() bool {
	return r.Status == StatusScheduled
}

func (r Rehearsal) Day() string {
	return r.Date.Format(constant.DateOnlyFormat)
}

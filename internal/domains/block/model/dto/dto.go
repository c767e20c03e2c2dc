package dto

import (
	"mariachi/internal/domains/block/model"
	"mariachi/shared"
	"mariachi/shared/constant"
	gDto "mariachi/shared/dto"
	gModel "mariachi/shared/model"
	"mariachi/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateBlockRequest struct {
	Type        string `json:"type"        validate:"required,oneof=FULL_DATE DATE_RANGE TIME_RANGE"`
	Reason      string `json:"reason"      validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	StartDate   string `json:"start_date"  validate:"required,date"`
	EndDate     string `json:"end_date"    validate:"omitempty,date"`
	StartTime   string `json:"start_time"  validate:"omitempty,hour"`
	EndTime     string `json:"end_time"    validate:"omitempty,hour"`
}

func (c *CreateBlockRequest) ToModel(user string) model.Block {
	startDate, _ := time.Parse(constant.DateOnlyFormat, c.StartDate)
	endDate, _ := time.Parse(constant.DateOnlyFormat, c.EndDate)

	block := model.Block{
		ID:          uuid.NewString(),
		Type:        c.Type,
		Reason:      c.Reason,
		Description: c.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		Active:      true,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}

	if c.Type == model.TypeTimeRange {
		block.StartTime = c.StartTime
		block.EndTime = c.EndTime
	}

	return block
}

type SetActiveRequest struct {
	Active *bool `json:"is_active" validate:"required"`
}

type BlockResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Reason      string `json:"reason"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	Active      bool   `json:"is_active"`
	gDto.Metadata
}

func (r *BlockResponse) FromModel(model model.Block) {
	r.ID = model.ID
	r.Type = model.Type
	r.Reason = model.Reason
	r.Description = model.Description
	r.StartDate = model.StartDate.Format(constant.DateOnlyFormat)
	r.EndDate = model.EndDate.Format(constant.DateOnlyFormat)
	r.StartTime = model.StartTime
	r.EndTime = model.EndTime
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetBlocksResponse struct {
	Blocks    []BlockResponse `json:"blocks"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetBlocksResponse) FromModels(models []model.Block, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Blocks = make([]BlockResponse, len(models))
	for i, mod := range models {
		r.Blocks[i].FromModel(mod)
	}
}

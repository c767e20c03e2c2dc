package dto

type QuoteRequest struct {
	Kind          string   `json:"kind"           validate:"required,oneof=reservation quotation"`
	Zone          string   `json:"zone"           validate:"required,oneof=Urbana Rural"`
	StartTime     string   `json:"start_time"     validate:"omitempty,hour"`
	EndTime       string   `json:"end_time"       validate:"omitempty,hour"`
	RepertoireIDs []string `json:"repertoire_ids" validate:"omitempty,dive,required"`
	ManualTotal   *int64   `json:"manual_total"   validate:"omitempty,gte=0"`
}

type QuoteResponse struct {
	Base       int64 `json:"base"`
	Hours      int   `json:"hours"`
	ExtraSongs int   `json:"extra_songs"`
	Surcharge  int64 `json:"surcharge"`
	Calculated int64 `json:"calculated"`
	Total      int64 `json:"total"`
	Manual     bool  `json:"manual"`
}

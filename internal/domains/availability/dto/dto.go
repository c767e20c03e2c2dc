package dto

type BlockedRange struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Reason string `json:"reason"`
}

type DateStatus struct {
	Date             string         `json:"date"`
	IsBlocked        bool           `json:"is_blocked"`
	Reason           string         `json:"reason,omitempty"`
	Type             string         `json:"type,omitempty"`
	HasPartialBlocks bool           `json:"has_partial_blocks,omitempty"`
	BlockedRanges    []BlockedRange `json:"blocked_ranges,omitempty"`
}

type AvailableHours struct {
	Date  string   `json:"date"`
	Hours []string `json:"hours"`
}

type GridResponse struct {
	Slots []string `json:"slots"`
}

package models

import "encoding/json"

// Award is the canonical, internal form of one book-award entry.
//
// All sources (spreadsheet export, manual list, enrichment output) are
// mapped into this structure first, then we merge, persist and export
// from this representation.
type Award struct {
	AwardName       string          `json:"award_name"`              // identity; unique case-insensitively after trimming
	RegistrationURL string          `json:"registration_url"`        // may be empty
	Categories      StringList      `json:"categories"`              // normalized category list
	Organization    string          `json:"organization"`            // awarding body (may be empty)
	EnrichedData    json.RawMessage `json:"enriched_data,omitempty"` // bookAward payload, attached verbatim; absent until enrichment
}

// NewAward builds a bare Award from a name with all optional fields at
// their empty defaults. The name is stored as given; callers trim first.
func NewAward(name string) Award {
	return Award{
		AwardName:       name,
		RegistrationURL: "",
		Categories:      StringList{},
		Organization:    "",
	}
}

package models

import (
	"encoding/json"
	"strings"
)

// EnrichedData is the typed view of the bookAward payload returned by
// the enrichment service. Award records carry the payload verbatim as
// raw JSON; this struct exists for consumers (CSV export, API) that
// need structured access. Fields the model did not return stay zero.
type EnrichedData struct {
	RegistrationURL        string       `json:"registrationUrl"`
	Categories             StringList   `json:"categories"`
	Organization           string       `json:"organization"`
	LastWinningBooks       []BookWin    `json:"lastWinningBooks"`
	LatestDateOfSubmission string       `json:"latestDateOfSubmission"`
	StrongestCompetition   []Competitor `json:"possibleStrongestCompetitionThisYear"`
	Note                   string       `json:"note"` // set only on skip-sentinel records
}

// BookWin is one past winning title. The model frequently substitutes
// "Not Available" for unknown fields, and publishingYear arrives as
// either a number or a string, so the loose fields use FlexString.
type BookWin struct {
	Author         string     `json:"author"`
	Title          string     `json:"title"`
	PublishingYear FlexString `json:"publishingYear"`
	Publisher      string     `json:"publisher"`
	ISBN           FlexString `json:"isbn"`
	Link           string     `json:"link"`
}

// Competitor is a likely contender for the current award cycle.
type Competitor struct {
	Author string `json:"author"`
	Title  string `json:"title"`
}

// StringList is a []string that tolerates the loose shapes upstream
// sources produce: a JSON array of strings, a single string (split on
// commas), or null. It always marshals as a JSON array.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if strings.TrimSpace(single) == "" {
		*s = StringList{}
		return nil
	}

	parts := strings.Split(single, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	*s = out
	return nil
}

func (s StringList) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

// FlexString accepts a JSON string or number and keeps its text form.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*f = FlexString(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*f = FlexString(num.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

package enrich

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Extraction failure reasons, matchable with errors.Is. All of them
// are per-record failures and never abort a batch.
var (
	ErrNoJSON          = errors.New("no JSON object found in response")
	ErrMalformedJSON   = errors.New("embedded JSON is not parseable")
	ErrMissingEnvelope = errors.New("response JSON lacks bookAward envelope")
)

// Extract locates the JSON object embedded in a free-text model reply
// and returns the bookAward payload byte-for-byte.
//
// The model is prompted to answer with "only JSON" but routinely wraps
// the object in prose, so we scan from the first '{' to the last '}'
// and parse what sits between. The scan is fooled by stray braces in
// string values before the real payload; known approximation, kept for
// compatibility with what the service actually returns.
func Extract(raw string) (json.RawMessage, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return nil, ErrNoJSON
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw[start:end+1]), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	payload, ok := envelope["bookAward"]
	if !ok {
		return nil, ErrMissingEnvelope
	}
	return payload, nil
}

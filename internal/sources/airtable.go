package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ma3u/ai-bookawards/pkg/models"
)

const airtableBase = "https://api.airtable.com/v0"

// Field names in the shared awards sheet.
const (
	fieldAwardName       = "Award Name"
	fieldRegistrationURL = "Registration URL"
	fieldCategories      = "Categories"
	fieldOrganization    = "Organization"
)

// AirtableConfig carries everything the client needs; the caller reads
// credentials from its own environment and injects them here.
type AirtableConfig struct {
	APIKey  string
	BaseID  string
	Table   string
	BaseURL string // override for tests; defaults to the public API
}

// AirtableClient fetches detailed award records from an Airtable table,
// following the offset cursor until all pages are read.
type AirtableClient struct {
	Client *http.Client
	Config AirtableConfig
}

func NewAirtableClient(cfg AirtableConfig) *AirtableClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = airtableBase
	}
	return &AirtableClient{
		Client: &http.Client{Timeout: 15 * time.Second},
		Config: cfg,
	}
}

type airtableResponse struct {
	Records []struct {
		ID     string                     `json:"id"`
		Fields map[string]json.RawMessage `json:"fields"`
	} `json:"records"`
	Offset string `json:"offset"`
}

// FetchAwards reads every record from the configured table and maps the
// sheet fields into Award records. Rows without an award name are
// skipped; the caller decides whether the remainder is usable.
func (c *AirtableClient) FetchAwards(ctx context.Context) ([]models.Award, error) {
	var all []models.Award

	offset := ""
	for {
		u, err := url.Parse(fmt.Sprintf("%s/%s/%s", c.Config.BaseURL, c.Config.BaseID, url.PathEscape(c.Config.Table)))
		if err != nil {
			return nil, fmt.Errorf("airtable: build url: %w", err)
		}
		if offset != "" {
			q := u.Query()
			q.Set("offset", offset)
			u.RawQuery = q.Encode()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("airtable: build request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.Config.APIKey)

		resp, err := c.Client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("airtable: request: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("airtable: read response: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("airtable: status %d: %s", resp.StatusCode, string(body))
		}

		var page airtableResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("airtable: decode: %w", err)
		}

		for _, record := range page.Records {
			award, ok := recordToAward(record.Fields)
			if !ok {
				continue
			}
			all = append(all, award)
		}

		offset = page.Offset
		if offset == "" {
			break
		}
	}

	return all, nil
}

func recordToAward(fields map[string]json.RawMessage) (models.Award, bool) {
	name := stringField(fields, fieldAwardName)
	if name == "" {
		return models.Award{}, false
	}

	award := models.NewAward(name)
	award.RegistrationURL = stringField(fields, fieldRegistrationURL)
	award.Organization = stringField(fields, fieldOrganization)

	// Category cells hold either a multi-select array or a free-text
	// comma list depending on the sheet column type.
	if raw, ok := fields[fieldCategories]; ok {
		var categories models.StringList
		if err := json.Unmarshal(raw, &categories); err == nil {
			award.Categories = categories
		}
	}

	return award, true
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

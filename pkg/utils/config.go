package utils

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/ma3u/ai-bookawards/internal/enrich"
	"github.com/ma3u/ai-bookawards/internal/sources"
)

// Env lookups live here so the pipeline core only ever sees explicit
// config structs built by the command mains.

// LoadEnrichmentConfig builds the enrichment service config from the
// process environment. The API key is the one mandatory setting.
func LoadEnrichmentConfig() (enrich.ServiceConfig, error) {
	key := os.Getenv("PERPLEXITY_API_KEY")
	if key == "" {
		return enrich.ServiceConfig{}, errors.New("PERPLEXITY_API_KEY is not set")
	}

	baseURL := os.Getenv("BOOKAWARDS_LLM_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.perplexity.ai"
	}

	model := os.Getenv("BOOKAWARDS_LLM_MODEL")
	if model == "" {
		model = "sonar"
	}

	timeout := 90 * time.Second
	if raw := os.Getenv("BOOKAWARDS_LLM_TIMEOUT_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}

	return enrich.ServiceConfig{
		APIKey:  key,
		BaseURL: baseURL,
		Model:   model,
		Timeout: timeout,
	}, nil
}

// LoadAirtableConfig builds the spreadsheet source config. Base and
// table come from flags usually; this fills key and defaults.
func LoadAirtableConfig(baseID, table string) (sources.AirtableConfig, error) {
	key := os.Getenv("AIRTABLE_API_KEY")
	if key == "" {
		return sources.AirtableConfig{}, errors.New("AIRTABLE_API_KEY is not set")
	}
	if baseID == "" {
		return sources.AirtableConfig{}, errors.New("airtable base id is required")
	}
	if table == "" {
		table = "Awards Overview"
	}
	return sources.AirtableConfig{
		APIKey: key,
		BaseID: baseID,
		Table:  table,
	}, nil
}

package sources

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ma3u/ai-bookawards/pkg/models"
)

// LoadDetailed reads a detailed award source: a JSON array of award
// objects carrying at least award_name. Any read or parse failure makes
// the whole source unreadable; the merge run aborts rather than
// proceeding with a partial input set.
func LoadDetailed(path string) ([]models.Award, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read detailed source %s: %w", path, err)
	}

	var awards []models.Award
	if err := json.Unmarshal(data, &awards); err != nil {
		return nil, fmt.Errorf("parse detailed source %s: %w", path, err)
	}
	return awards, nil
}

// LoadNames reads a bare-name source: a JSON array of strings.
func LoadNames(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read names source %s: %w", path, err)
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("parse names source %s: %w", path, err)
	}
	return names, nil
}

package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ma3u/ai-bookawards/pkg/models"
)

// ErrMissingAwardName is returned when a detailed entry has no usable
// award_name. The merge contract requires every detailed entry to carry
// its identity; callers must filter sources that cannot guarantee this.
var ErrMissingAwardName = errors.New("detailed award entry missing award_name")

// Merge combines a detailed award list with a bare-name list into the
// canonical set:
//
//   - detailed entries are keyed by normalized name, in order, so a later
//     entry with the same key overwrites an earlier one;
//   - names not already present are materialized as empty Award records;
//   - the result is sorted ascending by award_name.
//
// Empty name strings are dropped silently. Either input may be empty.
func Merge(detailed []models.Award, names []string) ([]models.Award, error) {
	byKey := make(map[string]models.Award, len(detailed)+len(names))

	for i, award := range detailed {
		name := strings.TrimSpace(award.AwardName)
		if name == "" {
			return nil, fmt.Errorf("detailed entry %d: %w", i, ErrMissingAwardName)
		}
		award.AwardName = name
		if award.Categories == nil {
			award.Categories = models.StringList{}
		}
		byKey[mergeKey(name)] = award
	}

	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, ok := byKey[mergeKey(name)]; ok {
			continue
		}
		byKey[mergeKey(name)] = models.NewAward(name)
	}

	merged := make([]models.Award, 0, len(byKey))
	for _, award := range byKey {
		merged = append(merged, award)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].AwardName < merged[j].AwardName
	})
	return merged, nil
}

// mergeKey defines when two entries describe the same award: trimmed,
// case-insensitive name comparison.
func mergeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

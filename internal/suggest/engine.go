// Package suggest computes autocomplete candidates from the records already
// loaded on the current page. It never fetches; a term only matches what the
// session has in memory, so at most one page of rows is ever suggestible.
package suggest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/VJNAVEEN2005/aic-query-service/internal/domain"
)

// MaxSuggestions is the default cap on the candidate list.
const MaxSuggestions = 8

// excludedFields are identifiers and sensitive values that must never
// surface as suggestions, regardless of screen.
var excludedFields = map[string]struct{}{
	"_id":             {},
	"__v":             {},
	"password":        {},
	"confirmPassword": {},
	"profilePhoto":    {},
	"profilePhotoId":  {},
	"profilePhotoUrl": {},
}

// Compute returns up to max suggestions whose field value contains term,
// case-insensitively. Candidates are deduplicated by (field, value) in
// first-seen order. Records are scanned in page order; within a record,
// fields are scanned in sorted name order to keep output deterministic.
func Compute(term string, items []domain.Record, max int) []domain.Suggestion {
	suggestions := []domain.Suggestion{}
	if term == "" {
		return suggestions
	}
	if max <= 0 {
		max = MaxSuggestions
	}

	needle := strings.ToLower(term)
	seen := make(map[string]struct{})

	for _, record := range items {
		names := make([]string, 0, len(record))
		for name := range record {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			if _, excluded := excludedFields[name]; excluded {
				continue
			}
			value, ok := record[name].(string)
			if !ok || value == "" {
				continue
			}
			if !strings.Contains(strings.ToLower(value), needle) {
				continue
			}

			key := name + "\x00" + value
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			suggestions = append(suggestions, domain.Suggestion{
				Field:        name,
				Value:        value,
				DisplayLabel: fmt.Sprintf("%s (%s)", value, name),
				Source:       record,
			})
			if len(suggestions) == max {
				return suggestions
			}
		}
	}

	return suggestions
}

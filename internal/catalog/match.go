package catalog

import (
	"strings"

	"lothub/pkg/models"
)

// MatchName resolves a human-entered supplier name to a catalog entry.
// Comparison is case-insensitive containment in either direction, so the
// short house name "B-Stock" finds the listed "B-Stock Inc." and vice versa.
// The first matching entry in catalog order wins; nil means no match.
func MatchName(name string, catalog []models.Supplier) *models.Supplier {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}
	for i := range catalog {
		have := strings.ToLower(catalog[i].Name)
		if have == "" {
			continue
		}
		if strings.Contains(have, needle) || strings.Contains(needle, have) {
			return &catalog[i]
		}
	}
	return nil
}

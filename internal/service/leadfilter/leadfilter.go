// Package leadfilter narrows an in-memory lead collection to the rows
// matching the active filter set.
package leadfilter

import (
	"strings"

	"github.com/google/uuid"

	"leadhub/internal/domain"
)

// Apply returns the leads matching every active filter, in input order.
// The input slice is never mutated; an all-zero filter set returns a copy
// of the input unchanged.
//
// Active filters combine with AND:
//   - Search: case-insensitive substring match on company name.
//   - Status: exact match.
//   - Tag: the lead's tag list contains the tag.
//   - CreatedBy / AssignedTo: exact id match.
func Apply(leads []domain.Lead, filters domain.LeadFilters) []domain.Lead {
	result := make([]domain.Lead, 0, len(leads))
	search := strings.ToLower(filters.Search)

	for _, lead := range leads {
		if search != "" && !strings.Contains(strings.ToLower(lead.CompanyName), search) {
			continue
		}
		if filters.Status != "" && lead.Status != filters.Status {
			continue
		}
		if filters.Tag != "" && !hasTag(lead.Tags, filters.Tag) {
			continue
		}
		if filters.CreatedBy != uuid.Nil && lead.CreatedBy != filters.CreatedBy {
			continue
		}
		if filters.AssignedTo != uuid.Nil && lead.AssignedTo != filters.AssignedTo {
			continue
		}
		result = append(result, lead)
	}
	return result
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

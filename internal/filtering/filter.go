// Package filtering derives the visible subset of an in-memory profile list
// from a free-text query and per-column substring filters. All functions are
// pure and preserve the original relative order of records.
package filtering

import (
	"strings"

	"github.com/google/uuid"

	"github.com/mfk4us/bocc-client-panel/internal/models"
)

// ColumnFilters holds one optional substring filter per filterable column.
// An empty string means the column is unfiltered.
type ColumnFilters struct {
	Email        string `json:"email" query:"email"`
	Role         string `json:"role" query:"role"`
	WorkflowName string `json:"workflow_name" query:"workflow_name"`
	PhoneNumber  string `json:"phone_number" query:"phone_number"`
	BusinessName string `json:"business_name" query:"business_name"`
	CustomerName string `json:"customer_name" query:"customer_name"`
	Status       string `json:"status" query:"status"`
}

// Empty reports whether no column filter is set.
func (f ColumnFilters) Empty() bool {
	return f == ColumnFilters{}
}

// contains is a case-insensitive substring check. An empty needle matches
// everything; an empty haystack matches only an empty needle.
func contains(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// matchesQuery checks the free-text query against every searchable field.
// Status is deliberately excluded; it is filterable only via its own column.
func matchesQuery(p models.Profile, query string) bool {
	if query == "" {
		return true
	}
	for _, v := range []string{p.Email, p.Role, p.WorkflowName, p.PhoneNumber, p.BusinessName, p.CustomerName} {
		if contains(v, query) {
			return true
		}
	}
	return false
}

// equalsFold is a case-insensitive equality check with the same empty-filter
// semantics as contains. Status is a fixed vocabulary picked from a dropdown,
// so its filter matches whole values ("active" must not match "inactive").
func equalsFold(value, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.EqualFold(value, filter)
}

// matchesColumns requires every non-empty column filter to match its field.
func matchesColumns(p models.Profile, f ColumnFilters) bool {
	return contains(p.Email, f.Email) &&
		contains(p.Role, f.Role) &&
		contains(p.WorkflowName, f.WorkflowName) &&
		contains(p.PhoneNumber, f.PhoneNumber) &&
		contains(p.BusinessName, f.BusinessName) &&
		contains(p.CustomerName, f.CustomerName) &&
		equalsFold(p.Status, f.Status)
}

// Apply returns the ordered subset of records satisfying the free-text query
// AND all non-empty column filters.
func Apply(records []models.Profile, query string, filters ColumnFilters) []models.Profile {
	query = strings.TrimSpace(query)
	if query == "" && filters.Empty() {
		return records
	}

	result := make([]models.Profile, 0, len(records))
	for _, p := range records {
		if matchesQuery(p, query) && matchesColumns(p, filters) {
			result = append(result, p)
		}
	}
	return result
}

// AllowedPageSizes is the fixed set of page sizes the list view offers.
var AllowedPageSizes = []int{5, 10, 25, 50}

const DefaultPageSize = 10

// NormalizePageSize snaps an arbitrary requested size to the allowed set.
func NormalizePageSize(size int) int {
	for _, s := range AllowedPageSizes {
		if size == s {
			return size
		}
	}
	return DefaultPageSize
}

// Page returns the 1-based page slice of a filtered view. Pages beyond the
// end of the list are empty, never an error.
func Page(records []models.Profile, page, pageSize int) []models.Profile {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	start := (page - 1) * pageSize
	if start >= len(records) {
		return []models.Profile{}
	}
	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}

// SelectionIDs returns the identifier set of a filtered view. This is what
// "select all" resolves to: exactly the identifiers currently visible, not
// the full unfiltered list.
func SelectionIDs(records []models.Profile) map[uuid.UUID]struct{} {
	ids := make(map[uuid.UUID]struct{}, len(records))
	for _, p := range records {
		ids[p.ID] = struct{}{}
	}
	return ids
}

// Selected returns the ordered subset of records whose ID is in the selection.
// Selected identifiers that fall outside the given view contribute nothing;
// narrowing a filter never shrinks the selection itself.
func Selected(records []models.Profile, ids map[uuid.UUID]struct{}) []models.Profile {
	if len(ids) == 0 {
		return []models.Profile{}
	}
	result := make([]models.Profile, 0, len(ids))
	for _, p := range records {
		if _, ok := ids[p.ID]; ok {
			result = append(result, p)
		}
	}
	return result
}

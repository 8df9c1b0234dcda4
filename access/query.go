// Package access is the task access and query engine. It decides which rows
// a principal may see, which fields a principal may change, and how raw list
// parameters translate into a finalized query plan. Every function is a pure
// decision over its inputs; persistence and transport stay outside.
package access

import (
	"strconv"

	"github.com/taskboard/backend/domain"
)

// SortField names a column the task list may be ordered by.
type SortField string

const (
	SortCreatedAt SortField = "createdAt"
	SortUpdatedAt SortField = "updatedAt"
	SortDueDate   SortField = "dueDate"
	SortPriority  SortField = "priority"
	SortTitle     SortField = "title"
	SortStatus    SortField = "status"
)

// SortOrder is the direction of the ordering.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListParams carries the raw, untrusted query parameters of a list request.
// Absent parameters are empty strings.
type ListParams struct {
	Page      string
	Limit     string
	SortBy    string
	SortOrder string
	Status    string
	Priority  string
	Search    string
}

// QuerySpec is the fully resolved plan handed to the persistence layer.
// AssignedTo is the row-level scope predicate: when non-empty, only tasks
// assigned to that user match, and nothing a caller supplies can clear it.
type QuerySpec struct {
	Page       int
	Limit      int
	SortBy     SortField
	SortOrder  SortOrder
	AssignedTo string
	Status     domain.Status
	Priority   domain.Priority
	Search     string
}

// Offset converts page/limit into a row offset.
func (q QuerySpec) Offset() int {
	return (q.Page - 1) * q.Limit
}

var sortFields = map[string]SortField{
	string(SortCreatedAt): SortCreatedAt,
	string(SortUpdatedAt): SortUpdatedAt,
	string(SortDueDate):   SortDueDate,
	string(SortPriority):  SortPriority,
	string(SortTitle):     SortTitle,
	string(SortStatus):    SortStatus,
}

// ScopeListQuery turns raw parameters into a QuerySpec scoped to what the
// principal may see. Malformed optional parameters fall back to defaults,
// never to an error. For role user the result always carries the mandatory
// assigned-to predicate, regardless of any other filter requested.
func ScopeListQuery(p domain.Principal, raw ListParams) QuerySpec {
	spec := QuerySpec{
		Page:      parsePositive(raw.Page, DefaultPage),
		Limit:     clampLimit(parsePositive(raw.Limit, DefaultLimit)),
		SortBy:    SortCreatedAt,
		SortOrder: SortDesc,
		Search:    raw.Search,
	}

	if field, ok := sortFields[raw.SortBy]; ok {
		spec.SortBy = field
	}
	// Anything other than the exact string "asc" stays descending.
	if raw.SortOrder == string(SortAsc) {
		spec.SortOrder = SortAsc
	}

	if raw.Status != "" {
		spec.Status = domain.Status(raw.Status)
	}
	if raw.Priority != "" {
		spec.Priority = domain.Priority(raw.Priority)
	}

	if !p.IsAdmin() {
		spec.AssignedTo = p.ID
	}

	return spec
}

func parsePositive(raw string, fallback int) int {
	if v, err := strconv.Atoi(raw); err == nil && v >= 1 {
		return v
	}
	return fallback
}

func clampLimit(limit int) int {
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

package postgres

import (
	"fmt"
	"strings"

	"github.com/taskboard/backend/access"
)

// listPlan is the materialized SQL for one list request: a filtered,
// ordered, paginated SELECT plus the matching unpaginated COUNT.
type listPlan struct {
	selectSQL  string
	countSQL   string
	selectArgs []interface{}
	filterArgs []interface{}
}

// sortColumns maps whitelisted sort fields onto ORDER BY expressions.
// Priority sorts by explicit rank so that high > medium > low; the raw enum
// strings would order lexically (high < low < medium), which is wrong.
var sortColumns = map[access.SortField]string{
	access.SortCreatedAt: "created_at",
	access.SortUpdatedAt: "updated_at",
	access.SortDueDate:   "due_date",
	access.SortTitle:     "title",
	access.SortStatus:    "status",
	access.SortPriority:  "CASE priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END",
}

// buildListQuery translates a finalized QuerySpec into SQL. All values
// travel as positional arguments; only whitelisted column expressions are
// interpolated.
func buildListQuery(spec access.QuerySpec) listPlan {
	var (
		conds []string
		args  []interface{}
	)

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if spec.AssignedTo != "" {
		conds = append(conds, "assigned_to = "+arg(spec.AssignedTo))
	}
	if spec.Status != "" {
		conds = append(conds, "status = "+arg(string(spec.Status)))
	}
	if spec.Priority != "" {
		conds = append(conds, "priority = "+arg(string(spec.Priority)))
	}
	if spec.Search != "" {
		pattern := arg("%" + spec.Search + "%")
		conds = append(conds, fmt.Sprintf("(title ILIKE %s OR description ILIKE %s)", pattern, pattern))
	}

	where := ""
	if len(conds) > 0 {
		where = "\nWHERE " + strings.Join(conds, "\n  AND ")
	}

	countSQL := "SELECT COUNT(*) FROM tasks" + where
	filterArgs := append([]interface{}(nil), args...)

	column, ok := sortColumns[spec.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if spec.SortOrder == access.SortAsc {
		direction = "ASC"
	}

	// Secondary key keeps the ordering stable across equal primary values.
	orderBy := fmt.Sprintf("\nORDER BY %s %s, created_at DESC", column, direction)

	selectSQL := "SELECT " + taskColumns + "\nFROM tasks" + where + orderBy +
		fmt.Sprintf("\nLIMIT %s OFFSET %s", arg(spec.Limit), arg(spec.Offset()))

	return listPlan{
		selectSQL:  selectSQL,
		countSQL:   countSQL,
		selectArgs: args,
		filterArgs: filterArgs,
	}
}

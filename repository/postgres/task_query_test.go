package postgres

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskboard/backend/access"
	"github.com/taskboard/backend/domain"
)

func TestBuildListQueryUnfiltered(t *testing.T) {
	plan := buildListQuery(access.QuerySpec{
		Page: 1, Limit: 10,
		SortBy: access.SortCreatedAt, SortOrder: access.SortDesc,
	})

	require.NotContains(t, plan.selectSQL, "WHERE")
	require.Contains(t, plan.selectSQL, "ORDER BY created_at DESC")
	require.Contains(t, plan.selectSQL, "LIMIT $1 OFFSET $2")
	require.Equal(t, []interface{}{10, 0}, plan.selectArgs)

	require.Equal(t, "SELECT COUNT(*) FROM tasks", plan.countSQL)
	require.Empty(t, plan.filterArgs)
}

func TestBuildListQueryScopeAndFilters(t *testing.T) {
	plan := buildListQuery(access.QuerySpec{
		Page: 2, Limit: 10,
		SortBy: access.SortCreatedAt, SortOrder: access.SortDesc,
		AssignedTo: "user-alice",
		Status:     domain.StatusPending,
		Priority:   domain.PriorityHigh,
	})

	require.Contains(t, plan.selectSQL, "assigned_to = $1")
	require.Contains(t, plan.selectSQL, "status = $2")
	require.Contains(t, plan.selectSQL, "priority = $3")
	require.Equal(t, []interface{}{"user-alice", "pending", "high", 10, 10}, plan.selectArgs)

	require.Contains(t, plan.countSQL, "assigned_to = $1")
	require.NotContains(t, plan.countSQL, "ORDER BY")
	require.NotContains(t, plan.countSQL, "LIMIT")
	require.Equal(t, []interface{}{"user-alice", "pending", "high"}, plan.filterArgs)
}

func TestBuildListQuerySearch(t *testing.T) {
	plan := buildListQuery(access.QuerySpec{
		Page: 1, Limit: 10,
		SortBy: access.SortCreatedAt, SortOrder: access.SortDesc,
		Search: "schema",
	})

	require.Contains(t, plan.selectSQL, "(title ILIKE $1 OR description ILIKE $1)")
	require.Equal(t, "%schema%", plan.selectArgs[0])
}

func TestBuildListQueryPriorityRankOrdering(t *testing.T) {
	plan := buildListQuery(access.QuerySpec{
		Page: 1, Limit: 10,
		SortBy: access.SortPriority, SortOrder: access.SortDesc,
	})

	// Descending priority must yield high, medium, low; the enum strings
	// themselves sort lexically as high < low < medium, so the rank CASE is
	// load-bearing.
	require.Contains(t, plan.selectSQL,
		"ORDER BY CASE priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END DESC")
	require.Contains(t, plan.selectSQL, ", created_at DESC")
}

func TestBuildListQueryAscending(t *testing.T) {
	plan := buildListQuery(access.QuerySpec{
		Page: 3, Limit: 20,
		SortBy: access.SortDueDate, SortOrder: access.SortAsc,
	})

	require.Contains(t, plan.selectSQL, "ORDER BY due_date ASC")
	require.Equal(t, []interface{}{20, 40}, plan.selectArgs)
}

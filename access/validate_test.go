package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskboard/backend/domain"
)

func TestValidateCreateDefaults(t *testing.T) {
	task, err := ValidateCreate(CreateInput{
		Title:       "  Design Database Schema  ",
		Description: "Create the schema for users and tasks.",
	})
	require.NoError(t, err)

	require.Equal(t, "Design Database Schema", task.Title)
	require.Equal(t, domain.StatusPending, task.Status)
	require.Equal(t, domain.PriorityMedium, task.Priority)
	require.Nil(t, task.DueDate, "omitted due date stays absent, no sentinel")
	require.Empty(t, task.AssignedTo)
}

func TestValidateCreateDueDateFormats(t *testing.T) {
	for _, raw := range []string{"2025-01-01", "2025-01-01T15:04:05Z"} {
		task, err := ValidateCreate(CreateInput{
			Title:       "t",
			Description: "d",
			DueDate:     raw,
		})
		require.NoError(t, err, "dueDate=%q", raw)
		require.NotNil(t, task.DueDate)
	}
}

func TestValidateCreateReportsEveryViolation(t *testing.T) {
	_, err := ValidateCreate(CreateInput{
		Title:       "   ",
		Description: "",
		Status:      "done",
		Priority:    "urgent",
		DueDate:     "next tuesday",
		AssignedTo:  "not-a-uuid",
	})
	require.Error(t, err)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	require.ElementsMatch(t,
		[]string{"title", "description", "status", "priority", "dueDate", "assignedTo"},
		fields,
		"every offending field must be reported, not just the first")
}

func TestValidatePatch(t *testing.T) {
	tests := []struct {
		name      string
		patch     TaskPatch
		wantField string
	}{
		{"empty patch is fine", TaskPatch{}, ""},
		{"valid status", TaskPatch{Status: strPtr("in-progress")}, ""},
		{"explicit empty title", TaskPatch{Title: strPtr("   ")}, "title"},
		{"explicit empty description", TaskPatch{Description: strPtr("")}, "description"},
		{"bad status", TaskPatch{Status: strPtr("archived")}, "status"},
		{"bad priority", TaskPatch{Priority: strPtr("critical")}, "priority"},
		{"bad due date", TaskPatch{DueDate: strPtr("31/12/2025")}, "dueDate"},
		{"bad assignee id", TaskPatch{AssignedTo: strPtr("42")}, "assignedTo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePatch(tt.patch)
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Fields, 1)
			require.Equal(t, tt.wantField, verr.Fields[0].Field)
		})
	}
}

func TestApplyPatch(t *testing.T) {
	due := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	task := &domain.Task{
		Title:       "Old title",
		Description: "Old description",
		Status:      domain.StatusPending,
		Priority:    domain.PriorityLow,
		DueDate:     &due,
		CreatedBy:   "admin-1",
	}

	ApplyPatch(task, TaskPatch{
		Title:    strPtr("  New title  "),
		Status:   strPtr("completed"),
		Priority: strPtr("high"),
		DueDate:  strPtr("2025-03-15"),
	})

	require.Equal(t, "New title", task.Title)
	require.Equal(t, "Old description", task.Description)
	require.Equal(t, domain.StatusCompleted, task.Status)
	require.Equal(t, domain.PriorityHigh, task.Priority)
	require.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), *task.DueDate)
	require.Equal(t, "admin-1", task.CreatedBy, "creator never changes")
}

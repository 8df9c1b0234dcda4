package access

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskboard/backend/domain"
)

func strPtr(s string) *string { return &s }

func taskAssignedTo(userID string) *domain.Task {
	return &domain.Task{
		ID:          "task-1",
		Title:       "Deploy staging",
		Description: "Roll the latest build out to staging.",
		Status:      domain.StatusPending,
		Priority:    domain.PriorityMedium,
		AssignedTo:  userID,
		CreatedBy:   admin.ID,
	}
}

func TestAuthorizeRead(t *testing.T) {
	tests := []struct {
		name      string
		principal domain.Principal
		task      *domain.Task
		wantErr   error
	}{
		{"admin reads any task", admin, taskAssignedTo("someone-else"), nil},
		{"admin reads unassigned task", admin, taskAssignedTo(""), nil},
		{"user reads own task", alice, taskAssignedTo(alice.ID), nil},
		{"user denied foreign task", alice, taskAssignedTo("someone-else"), ErrAccessDenied},
		{"user denied unassigned task", alice, taskAssignedTo(""), ErrAccessDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorizeRead(tt.principal, tt.task)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			require.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))
		})
	}
}

func TestAuthorizeWriteAdminVerbatim(t *testing.T) {
	patch := TaskPatch{
		Priority: strPtr("high"),
		DueDate:  strPtr("2025-01-01"),
	}

	applied, err := AuthorizeWrite(admin, taskAssignedTo("someone-else"), patch)
	require.NoError(t, err)
	require.Equal(t, patch, applied)
}

func TestAuthorizeWriteUserStatusOnly(t *testing.T) {
	owned := taskAssignedTo(alice.ID)

	applied, err := AuthorizeWrite(alice, owned, TaskPatch{Status: strPtr("completed")})
	require.NoError(t, err)
	require.Equal(t, []string{"status"}, applied.Fields())
	require.Equal(t, "completed", *applied.Status)
}

func TestAuthorizeWriteUserDenials(t *testing.T) {
	owned := taskAssignedTo(alice.ID)
	foreign := taskAssignedTo("someone-else")

	tests := []struct {
		name    string
		task    *domain.Task
		patch   TaskPatch
		wantErr error
	}{
		{
			name:    "not the assignee",
			task:    foreign,
			patch:   TaskPatch{Status: strPtr("completed")},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "status mixed with another field",
			task:    owned,
			patch:   TaskPatch{Status: strPtr("completed"), Title: strPtr("x")},
			wantErr: ErrStatusOnly,
		},
		{
			name:    "no status at all",
			task:    owned,
			patch:   TaskPatch{Priority: strPtr("high")},
			wantErr: ErrStatusOnly,
		},
		{
			name:    "empty patch",
			task:    owned,
			patch:   TaskPatch{},
			wantErr: ErrStatusOnly,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			applied, err := AuthorizeWrite(alice, tt.task, tt.patch)
			require.ErrorIs(t, err, tt.wantErr)
			require.True(t, applied.IsEmpty(), "denial must not apply anything")
		})
	}
}

func TestAuthorizeWriteIdempotentStatusFlip(t *testing.T) {
	task := taskAssignedTo(alice.ID)
	patch := TaskPatch{Status: strPtr("completed")}

	for i := 0; i < 2; i++ {
		applied, err := AuthorizeWrite(alice, task, patch)
		require.NoError(t, err)
		ApplyPatch(task, applied)
		require.Equal(t, domain.StatusCompleted, task.Status)
	}
}

func TestAuthorizeCreateAndDelete(t *testing.T) {
	require.NoError(t, AuthorizeCreate(admin))
	require.NoError(t, AuthorizeDelete(admin))

	require.ErrorIs(t, AuthorizeCreate(alice), ErrAdminOnly)
	require.ErrorIs(t, AuthorizeDelete(alice), ErrAdminOnly)
}

func TestTaskPatchHasNoCreatorField(t *testing.T) {
	// The creator is set once at creation; a patch cannot even express it.
	full := TaskPatch{
		Title:       strPtr("t"),
		Description: strPtr("d"),
		Status:      strPtr("pending"),
		Priority:    strPtr("low"),
		DueDate:     strPtr("2025-06-01"),
		AssignedTo:  strPtr("6b1e8f0a-452f-4b1c-9d3a-2f9a4c8e1d07"),
	}
	require.NotContains(t, full.Fields(), "createdBy")
}

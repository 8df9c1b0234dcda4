package access

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskboard/backend/domain"
)

// CreateInput carries the raw field values of a create request.
type CreateInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     string
	AssignedTo  string
}

// Accepted due-date layouts. RFC3339 is the wire default; a bare date is
// accepted because that is what date pickers send.
var dueDateLayouts = []string{time.RFC3339, "2006-01-02"}

// ValidateCreate checks every field of a create request and, when all pass,
// materializes the task with defaults applied. Violations are collected
// across all fields before returning, never fail-fast.
func ValidateCreate(in CreateInput) (*domain.Task, error) {
	var verr domain.ValidationError

	title := strings.TrimSpace(in.Title)
	if title == "" {
		verr.Add("title", "title is required")
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		verr.Add("description", "description is required")
	}

	status := domain.StatusPending
	if in.Status != "" {
		status = domain.Status(in.Status)
		if !status.Valid() {
			verr.Add("status", "invalid status")
		}
	}

	priority := domain.PriorityMedium
	if in.Priority != "" {
		priority = domain.Priority(in.Priority)
		if !priority.Valid() {
			verr.Add("priority", "invalid priority")
		}
	}

	var due *time.Time
	if in.DueDate != "" {
		parsed, err := parseDueDate(in.DueDate)
		if err != nil {
			verr.Add("dueDate", "invalid due date format")
		} else {
			due = parsed
		}
	}

	if in.AssignedTo != "" {
		if _, err := uuid.Parse(in.AssignedTo); err != nil {
			verr.Add("assignedTo", "invalid user id")
		}
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	return &domain.Task{
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
		DueDate:     due,
		AssignedTo:  in.AssignedTo,
	}, nil
}

// ValidatePatch checks every supplied field of an update request. Absent
// fields are fine; present fields must carry usable values, so an explicit
// empty title or description is a violation.
func ValidatePatch(patch TaskPatch) error {
	var verr domain.ValidationError

	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		verr.Add("title", "title cannot be empty")
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		verr.Add("description", "description cannot be empty")
	}
	if patch.Status != nil && !domain.Status(*patch.Status).Valid() {
		verr.Add("status", "invalid status")
	}
	if patch.Priority != nil && !domain.Priority(*patch.Priority).Valid() {
		verr.Add("priority", "invalid priority")
	}
	if patch.DueDate != nil {
		if _, err := parseDueDate(*patch.DueDate); err != nil {
			verr.Add("dueDate", "invalid due date format")
		}
	}
	if patch.AssignedTo != nil {
		if _, err := uuid.Parse(*patch.AssignedTo); err != nil {
			verr.Add("assignedTo", "invalid user id")
		}
	}

	return verr.OrNil()
}

// ApplyPatch writes the supplied fields onto the task. The patch must have
// passed ValidatePatch and AuthorizeWrite first; unparseable values are
// ignored here rather than re-reported.
func ApplyPatch(task *domain.Task, patch TaskPatch) {
	if task == nil {
		return
	}
	if patch.Title != nil {
		task.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		task.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Status != nil {
		task.Status = domain.Status(*patch.Status)
	}
	if patch.Priority != nil {
		task.Priority = domain.Priority(*patch.Priority)
	}
	if patch.DueDate != nil {
		if parsed, err := parseDueDate(*patch.DueDate); err == nil {
			task.DueDate = parsed
		}
	}
	if patch.AssignedTo != nil {
		task.AssignedTo = *patch.AssignedTo
	}
}

func parseDueDate(raw string) (*time.Time, error) {
	var lastErr error
	for _, layout := range dueDateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed, nil
		} else {
			lastErr = err
		}
	}
	return nil, lastErr
}

package access

import (
	"github.com/taskboard/backend/domain"
)

// Authorization outcomes. Denials are domain errors so the transport mapper
// renders them as 403 without any handler-level switching.
var (
	ErrAccessDenied = domain.NewError(domain.ErrCodeForbidden, "access denied")
	ErrAdminOnly    = domain.NewError(domain.ErrCodeForbidden, "admin access required")
	ErrStatusOnly   = domain.NewError(domain.ErrCodeForbidden, "users can only update task status")
)

// TaskPatch captures exactly which fields an update request supplied. A nil
// field was absent from the payload; a non-nil field was present, possibly
// empty. There is deliberately no CreatedBy field here: the creator is set
// once at creation and is not patchable by any role.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *string
	AssignedTo  *string
}

// Fields lists the names of the supplied fields.
func (p TaskPatch) Fields() []string {
	var fields []string
	if p.Title != nil {
		fields = append(fields, "title")
	}
	if p.Description != nil {
		fields = append(fields, "description")
	}
	if p.Status != nil {
		fields = append(fields, "status")
	}
	if p.Priority != nil {
		fields = append(fields, "priority")
	}
	if p.DueDate != nil {
		fields = append(fields, "dueDate")
	}
	if p.AssignedTo != nil {
		fields = append(fields, "assignedTo")
	}
	return fields
}

// IsEmpty reports whether no field at all was supplied.
func (p TaskPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// statusOnly reports whether the patch consists of exactly the status field.
func (p TaskPatch) statusOnly() bool {
	fields := p.Fields()
	return len(fields) == 1 && fields[0] == "status"
}

// AuthorizeRead gates single-task visibility. The task's existence is the
// caller's concern; a denial here is an access problem, never a not-found.
func AuthorizeRead(p domain.Principal, task *domain.Task) error {
	if p.IsAdmin() {
		return nil
	}
	if task.IsAssignedTo(p.ID) {
		return nil
	}
	return ErrAccessDenied
}

// AuthorizeWrite narrows a requested patch to what the principal may apply.
// Admins get the patch verbatim. Users must own the task and may only send
// the status field; a patch mixing status with anything else, or missing
// status entirely, is rejected whole with no partial application.
func AuthorizeWrite(p domain.Principal, task *domain.Task, patch TaskPatch) (TaskPatch, error) {
	if p.IsAdmin() {
		return patch, nil
	}
	if !task.IsAssignedTo(p.ID) {
		return TaskPatch{}, ErrAccessDenied
	}
	if !patch.statusOnly() {
		return TaskPatch{}, ErrStatusOnly
	}
	return TaskPatch{Status: patch.Status}, nil
}

// AuthorizeCreate gates task creation. Pure role check.
func AuthorizeCreate(p domain.Principal) error {
	if p.IsAdmin() {
		return nil
	}
	return ErrAdminOnly
}

// AuthorizeDelete gates task deletion. Pure role check.
func AuthorizeDelete(p domain.Principal) error {
	if p.IsAdmin() {
		return nil
	}
	return ErrAdminOnly
}

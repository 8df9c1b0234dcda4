package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/taskboard/backend/access"
	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/repository"
	"github.com/taskboard/backend/usecase"
)

// View is a task enriched with assignee and creator directory metadata,
// ready for serialization.
type View struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      domain.Status   `json:"status"`
	Priority    domain.Priority `json:"priority"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	AssignedTo  *domain.Ref     `json:"assigned_to,omitempty"`
	CreatedBy   *domain.Ref     `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type UseCase struct {
	tasks  repository.TaskRepository
	users  repository.UserRepository
	buffer usecase.OperationBuffer
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, users repository.UserRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		users:  users,
		buffer: buffer,
		logger: logger,
	}
}

// List resolves the raw parameters through the access engine and executes
// the resulting plan. The returned total counts every matching row, not just
// the returned page.
func (uc *UseCase) List(ctx context.Context, principal domain.Principal, params access.ListParams) ([]View, int, access.QuerySpec, error) {
	spec := access.ScopeListQuery(principal, params)

	tasks, total, err := uc.tasks.List(ctx, spec)
	if err != nil {
		return nil, 0, spec, err
	}

	views := uc.enrich(ctx, tasks)
	return views, total, spec, nil
}

// Get fetches one task. Absence surfaces as not-found before the visibility
// check runs; a visibility failure is an access denial, never a not-found.
func (uc *UseCase) Get(ctx context.Context, principal domain.Principal, id string) (*View, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.AuthorizeRead(principal, task); err != nil {
		return nil, err
	}
	views := uc.enrich(ctx, []domain.Task{*task})
	return &views[0], nil
}

// Create validates the payload and inserts an admin-created task. The acting
// principal becomes the immutable creator.
func (uc *UseCase) Create(ctx context.Context, principal domain.Principal, in access.CreateInput) (*View, error) {
	if err := access.AuthorizeCreate(principal); err != nil {
		return nil, err
	}

	task, err := access.ValidateCreate(in)
	if err != nil {
		return nil, err
	}
	task.CreatedBy = principal.ID

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, task) {
			created = task
		} else {
			return nil, err
		}
	}

	views := uc.enrich(ctx, []domain.Task{*created})
	return &views[0], nil
}

// Update applies a role-narrowed patch to an existing task. Validation runs
// over the supplied fields first so the client gets every field error in one
// response; the authorization decision then narrows or rejects the patch as
// a whole.
func (uc *UseCase) Update(ctx context.Context, principal domain.Principal, id string, patch access.TaskPatch) (*View, error) {
	if err := access.ValidatePatch(patch); err != nil {
		return nil, err
	}

	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applied, err := access.AuthorizeWrite(principal, task, patch)
	if err != nil {
		return nil, err
	}
	access.ApplyPatch(task, applied)

	if err := uc.tasks.Update(ctx, task); err != nil {
		if err == domain.ErrTaskNotFound {
			return nil, err
		}
		if !uc.shouldBuffer(ctx, usecase.OperationUpdate, task) {
			return nil, err
		}
	}

	views := uc.enrich(ctx, []domain.Task{*task})
	return &views[0], nil
}

// Delete removes a task, admin only.
func (uc *UseCase) Delete(ctx context.Context, principal domain.Principal, id string) error {
	if err := access.AuthorizeDelete(principal); err != nil {
		return err
	}

	if err := uc.tasks.Delete(ctx, id); err != nil {
		if err == domain.ErrTaskNotFound {
			return err
		}
		task := &domain.Task{ID: id}
		if uc.shouldBuffer(ctx, usecase.OperationDelete, task) {
			return nil
		}
		return err
	}
	return nil
}

// Stats returns the dashboard breakdown over the same row scope the list
// query applies.
func (uc *UseCase) Stats(ctx context.Context, principal domain.Principal) (*domain.TaskStats, error) {
	scope := ""
	if !principal.IsAdmin() {
		scope = principal.ID
	}
	return uc.tasks.Stats(ctx, scope)
}

// enrich resolves assignee and creator ids to directory metadata. Lookups
// are best-effort: a missing user degrades to a bare id reference.
func (uc *UseCase) enrich(ctx context.Context, tasks []domain.Task) []View {
	refs := make(map[string]domain.Ref)
	resolve := func(id string) *domain.Ref {
		if id == "" {
			return nil
		}
		if ref, ok := refs[id]; ok {
			return &ref
		}
		ref := domain.Ref{ID: id}
		if user, err := uc.users.GetByID(ctx, id); err == nil {
			ref = user.Ref()
		} else if err != domain.ErrUserNotFound {
			uc.logger.Warn("directory lookup failed", zap.String("user_id", id), zap.Error(err))
		}
		refs[id] = ref
		return &ref
	}

	views := make([]View, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, View{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Status:      t.Status,
			Priority:    t.Priority,
			DueDate:     t.DueDate,
			AssignedTo:  resolve(t.AssignedTo),
			CreatedBy:   resolve(t.CreatedBy),
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		})
	}
	return views
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, task *domain.Task) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferTask(ctx, operation, task); err != nil {
		uc.logger.Error("failed to buffer task operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("task operation buffered", zap.String("operation", operation))
	return true
}

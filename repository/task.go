package repository

import (
	"context"

	"github.com/taskboard/backend/access"
	"github.com/taskboard/backend/domain"
)

// TaskRepository executes finalized query plans against the task store. It
// never sees raw request parameters; scoping and narrowing already happened
// in the access engine.
type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, spec access.QuerySpec) ([]domain.Task, int, error)
	Stats(ctx context.Context, assignedTo string) (*domain.TaskStats, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
}

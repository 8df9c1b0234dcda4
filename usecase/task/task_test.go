package task

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskboard/backend/access"
	"github.com/taskboard/backend/domain"
)

var (
	admin = domain.Principal{ID: "admin-1", Role: domain.RoleAdmin}
	alice = domain.Principal{ID: "user-alice", Role: domain.RoleUser}
)

type fakeTaskRepo struct {
	tasks map[string]domain.Task
	seq   int
}

func newFakeTaskRepo(tasks ...domain.Task) *fakeTaskRepo {
	repo := &fakeTaskRepo{tasks: make(map[string]domain.Task)}
	for _, t := range tasks {
		repo.tasks[t.ID] = t
	}
	return repo
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return &task, nil
}

func (r *fakeTaskRepo) List(_ context.Context, spec access.QuerySpec) ([]domain.Task, int, error) {
	var matched []domain.Task
	for _, t := range r.tasks {
		if spec.AssignedTo != "" && t.AssignedTo != spec.AssignedTo {
			continue
		}
		if spec.Status != "" && t.Status != spec.Status {
			continue
		}
		if spec.Priority != "" && t.Priority != spec.Priority {
			continue
		}
		if spec.Search != "" {
			needle := strings.ToLower(spec.Search)
			if !strings.Contains(strings.ToLower(t.Title), needle) &&
				!strings.Contains(strings.ToLower(t.Description), needle) {
				continue
			}
		}
		matched = append(matched, t)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	start := spec.Offset()
	if start > total {
		start = total
	}
	end := start + spec.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *fakeTaskRepo) Stats(_ context.Context, assignedTo string) (*domain.TaskStats, error) {
	stats := &domain.TaskStats{
		ByStatus:   make(map[domain.Status]int),
		ByPriority: make(map[domain.Priority]int),
	}
	for _, t := range r.tasks {
		if assignedTo != "" && t.AssignedTo != assignedTo {
			continue
		}
		stats.Total++
		stats.ByStatus[t.Status]++
		stats.ByPriority[t.Priority]++
	}
	return stats, nil
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	if task.ID == "" {
		r.seq++
		task.ID = fmt.Sprintf("task-%d", r.seq)
	}
	r.tasks[task.ID] = *task
	return task, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *domain.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

type fakeUserRepo struct {
	users map[string]domain.User
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	var users []domain.User
	for _, u := range r.users {
		users = append(users, u)
	}
	return users, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Upsert(_ context.Context, user *domain.User) error {
	r.users[user.ID] = *user
	return nil
}

func newUseCase(taskRepo *fakeTaskRepo) *UseCase {
	users := &fakeUserRepo{users: map[string]domain.User{
		admin.ID: {ID: admin.ID, Name: "Admin User", Email: "admin@demo.com", Role: domain.RoleAdmin},
		alice.ID: {ID: alice.ID, Name: "Alice", Email: "alice@demo.com", Role: domain.RoleUser},
	}}
	return New(taskRepo, users, nil, nil)
}

func seedTasks() *fakeTaskRepo {
	return newFakeTaskRepo(
		domain.Task{
			ID: "t1", Title: "Design Database Schema",
			Description: "Create the schema for users and tasks.",
			Status:      domain.StatusCompleted, Priority: domain.PriorityHigh,
			AssignedTo: alice.ID, CreatedBy: admin.ID,
		},
		domain.Task{
			ID: "t2", Title: "Write API docs",
			Description: "Document every endpoint.",
			Status:      domain.StatusPending, Priority: domain.PriorityLow,
			AssignedTo: "user-bob", CreatedBy: admin.ID,
		},
		domain.Task{
			ID: "t3", Title: "Fix login bug",
			Description: "Session cookie never expires.",
			Status:      domain.StatusInProgress, Priority: domain.PriorityMedium,
			AssignedTo: alice.ID, CreatedBy: admin.ID,
		},
	)
}

func TestListScopesUserToAssignments(t *testing.T) {
	uc := newUseCase(seedTasks())

	views, total, _, err := uc.List(context.Background(), alice, access.ListParams{})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	for _, v := range views {
		require.Equal(t, alice.ID, v.AssignedTo.ID)
	}

	_, total, _, err = uc.List(context.Background(), admin, access.ListParams{})
	require.NoError(t, err)
	require.Equal(t, 3, total)
}

func TestListSearchCaseInsensitive(t *testing.T) {
	uc := newUseCase(seedTasks())

	views, total, _, err := uc.List(context.Background(), admin, access.ListParams{Search: "schema"})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "Design Database Schema", views[0].Title)
}

func TestListEnrichesDirectoryRefs(t *testing.T) {
	uc := newUseCase(seedTasks())

	views, _, _, err := uc.List(context.Background(), admin, access.ListParams{Search: "schema"})
	require.NoError(t, err)
	require.Equal(t, "Alice", views[0].AssignedTo.Name)
	require.Equal(t, "alice@demo.com", views[0].AssignedTo.Email)
	require.Equal(t, "Admin User", views[0].CreatedBy.Name)
}

func TestListUnknownAssigneeDegradesToBareRef(t *testing.T) {
	uc := newUseCase(seedTasks())

	views, _, _, err := uc.List(context.Background(), admin, access.ListParams{Search: "docs"})
	require.NoError(t, err)
	require.Equal(t, "user-bob", views[0].AssignedTo.ID)
	require.Empty(t, views[0].AssignedTo.Name)
}

func TestGetNotFoundBeforeAccessCheck(t *testing.T) {
	uc := newUseCase(seedTasks())

	_, err := uc.Get(context.Background(), alice, "missing")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)

	_, err = uc.Get(context.Background(), alice, "t2")
	require.ErrorIs(t, err, access.ErrAccessDenied)

	view, err := uc.Get(context.Background(), alice, "t1")
	require.NoError(t, err)
	require.Equal(t, "t1", view.ID)
}

func TestCreateAdminOnly(t *testing.T) {
	uc := newUseCase(seedTasks())

	in := access.CreateInput{Title: "New task", Description: "Something to do."}

	_, err := uc.Create(context.Background(), alice, in)
	require.ErrorIs(t, err, access.ErrAdminOnly)

	view, err := uc.Create(context.Background(), admin, in)
	require.NoError(t, err)
	require.Equal(t, admin.ID, view.CreatedBy.ID)
	require.Equal(t, domain.StatusPending, view.Status)
	require.Equal(t, domain.PriorityMedium, view.Priority)
	require.Nil(t, view.DueDate)
}

func TestUpdateUserStatusFlip(t *testing.T) {
	repo := seedTasks()
	uc := newUseCase(repo)
	status := "completed"

	view, err := uc.Update(context.Background(), alice, "t3", access.TaskPatch{Status: &status})
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, view.Status)

	// Repeating the same flip succeeds and lands in the same state.
	view, err = uc.Update(context.Background(), alice, "t3", access.TaskPatch{Status: &status})
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, view.Status)
}

func TestUpdateUserMixedFieldsRejectedWhole(t *testing.T) {
	repo := seedTasks()
	uc := newUseCase(repo)
	status := "completed"
	title := "sneaky rename"

	_, err := uc.Update(context.Background(), alice, "t3", access.TaskPatch{Status: &status, Title: &title})
	require.ErrorIs(t, err, access.ErrStatusOnly)

	stored := repo.tasks["t3"]
	require.Equal(t, "Fix login bug", stored.Title)
	require.Equal(t, domain.StatusInProgress, stored.Status, "no partial application")
}

func TestUpdateValidationBeforeAuthorization(t *testing.T) {
	uc := newUseCase(seedTasks())
	bad := "archived"

	_, err := uc.Update(context.Background(), alice, "t3", access.TaskPatch{Status: &bad})
	require.True(t, domain.IsDomainError(err, domain.ErrCodeValidation))
}

func TestDeleteAdminOnly(t *testing.T) {
	repo := seedTasks()
	uc := newUseCase(repo)

	require.ErrorIs(t, uc.Delete(context.Background(), alice, "t1"), access.ErrAdminOnly)
	require.NoError(t, uc.Delete(context.Background(), admin, "t1"))
	require.ErrorIs(t, uc.Delete(context.Background(), admin, "t1"), domain.ErrTaskNotFound)
}

func TestStatsScoped(t *testing.T) {
	uc := newUseCase(seedTasks())

	stats, err := uc.Stats(context.Background(), admin)
	require.NoError(t, err)
	require.Equal(t, 3, stats.Total)

	stats, err = uc.Stats(context.Background(), alice)
	require.NoError(t, err)
	require.Equal(t, 2, stats.Total)
	require.Equal(t, 1, stats.ByStatus[domain.StatusCompleted])
	require.Equal(t, 1, stats.ByPriority[domain.PriorityHigh])
}

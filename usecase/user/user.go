package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskboard/backend/access"
	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/repository"
)

type UseCase struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		logger: logger,
	}
}

// GetProfile returns the caller's own account.
func (uc *UseCase) GetProfile(ctx context.Context, principal domain.Principal) (*domain.User, error) {
	return uc.users.GetByID(ctx, principal.ID)
}

// List returns the user directory for assignment pickers. Admin only; the
// public projection hides everything but id, name and email.
func (uc *UseCase) List(ctx context.Context, principal domain.Principal) ([]domain.Ref, error) {
	if !principal.IsAdmin() {
		return nil, access.ErrAdminOnly
	}

	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}

	refs := make([]domain.Ref, 0, len(users))
	for i := range users {
		refs = append(refs, users[i].Ref())
	}
	return refs, nil
}

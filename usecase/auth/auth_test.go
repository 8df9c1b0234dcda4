package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/backend/domain"
)

type fakeUserRepo struct {
	byID    map[string]domain.User
	byEmail map[string]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.GetByID(context.Background(), id)
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) { return nil, nil }

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, taken := r.byEmail[user.Email]; taken {
		return domain.ErrEmailTaken
	}
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *fakeUserRepo) Upsert(ctx context.Context, user *domain.User) error {
	return r.Create(ctx, user)
}

type fakeSessionRepo struct {
	sessions map[string]domain.Session
}

func (r *fakeSessionRepo) Get(_ context.Context, id string) (*domain.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &s, nil
}

func (r *fakeSessionRepo) Save(_ context.Context, s *domain.Session) error {
	r.sessions[s.ID] = *s
	return nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) Extend(_ context.Context, id string, ttlSeconds int) error {
	s, ok := r.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	s.ExpiresAt = time.Now().Add(time.Duration(ttlSeconds) * time.Second)
	r.sessions[id] = s
	return nil
}

func newTestUseCase(t *testing.T) (*UseCase, *fakeUserRepo) {
	t.Helper()
	users := newFakeUserRepo()
	sessions := &fakeSessionRepo{sessions: make(map[string]domain.Session)}
	uc := New(users, sessions, Config{
		Secret:     "test-secret",
		Issuer:     "taskboard",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	}, nil)
	return uc, users
}

func seedAdmin(t *testing.T, users *fakeUserRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), &domain.User{
		ID:           "admin-1",
		Name:         "Admin User",
		Email:        "admin@demo.com",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}))
}

func TestRegisterValidation(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.Register(context.Background(), " ", "not-an-email", "123")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 3, "all violations reported at once")
}

func TestRegisterCreatesRegularUser(t *testing.T) {
	uc, _ := newTestUseCase(t)

	user, err := uc.Register(context.Background(), "Jane Smith", "jane@demo.com", "password")
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser, user.Role, "self-registration never yields an admin")
	require.NotEqual(t, "password", user.PasswordHash)
}

func TestLoginIssuesRoleBearingToken(t *testing.T) {
	uc, users := newTestUseCase(t)
	seedAdmin(t, users)

	creds, err := uc.Login(context.Background(), "admin@demo.com", "password")
	require.NoError(t, err)
	require.NotEmpty(t, creds.SessionID)

	token, err := jwt.Parse(creds.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	require.Equal(t, "admin-1", claims["user_id"])
	require.Equal(t, "admin", claims["role"])
}

func TestLoginWrongPassword(t *testing.T) {
	uc, users := newTestUseCase(t)
	seedAdmin(t, users)

	_, err := uc.Login(context.Background(), "admin@demo.com", "nope")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(context.Background(), "ghost@demo.com", "password")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials,
		"unknown email and wrong password are indistinguishable")
}

func TestRefreshRotatesAccessToken(t *testing.T) {
	uc, users := newTestUseCase(t)
	seedAdmin(t, users)

	creds, err := uc.Login(context.Background(), "admin@demo.com", "password")
	require.NoError(t, err)

	refreshed, err := uc.Refresh(context.Background(), creds.SessionID)
	require.NoError(t, err)
	require.Equal(t, creds.SessionID, refreshed.SessionID)
	require.Equal(t, "admin-1", refreshed.User.ID)
}

func TestRefreshUnknownSession(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.Refresh(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

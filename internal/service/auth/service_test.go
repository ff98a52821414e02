package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niramoy/clinic-api/internal/model"
	"github.com/niramoy/clinic-api/pkg/auth"
	"github.com/niramoy/clinic-api/pkg/security"
)

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*model.User)}
	for _, u := range users {
		r.users[u.Email] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	r.users[u.Email] = u
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, assert.AnError
	}
	return u, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.Email] = u
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeUserRepo) {
	t.Helper()

	hasher := security.NewBcryptHasher(security.DefaultCost)
	hash, err := hasher.Hash("correct horse")
	require.NoError(t, err)

	user := &model.User{
		Email:        "admin@clinic.test",
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		Status:       model.UserStatusActive,
	}
	user.ID = uuid.New()

	repo := newFakeUserRepo(user)
	jwtSvc := auth.NewJWTService("test-secret", time.Hour, "clinic-api")
	return NewService(repo, jwtSvc, hasher), repo
}

func TestLogin(t *testing.T) {
	s, _ := newTestService(t)

	token, err := s.Login(context.Background(), "admin@clinic.test", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, token.AccessToken)

	claims, err := s.ValidateToken(context.Background(), token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	s, repo := newTestService(t)

	_, err := s.Login(context.Background(), "admin@clinic.test", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 1, repo.users["admin@clinic.test"].LoginAttempts)
}

func TestLoginUnknownUser(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.Login(context.Background(), "nobody@clinic.test", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginLocksAfterRepeatedFailures(t *testing.T) {
	s, repo := newTestService(t)

	for i := 0; i < maxLoginAttempts; i++ {
		_, err := s.Login(context.Background(), "admin@clinic.test", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	assert.Equal(t, model.UserStatusLocked, repo.users["admin@clinic.test"].Status)

	// Even the right password is rejected while locked.
	_, err := s.Login(context.Background(), "admin@clinic.test", "correct horse")
	assert.ErrorIs(t, err, ErrAccountLocked)
}

func TestLoginUnlocksAfterLockoutWindow(t *testing.T) {
	s, repo := newTestService(t)

	user := repo.users["admin@clinic.test"]
	user.Status = model.UserStatusLocked
	user.LoginAttempts = maxLoginAttempts
	user.LastLoginAttempt = time.Now().Add(-lockoutDuration - time.Minute)

	token, err := s.Login(context.Background(), "admin@clinic.test", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, model.UserStatusActive, user.Status)
	assert.Equal(t, 0, user.LoginAttempts)
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	s, _ := newTestService(t)

	token, err := s.Login(context.Background(), "admin@clinic.test", "correct horse")
	require.NoError(t, err)

	tampered := strings.TrimSuffix(token.AccessToken, "a") + "b"
	_, err = s.ValidateToken(context.Background(), tampered)
	assert.Error(t, err)
}

package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niramoy/clinic-api/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session"))
}

func signedToken(t *testing.T) string {
	t.Helper()
	claims := &model.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: uuid.New(),
		Email:  "admin@clinic.test",
		Role:   "ADMIN",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	token := signedToken(t)

	require.NoError(t, store.StoreUserInfo(token))

	got, err := store.Token()
	require.NoError(t, err)
	assert.Equal(t, token, got)

	info := store.GetUserInfo()
	assert.Equal(t, "admin@clinic.test", info.Email)
	assert.Equal(t, "admin", info.Role)
	assert.NotEmpty(t, info.ID)
}

func TestIsLoggedInChecksPresenceOnly(t *testing.T) {
	store := newTestStore(t)
	assert.False(t, store.IsLoggedIn())

	// A token that cannot be decoded still counts as a session; the
	// server rejects it when it is actually used.
	require.NoError(t, store.StoreUserInfo("not-a-jwt"))
	assert.True(t, store.IsLoggedIn())
}

func TestGetUserInfoOnGarbageToken(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.StoreUserInfo("not-a-jwt"))

	assert.Equal(t, UserInfo{}, store.GetUserInfo())
}

func TestGetUserInfoWithoutSession(t *testing.T) {
	store := newTestStore(t)
	assert.Equal(t, UserInfo{}, store.GetUserInfo())
}

func TestRemoveUserInfo(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.StoreUserInfo(signedToken(t)))
	require.True(t, store.IsLoggedIn())

	require.NoError(t, store.RemoveUserInfo())
	assert.False(t, store.IsLoggedIn())

	// Removing twice is fine.
	require.NoError(t, store.RemoveUserInfo())
}

package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niramoy/clinic-api/internal/model"
)

func testUser() *model.User {
	u := &model.User{
		Email: "admin@clinic.test",
		Role:  model.RoleAdmin,
	}
	u.ID = uuid.New()
	return u
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, "clinic-api")
	user := testUser()

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.Equal(t, "clinic-api", claims.Issuer)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour, "clinic-api")
	verifier := NewJWTService("secret-b", time.Hour, "clinic-api")

	token, err := issuer.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, "clinic-api")

	token, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, "clinic-api")

	_, err := svc.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

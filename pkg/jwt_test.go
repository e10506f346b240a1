package utils

import (
	"testing"

	entity "campusx/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	user := &entity.User{ID: uuid.New(), RoleID: uuid.New(), Username: "somsri"}

	token, err := GenerateToken(user, "student")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.RoleID, claims.RoleID)
	assert.Equal(t, "student", claims.RoleName)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	user := &entity.User{ID: uuid.New()}

	token, err := GenerateRefreshToken(user)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
}

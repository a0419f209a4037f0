package services

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"challengeapi/models"
)

func TestIssueToken(t *testing.T) {
	s := &AuthService{jwtSecret: "test-secret"}
	user := &models.User{ID: "user-1", Name: "Ada", Email: "ada@example.com", Role: models.RoleAdmin}

	resp, err := s.issueToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, user, resp.User)

	token, err := jwt.Parse(resp.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "admin", claims["role"])
	assert.NotZero(t, claims["exp"])
}

func TestIssueTokenRejectsWrongSecret(t *testing.T) {
	s := &AuthService{jwtSecret: "test-secret"}
	resp, err := s.issueToken(&models.User{ID: "user-1", Role: models.RoleUser})
	require.NoError(t, err)

	_, err = jwt.Parse(resp.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}

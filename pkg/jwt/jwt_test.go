package jwt

import (
	"testing"

	"presskit/backend/internal/config"
	"presskit/backend/internal/models"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	tokenString, err := GenerateToken(42, models.RoleEditor)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := jwtlib.Parse(tokenString, func(token *jwtlib.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwtlib.MapClaims)
	require.True(t, ok)
	assert.EqualValues(t, 42, claims["sub"])
	assert.Equal(t, string(models.RoleEditor), claims["role"])
	assert.Greater(t, claims["exp"].(float64), claims["iat"].(float64))
}

func TestGenerateTokenRejectsWrongSecret(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	tokenString, err := GenerateToken(7, models.RoleAuthor)
	require.NoError(t, err)

	_, err = jwtlib.Parse(tokenString, func(token *jwtlib.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}

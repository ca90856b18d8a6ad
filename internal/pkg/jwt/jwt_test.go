package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm-service/internal/pkg/auth"
	"crm-service/internal/pkg/config"
	"crm-service/pkg/constants"
	pkgErrors "crm-service/pkg/errors"
)

func setupConfig(accessExpire, refreshExpire int) {
	config.GlobalConfig = &config.Config{
		Auth: config.AuthConfig{
			JWT: config.JWTConfig{
				Secret:             "test-secret",
				AccessTokenExpire:  accessExpire,
				RefreshTokenExpire: refreshExpire,
			},
		},
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	setupConfig(3600, 7200)

	token, err := GenerateAccessToken(42, "user@example.com", "User", "manager")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "manager", claims.Role)
	assert.Equal(t, constants.JWTTypeAccess, claims.Type)

	session := claims.Session()
	assert.Equal(t, int64(42), session.UserID)
	assert.Equal(t, auth.RoleManager, session.Role)
}

func TestRefreshTokenType(t *testing.T) {
	setupConfig(3600, 7200)

	token, err := GenerateRefreshToken(7, "user@example.com", "User", "member")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, constants.JWTTypeRefresh, claims.Type)
}

func TestExpiredToken(t *testing.T) {
	setupConfig(-60, 7200)

	token, err := GenerateAccessToken(1, "user@example.com", "User", "member")
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestTamperedToken(t *testing.T) {
	setupConfig(3600, 7200)

	token, err := GenerateAccessToken(1, "user@example.com", "User", "member")
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestWrongSecret(t *testing.T) {
	setupConfig(3600, 7200)
	token, err := GenerateAccessToken(1, "user@example.com", "User", "member")
	require.NoError(t, err)

	config.GlobalConfig.Auth.JWT.Secret = "another-secret"
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestSessionKeepsUnknownRole(t *testing.T) {
	setupConfig(3600, 7200)

	token, err := GenerateAccessToken(1, "user@example.com", "User", "superuser")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)

	// 角色快照原样保留, 由鉴权原语fail-closed处理
	session := claims.Session()
	assert.False(t, auth.HasAtLeast(session, auth.RoleViewer))
	assert.Equal(t, pkgErrors.ErrForbidden, auth.AssertRole(session, auth.RoleAdmin))
}

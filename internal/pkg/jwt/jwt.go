package jwt

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"crm-service/internal/pkg/auth"
	"crm-service/internal/pkg/config"
	"crm-service/pkg/constants"
	pkgErrors "crm-service/pkg/errors"
)

// UserClaims 用户Claims
// Role 为签发时刻的角色快照, 不随用户表的后续修改实时同步
type UserClaims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Type   string `json:"type"` // access or refresh
	jwt.RegisteredClaims
}

// Session 将Claims转换为显式会话对象
// 角色取值不合法时保留原始字符串, 由鉴权原语fail-closed处理
func (c *UserClaims) Session() *auth.Session {
	return &auth.Session{
		UserID: c.UserID,
		Email:  c.Email,
		Name:   c.Name,
		Role:   auth.Role(c.Role),
	}
}

// GenerateAccessToken 生成访问Token
func GenerateAccessToken(userID int64, email, name, role string) (string, error) {
	cfg := config.GlobalConfig.Auth.JWT
	return generate(userID, email, name, role, constants.JWTTypeAccess,
		time.Duration(cfg.AccessTokenExpire)*time.Second)
}

// GenerateRefreshToken 生成刷新Token
func GenerateRefreshToken(userID int64, email, name, role string) (string, error) {
	cfg := config.GlobalConfig.Auth.JWT
	return generate(userID, email, name, role, constants.JWTTypeRefresh,
		time.Duration(cfg.RefreshTokenExpire)*time.Second)
}

func generate(userID int64, email, name, role, tokenType string, expire time.Duration) (string, error) {
	claims := UserClaims{
		UserID: userID,
		Email:  email,
		Name:   name,
		Role:   role,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.GlobalConfig.Auth.JWT.Secret))
}

// ParseToken 解析Token
func ParseToken(tokenString string) (*UserClaims, error) {
	cfg := config.GlobalConfig.Auth.JWT

	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名方法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	})

	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeUnauthorized, "解析Token失败", err)
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, pkgErrors.ErrInvalidToken
}

// ValidateToken 验证Token有效性
func ValidateToken(tokenString string) (*UserClaims, error) {
	claims, err := ParseToken(tokenString)
	if err != nil {
		return nil, err
	}

	// 检查是否过期
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, pkgErrors.ErrTokenExpired
	}

	return claims, nil
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"crm-service/internal/pkg/auth"
	"crm-service/internal/pkg/jwt"
	"crm-service/pkg/constants"
	pkgErrors "crm-service/pkg/errors"
	"crm-service/pkg/utils"
)

// JWTAuth JWT认证中间件
// 校验Authorization头中的访问Token, 解析为会话写入context
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.Error(c, pkgErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, constants.HeaderBearerPrefix) {
			utils.Error(c, pkgErrors.ErrInvalidToken)
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, constants.HeaderBearerPrefix)

		claims, err := jwt.ValidateToken(tokenString)
		if err != nil {
			utils.Error(c, err)
			c.Abort()
			return
		}
		if claims.Type != constants.JWTTypeAccess {
			utils.Error(c, pkgErrors.ErrInvalidToken)
			c.Abort()
			return
		}

		c.Set(constants.SessionContextKey, claims.Session())
		c.Next()
	}
}

// GetSession 从context取出会话, 未认证时返回nil
func GetSession(c *gin.Context) *auth.Session {
	value, exists := c.Get(constants.SessionContextKey)
	if !exists {
		return nil
	}
	session, ok := value.(*auth.Session)
	if !ok {
		return nil
	}
	return session
}

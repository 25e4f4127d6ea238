package middleware

import (
	"strings"

	"quizapp_backend/internal/config"
	"quizapp_backend/internal/util"
	"quizapp_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func extractToken(c *gin.Context) string {
	tokenString := ""
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		tokenString = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}

	if tokenString == "" {
		tokenString = c.Query("token")
	}
	return tokenString
}

// AuthMiddleware 必须携带有效令牌，否则 401
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			logger.Log.Debug("JWT parse failed", zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		util.SetUserInContext(c, claims)
		c.Next()
	}
}

// TryAuthMiddleware 可选认证：令牌有效时附加身份，缺失或无效时按游客处理
func TryAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := extractToken(c); tokenString != "" {
			if claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret); err == nil {
				util.SetUserInContext(c, claims)
			} else {
				logger.Log.Debug("ignoring invalid optional token", zap.Error(err))
			}
		}
		c.Next()
	}
}

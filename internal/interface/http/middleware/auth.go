package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kiwi/lemonade/pkg/errors"
	"github.com/kiwi/lemonade/pkg/jwt"
	"github.com/kiwi/lemonade/pkg/response"
)

const (
	ctxKeyAccessToken  = "admin_access_token"
	ctxKeyAdminSubject = "admin_subject"
)

// TokenChecker 令牌黑名单查询接口（由Redis实现）
type TokenChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware 后台认证中间件
// 设计说明：
// 1. 从Header提取Token
// 2. 验证Token签名和admin角色
// 3. 检查Token黑名单（已登出的Token），伪造的Token不会打到Redis
// 4. 将Token和操作员标识注入Context
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	checker    TokenChecker
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, checker TokenChecker) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		checker:    checker,
	}
}

// RequireAdmin 要求后台登录
// 使用方式：
//
//	admin := v1.Group("/admin")
//	admin.Use(authMiddleware.RequireAdmin())
//	admin.GET("/orders", orderHandler.ListOrders)
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 从Header提取Token
		// 格式：Authorization: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		// 2. 解析Token格式
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.ErrorWithCode(c, apperrors.ErrCodeInvalidToken, "Token格式错误")
			c.Abort()
			return
		}

		tokenString := parts[1]

		// 3. 验证Token并解析Claims
		claims, err := m.jwtManager.ParseToken(tokenString)
		if err != nil {
			response.Error(c, err) // 自动处理ErrTokenExpired、ErrInvalidToken
			c.Abort()
			return
		}

		// 4. 检查Token是否在黑名单中（已登出）
		revoked, err := m.checker.IsRevoked(c.Request.Context(), tokenString)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if revoked {
			response.ErrorWithCode(c, apperrors.ErrCodeTokenExpired, "Token已失效，请重新登录")
			c.Abort()
			return
		}

		// 5. 注入Context（登出需要原始Token）
		c.Set(ctxKeyAccessToken, tokenString)
		c.Set(ctxKeyAdminSubject, claims.Subject)

		c.Next()
	}
}

// GetAccessToken 从Context获取当前请求的后台Token
func GetAccessToken(c *gin.Context) string {
	return c.GetString(ctxKeyAccessToken)
}

// GetAdminSubject 从Context获取操作员标识
func GetAdminSubject(c *gin.Context) string {
	return c.GetString(ctxKeyAdminSubject)
}

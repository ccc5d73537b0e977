package middleware

import (
	"errors"

	"terminal-terrace/course-platform/internal/dto"
	"terminal-terrace/course-platform/internal/model/user"
	"terminal-terrace/course-platform/internal/permission"
	"terminal-terrace/course-platform/packages/authsdk"
	"terminal-terrace/course-platform/packages/response"

	"github.com/gin-gonic/gin"
)

// 上下文中的用户信息键
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextEmail    = "email"
	ContextUserRole = "user_role"
)

func setUser(c *gin.Context, u *authsdk.UserContext) {
	c.Set(ContextUserID, u.UserID)
	c.Set(ContextUsername, u.Username)
	c.Set(ContextEmail, u.Email)
	c.Set(ContextUserRole, u.Role)
}

// JWTAuth JWT 认证中间件（必需认证）
// token 查找顺序见 authsdk.ExtractToken
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := authsdk.GetUserFromRequest(c.Request, secret)
		if err != nil {
			msg := "无效的认证令牌"
			switch {
			case errors.Is(err, authsdk.ErrNoToken):
				msg = "未提供认证令牌"
			case errors.Is(err, authsdk.ErrExpiredToken):
				msg = "认证令牌已过期"
			}
			dto.ErrorResponse(c, response.NewUnauthorized(msg))
			c.Abort()
			return
		}

		setUser(c, u)
		c.Next()
	}
}

// OptionalJWTAuth 可选的 JWT 认证中间件（不强制要求认证，但如果有token则解析）
func OptionalJWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if u, err := authsdk.GetUserFromRequest(c.Request, secret); err == nil {
			setUser(c, u)
		}
		c.Next()
	}
}

// RequireRole 要求当前用户的角色等级不低于 role，需放在 JWTAuth 之后
func RequireRole(role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			dto.ErrorResponse(c, response.NewUnauthorized("未登录"))
			c.Abort()
			return
		}
		if !permission.HasRequiredRole(actor.Role, role) {
			dto.ErrorResponse(c, response.NewForbidden("权限不足"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetActor 从上下文读取当前用户，未登录时 ok 为 false
func GetActor(c *gin.Context) (permission.Actor, bool) {
	id, exists := c.Get(ContextUserID)
	if !exists {
		return permission.Actor{}, false
	}
	uid, ok := id.(uint)
	if !ok || uid == 0 {
		return permission.Actor{}, false
	}
	return permission.Actor{
		ID:       uid,
		Username: c.GetString(ContextUsername),
		Email:    c.GetString(ContextEmail),
		Role:     user.Role(c.GetString(ContextUserRole)),
	}, true
}

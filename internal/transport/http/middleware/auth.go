package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"careportal/internal/core/auth"
	"careportal/internal/domain"
	resp "careportal/internal/transport/http/response"
)

const (
	KeyUserID = "userId"
	KeyRole   = "role"
	KeyUser   = "currentUser"
)

// UserLoader 鉴权时回表取用户。token 有效不等于账号还在/还活着
type UserLoader interface {
	FindByID(id string) (*domain.User, error)
}

// AuthJWT 状态机：无 token → 401；签名/过期无效 → 401；
// 用户不存在或已停用 → 401；通过则把身份挂到 context 上
func AuthJWT(j *auth.JWTer, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Fail("missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Fail("invalid token"))
			return
		}
		u, err := users.FindByID(claims.UID)
		if err != nil || u == nil || !u.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Fail("invalid token"))
			return
		}
		c.Set(KeyUserID, u.ID)
		c.Set(KeyRole, string(u.Role))
		c.Set(KeyUser, u)
		c.Next()
	}
}

// RequireRoles 静态角色白名单，路由组级声明
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[string(r)] = struct{}{}
	}
	return func(c *gin.Context) {
		if _, ok := allowed[c.GetString(KeyRole)]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, resp.Fail("forbidden"))
			return
		}
		c.Next()
	}
}

// CurrentUser 取鉴权中间件挂上来的用户
func CurrentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(KeyUser); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}

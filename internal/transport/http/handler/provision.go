package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"careportal/internal/domain"
	"careportal/internal/service"
	mdw "careportal/internal/transport/http/middleware"
	resp "careportal/internal/transport/http/response"
)

// tempPasswordNote 随开号响应带回，提醒调用方明文只给这一次
const tempPasswordNote = "temporary password is shown only once; ask the user to change it on first login"

type provisionIn struct {
	Email     string `json:"email"     binding:"required,email"`
	FirstName string `json:"firstName" binding:"required,max=64"`
	LastName  string `json:"lastName"  binding:"required,max=64"`
	Phone     string `json:"phone"     binding:"omitempty,max=32"`
}

// provisionAction 管理员和医生的开号路由共用这一个 handler 工厂，
// 实际的权限差异都在 domain.ProvisionPolicy 里
func provisionAction(users *service.UserService, target domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in provisionIn
		if err := c.ShouldBindJSON(&in); err != nil {
			resp.WriteError(c, resp.BadRequest(err.Error()))
			return
		}
		actor := mdw.CurrentUser(c)
		if actor == nil {
			resp.WriteError(c, resp.Unauthorized("unauthorized"))
			return
		}
		u, tempPwd, err := users.Provision(actor, target, service.ProfileInput{
			Email:     in.Email,
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Phone:     in.Phone,
		})
		if err != nil {
			switch {
			case errors.Is(err, service.ErrEmailExists):
				resp.WriteError(c, resp.Conflict(err.Error()))
			case errors.Is(err, service.ErrRoleNotAllowed):
				resp.WriteError(c, resp.Forbidden(err.Error()))
			default:
				resp.WriteError(c, resp.Internal("provision failed", err))
			}
			return
		}
		c.JSON(http.StatusCreated, resp.OK(gin.H{
			"uniqueId":          u.UniqueID,
			"email":             u.Email,
			"role":              u.Role,
			"firstName":         u.FirstName,
			"lastName":          u.LastName,
			"temporaryPassword": tempPwd,
			"note":              tempPasswordNote,
		}))
	}
}

// listByRoleAction 角色过滤列表，医生端和管理端共用
func listByRoleAction(users *service.UserService, role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q listQ
		if err := c.ShouldBindQuery(&q); err != nil {
			resp.WriteError(c, resp.BadRequest(err.Error()))
			return
		}
		items, total, err := users.List(domain.UserFilter{Role: role, Offset: q.Offset, Limit: q.Limit})
		if err != nil {
			resp.WriteError(c, resp.Internal("list users failed", err))
			return
		}
		out := make([]userView, 0, len(items))
		for i := range items {
			out = append(out, toUserView(&items[i]))
		}
		c.JSON(http.StatusOK, resp.OK(gin.H{"list": out, "total": total}))
	}
}

type listQ struct {
	Offset int `form:"offset,default=0"`
	Limit  int `form:"limit,default=20"`
}

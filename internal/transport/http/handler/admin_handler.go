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

type AdminHandler struct {
	users  *service.UserService
	stats  *service.StatsService
	authMW gin.HandlerFunc
}

func NewAdminHandler(users *service.UserService, stats *service.StatsService, authMW gin.HandlerFunc) *AdminHandler {
	return &AdminHandler{users: users, stats: stats, authMW: authMW}
}

func (h *AdminHandler) Mount(api *gin.RouterGroup) {
	g := api.Group("/admin")
	// register 是唯一的公开入口，且只在系统没有 admin 时放行
	g.POST("/register", h.Register)

	authed := g.Group("")
	authed.Use(h.authMW, mdw.RequireRoles(domain.RoleAdmin))
	authed.POST("/doctors", provisionAction(h.users, domain.RoleDoctor))
	authed.POST("/patients", provisionAction(h.users, domain.RolePatient))
	authed.POST("/pharmacists", provisionAction(h.users, domain.RolePharmacist))
	authed.POST("/admins", provisionAction(h.users, domain.RoleAdmin))
	authed.GET("/users", h.ListUsers)
	authed.PUT("/users/:id/activate", h.setActive(true))
	authed.PUT("/users/:id/deactivate", h.setActive(false))
	authed.GET("/stats", h.Stats)
}

type registerIn struct {
	Email     string `json:"email"     binding:"required,email"`
	Password  string `json:"password"  binding:"required"`
	FirstName string `json:"firstName" binding:"required,max=64"`
	LastName  string `json:"lastName"  binding:"required,max=64"`
	Phone     string `json:"phone"     binding:"omitempty,max=32"`
}

func (h *AdminHandler) Register(c *gin.Context) {
	var in registerIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.WriteError(c, resp.BadRequest(err.Error()))
		return
	}
	u, err := h.users.RegisterAdmin(service.ProfileInput{
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
	}, in.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminExists):
			resp.WriteError(c, resp.Forbidden(err.Error()))
		case errors.Is(err, service.ErrEmailExists):
			resp.WriteError(c, resp.Conflict(err.Error()))
		case errors.Is(err, service.ErrWeakPassword):
			resp.WriteError(c, resp.BadRequest(err.Error()))
		default:
			resp.WriteError(c, resp.Internal("register failed", err))
		}
		return
	}
	c.JSON(http.StatusCreated, resp.OK(toUserView(u)))
}

type adminListQ struct {
	Role     string `form:"role"     binding:"omitempty,oneof=admin doctor patient pharmacist"`
	IsActive *bool  `form:"isActive"`
	Offset   int    `form:"offset,default=0"`
	Limit    int    `form:"limit,default=20"`
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var q adminListQ
	if err := c.ShouldBindQuery(&q); err != nil {
		resp.WriteError(c, resp.BadRequest(err.Error()))
		return
	}
	items, total, err := h.users.List(domain.UserFilter{
		Role:     domain.Role(q.Role),
		IsActive: q.IsActive,
		Offset:   q.Offset,
		Limit:    q.Limit,
	})
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

func (h *AdminHandler) setActive(active bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := h.users.SetActive(c.Param("id"), active)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				resp.WriteError(c, resp.NotFound(err.Error()))
				return
			}
			resp.WriteError(c, resp.Internal("update user failed", err))
			return
		}
		c.JSON(http.StatusOK, resp.OK(toUserView(u)))
	}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	st, err := h.stats.Get(c.Request.Context())
	if err != nil {
		resp.WriteError(c, resp.Internal("load stats failed", err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(st))
}

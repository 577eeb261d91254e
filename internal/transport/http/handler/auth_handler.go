package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"careportal/internal/domain"
	"careportal/internal/service"
	mdw "careportal/internal/transport/http/middleware"
	resp "careportal/internal/transport/http/response"
)

type AuthHandler struct {
	auth   *service.AuthService
	authMW gin.HandlerFunc
}

func NewAuthHandler(auth *service.AuthService, authMW gin.HandlerFunc) *AuthHandler {
	return &AuthHandler{auth: auth, authMW: authMW}
}

func (h *AuthHandler) Mount(api *gin.RouterGroup) {
	g := api.Group("/auth")
	// 登录入口单独做每 IP 限速，防撞库
	g.POST("/login", mdw.RateLimitPerIP(rate.Limit(5), 10), h.Login)

	authed := g.Group("")
	authed.Use(h.authMW)
	authed.GET("/me", h.Me)
	authed.PUT("/updatepassword", h.UpdatePassword)
}

type loginIn struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// userView 对外的用户视图，永远不带密码哈希
type userView struct {
	ID           string      `json:"id"`
	UniqueID     string      `json:"uniqueId"`
	Email        string      `json:"email"`
	Role         domain.Role `json:"role"`
	FirstName    string      `json:"firstName"`
	LastName     string      `json:"lastName"`
	Phone        string      `json:"phone,omitempty"`
	IsActive     bool        `json:"isActive"`
	IsFirstLogin bool        `json:"isFirstLogin"`
}

func toUserView(u *domain.User) userView {
	return userView{
		ID:           u.ID,
		UniqueID:     u.UniqueID,
		Email:        u.Email,
		Role:         u.Role,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		IsActive:     u.IsActive,
		IsFirstLogin: u.IsFirstLogin,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.WriteError(c, resp.BadRequest(err.Error()))
		return
	}
	u, tok, err := h.auth.Login(in.Email, in.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			mdw.LoginFailInc()
			resp.WriteError(c, resp.Unauthorized("invalid credentials"))
			return
		}
		resp.WriteError(c, resp.Internal("login failed", err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"token": tok, "user": toUserView(u)}))
}

func (h *AuthHandler) Me(c *gin.Context) {
	u := mdw.CurrentUser(c)
	if u == nil {
		resp.WriteError(c, resp.Unauthorized("unauthorized"))
		return
	}
	c.JSON(http.StatusOK, resp.OK(toUserView(u)))
}

type updatePasswordIn struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword"     binding:"required"`
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var in updatePasswordIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.WriteError(c, resp.BadRequest(err.Error()))
		return
	}
	u := mdw.CurrentUser(c)
	if u == nil {
		resp.WriteError(c, resp.Unauthorized("unauthorized"))
		return
	}
	tok, err := h.auth.ChangePassword(u, in.CurrentPassword, in.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordMismatch):
			resp.WriteError(c, resp.Unauthorized(err.Error()))
		case errors.Is(err, service.ErrWeakPassword):
			resp.WriteError(c, resp.BadRequest(err.Error()))
		default:
			resp.WriteError(c, resp.Internal("change password failed", err))
		}
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"token": tok}))
}

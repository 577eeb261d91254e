package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careportal/internal/domain"
	"careportal/internal/service"
	mdw "careportal/internal/transport/http/middleware"
	resp "careportal/internal/transport/http/response"
)

type PatientHandler struct {
	schedules *service.ScheduleService
	authMW    gin.HandlerFunc
}

func NewPatientHandler(schedules *service.ScheduleService, authMW gin.HandlerFunc) *PatientHandler {
	return &PatientHandler{schedules: schedules, authMW: authMW}
}

func (h *PatientHandler) Mount(api *gin.RouterGroup) {
	g := api.Group("/patient")
	g.Use(h.authMW, mdw.RequireRoles(domain.RolePatient))
	g.GET("/schedules", h.ListSchedules)
}

func (h *PatientHandler) ListSchedules(c *gin.Context) {
	var q listQ
	if err := c.ShouldBindQuery(&q); err != nil {
		resp.WriteError(c, resp.BadRequest(err.Error()))
		return
	}
	p := mdw.CurrentUser(c)
	if p == nil {
		resp.WriteError(c, resp.Unauthorized("unauthorized"))
		return
	}
	items, total, err := h.schedules.ListForPatient(p.ID, q.Offset, q.Limit)
	if err != nil {
		resp.WriteError(c, resp.Internal("list schedules failed", err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"list": items, "total": total}))
}

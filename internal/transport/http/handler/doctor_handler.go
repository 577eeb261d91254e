package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"careportal/internal/domain"
	"careportal/internal/service"
	mdw "careportal/internal/transport/http/middleware"
	resp "careportal/internal/transport/http/response"
)

type DoctorHandler struct {
	users     *service.UserService
	schedules *service.ScheduleService
	authMW    gin.HandlerFunc
}

func NewDoctorHandler(users *service.UserService, schedules *service.ScheduleService, authMW gin.HandlerFunc) *DoctorHandler {
	return &DoctorHandler{users: users, schedules: schedules, authMW: authMW}
}

func (h *DoctorHandler) Mount(api *gin.RouterGroup) {
	g := api.Group("/doctor")
	g.Use(h.authMW, mdw.RequireRoles(domain.RoleDoctor))

	g.POST("/patients", provisionAction(h.users, domain.RolePatient))
	g.POST("/doctors", provisionAction(h.users, domain.RoleDoctor))
	g.POST("/pharmacists", provisionAction(h.users, domain.RolePharmacist))
	g.GET("/patients", listByRoleAction(h.users, domain.RolePatient))
	g.GET("/doctors", listByRoleAction(h.users, domain.RoleDoctor))
	g.GET("/pharmacists", listByRoleAction(h.users, domain.RolePharmacist))

	g.POST("/schedules", h.CreateSchedule)
	g.GET("/schedules", h.ListSchedules)
}

type scheduleIn struct {
	PatientID       string    `json:"patientId"       binding:"required"`
	AppointmentDate time.Time `json:"appointmentDate" binding:"required"`
	Notes           string    `json:"notes"           binding:"omitempty,max=512"`
}

func (h *DoctorHandler) CreateSchedule(c *gin.Context) {
	var in scheduleIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.WriteError(c, resp.BadRequest(err.Error()))
		return
	}
	doctor := mdw.CurrentUser(c)
	if doctor == nil {
		resp.WriteError(c, resp.Unauthorized("unauthorized"))
		return
	}
	sch, err := h.schedules.Create(doctor, in.PatientID, in.AppointmentDate, in.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPatientNotFound):
			resp.WriteError(c, resp.NotFound(err.Error()))
		case errors.Is(err, service.ErrPastAppointment):
			resp.WriteError(c, resp.BadRequest(err.Error()))
		default:
			resp.WriteError(c, resp.Internal("create schedule failed", err))
		}
		return
	}
	c.JSON(http.StatusCreated, resp.OK(sch))
}

func (h *DoctorHandler) ListSchedules(c *gin.Context) {
	var q listQ
	if err := c.ShouldBindQuery(&q); err != nil {
		resp.WriteError(c, resp.BadRequest(err.Error()))
		return
	}
	doctor := mdw.CurrentUser(c)
	if doctor == nil {
		resp.WriteError(c, resp.Unauthorized("unauthorized"))
		return
	}
	items, total, err := h.schedules.ListForDoctor(doctor.ID, q.Offset, q.Limit)
	if err != nil {
		resp.WriteError(c, resp.Internal("list schedules failed", err))
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"list": items, "total": total}))
}

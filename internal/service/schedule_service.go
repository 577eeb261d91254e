package service

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"careportal/internal/domain"
	"careportal/pkg/utils"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrPastAppointment = errors.New("appointment date is in the past")
)

type ScheduleService struct {
	schedules domain.ScheduleRepository
	users     domain.UserRepository
	log       *zap.Logger
}

func NewScheduleService(schedules domain.ScheduleRepository, users domain.UserRepository, log *zap.Logger) *ScheduleService {
	return &ScheduleService{schedules: schedules, users: users, log: log}
}

// Create 医生给患者建预约。患者必须存在、角色是 patient 且未停用
func (s *ScheduleService) Create(doctor *domain.User, patientID string, startsAt time.Time, notes string) (*domain.Schedule, error) {
	p, err := s.users.FindByID(patientID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Role != domain.RolePatient || !p.IsActive {
		return nil, ErrPatientNotFound
	}
	if startsAt.Before(time.Now()) {
		return nil, ErrPastAppointment
	}
	sch := &domain.Schedule{
		ID:        utils.NewID(),
		DoctorID:  doctor.ID,
		PatientID: p.ID,
		StartsAt:  startsAt,
		Notes:     notes,
	}
	if err := s.schedules.Create(sch); err != nil {
		return nil, err
	}
	s.log.Info("schedule created",
		zap.String("id", sch.ID),
		zap.String("doctor", doctor.ID),
		zap.String("patient", p.ID),
	)
	return sch, nil
}

func (s *ScheduleService) ListForDoctor(doctorID string, offset, limit int) ([]domain.Schedule, int64, error) {
	return s.schedules.ListByDoctor(doctorID, offset, limit)
}

func (s *ScheduleService) ListForPatient(patientID string, offset, limit int) ([]domain.Schedule, int64, error) {
	return s.schedules.ListByPatient(patientID, offset, limit)
}

package repo

import (
	"gorm.io/gorm"

	"careportal/internal/domain"
)

type ScheduleRepo struct{ db *gorm.DB }

func NewScheduleRepo(db *gorm.DB) *ScheduleRepo { return &ScheduleRepo{db: db} }

func (r *ScheduleRepo) Create(s *domain.Schedule) error { return r.db.Create(s).Error }

func (r *ScheduleRepo) ListByDoctor(doctorID string, offset, limit int) ([]domain.Schedule, int64, error) {
	return r.list("doctor_id = ?", doctorID, offset, limit)
}

func (r *ScheduleRepo) ListByPatient(patientID string, offset, limit int) ([]domain.Schedule, int64, error) {
	return r.list("patient_id = ?", patientID, offset, limit)
}

func (r *ScheduleRepo) list(cond, id string, offset, limit int) ([]domain.Schedule, int64, error) {
	q := r.db.Model(&domain.Schedule{}).Where(cond, id)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var items []domain.Schedule
	if err := q.Order("starts_at ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

package domain

import "time"

// Schedule 预约：医生与患者之间，均为弱引用
type Schedule struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	DoctorID  string    `gorm:"size:36;index;not null" json:"doctorId"`
	PatientID string    `gorm:"size:36;index;not null" json:"patientId"`
	StartsAt  time.Time `gorm:"not null" json:"appointmentDate"`
	Notes     string    `gorm:"size:512" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Schedule) TableName() string { return "schedules" }

type ScheduleRepository interface {
	Create(s *Schedule) error
	ListByDoctor(doctorID string, offset, limit int) ([]Schedule, int64, error)
	ListByPatient(patientID string, offset, limit int) ([]Schedule, int64, error)
}

package repository

import (
	"time"

	"sehat-sathi-server/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	// FindActiveByDoctorAndDate returns non-cancelled appointments for a
	// doctor on one calendar date; these are the booked slots the resolver
	// filters against.
	FindActiveByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error)
	FindActiveByDoctorDateTime(db *gorm.DB, doctorID uuid.UUID, date time.Time, startTime string) (*entity.Appointment, error)
	// Cancel atomically cancels an appointment unless already cancelled.
	// Returns affected rows: 1 = success, 0 = already cancelled.
	Cancel(db *gorm.DB, id uuid.UUID) (int64, error)
}

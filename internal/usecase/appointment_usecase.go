package usecase

import (
	"context"
	"errors"
	"time"

	"sehat-sathi-server/internal/converter"
	"sehat-sathi-server/internal/delivery/dto"
	"sehat-sathi-server/internal/domain/entity"
	"sehat-sathi-server/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSlotNotAvailable            = errors.New("slot is not available")
	ErrAppointmentNotFound         = errors.New("appointment not found")
	ErrNotAppointmentOwner         = errors.New("appointment belongs to another patient")
	ErrAppointmentAlreadyCancelled = errors.New("appointment already cancelled")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, patientID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error)
	CancelAppointment(ctx context.Context, patientID, appointmentID uuid.UUID) error
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	location        *time.Location
	appointmentRepo repository.AppointmentRepository
	availability    AvailabilityUsecase
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	location *time.Location,
	appointmentRepo repository.AppointmentRepository,
	availability AvailabilityUsecase,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		location:        location,
		appointmentRepo: appointmentRepo,
		availability:    availability,
	}
}

func (u *appointmentUsecase) CreateAppointment(ctx context.Context, patientID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, err := time.ParseInLocation("2006-01-02", req.Date, u.location)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	// The resolver already accounts for the doctor's weekly rules, slots in
	// the past and slots taken by other patients, so offering-side checks
	// reduce to membership in its output.
	slots, err := u.availability.GetAvailableSlots(ctx, req.DoctorID, req.Date)
	if err != nil {
		return nil, err
	}

	available := false
	for _, slot := range slots.Slots {
		if slot == req.StartTime {
			available = true
			break
		}
	}
	if !available {
		return nil, ErrSlotNotAvailable
	}

	// Guard against a concurrent booking that landed between the resolver
	// read and this insert.
	existing, err := u.appointmentRepo.FindActiveByDoctorDateTime(u.db.WithContext(ctx), req.DoctorID, date, req.StartTime)
	if err != nil {
		u.log.Warnf("Failed to check existing appointment: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotNotAvailable
	}

	appointment := &entity.Appointment{
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		Date:      date,
		StartTime: req.StartTime,
		Symptoms:  req.Symptoms,
		Status:    entity.AppointmentStatusBooked,
	}

	if err := u.appointmentRepo.Create(u.db.WithContext(ctx), appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetMyAppointments(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	return converter.AppointmentsToListResponse(appointments), nil
}

func (u *appointmentUsecase) CancelAppointment(ctx context.Context, patientID, appointmentID uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if appointment.PatientID != patientID {
		return ErrNotAppointmentOwner
	}
	if appointment.IsCancelled() {
		return ErrAppointmentAlreadyCancelled
	}

	affected, err := u.appointmentRepo.Cancel(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentAlreadyCancelled
	}

	return nil
}

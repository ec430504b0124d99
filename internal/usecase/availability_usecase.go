package usecase

import (
	"context"
	"time"

	"sehat-sathi-server/internal/availability"
	"sehat-sathi-server/internal/delivery/dto"
	"sehat-sathi-server/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AvailabilityUsecase interface {
	GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.SlotListResponse, error)
}

type availabilityUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	location        *time.Location
	scheduleRepo    repository.WeeklyScheduleRepository
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorProfileRepository
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	location *time.Location,
	scheduleRepo repository.WeeklyScheduleRepository,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorProfileRepository,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:              db,
		log:             log,
		location:        location,
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
	}
}

func (u *availabilityUsecase) GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.SlotListResponse, error) {
	day, err := time.ParseInLocation("2006-01-02", date, u.location)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	schedules, err := u.scheduleRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find schedule: %+v", err)
		return nil, err
	}

	rules := make([]availability.Rule, 0, len(schedules))
	for _, s := range schedules {
		rules = append(rules, availability.Rule{
			Day:       s.Day,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Enabled:   s.Enabled,
		})
	}

	appointments, err := u.appointmentRepo.FindActiveByDoctorAndDate(u.db.WithContext(ctx), doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	booked := make([]time.Time, 0, len(appointments))
	for _, a := range appointments {
		at, err := time.ParseInLocation("15:04", a.StartTime, u.location)
		if err != nil {
			// A malformed stored time cannot collide with anything.
			continue
		}
		booked = append(booked, time.Date(day.Year(), day.Month(), day.Day(), at.Hour(), at.Minute(), 0, 0, u.location))
	}

	slots := availability.ResolveSlots(day, rules, booked, time.Now().In(u.location))
	if slots == nil {
		slots = []string{}
	}

	return &dto.SlotListResponse{
		DoctorID: doctorID,
		Date:     date,
		Slots:    slots,
		Total:    len(slots),
	}, nil
}

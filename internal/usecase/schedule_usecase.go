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
	ErrInvalidDay          = errors.New("invalid weekday name")
	ErrInvalidTimeFormat   = errors.New("invalid time format, use HH:MM")
	ErrInvalidTimeWindow   = errors.New("start time must be before end time")
	ErrDuplicateDayInRules = errors.New("duplicate weekday in schedule rules")
)

type ScheduleUsecase interface {
	UpsertSchedule(ctx context.Context, doctorID uuid.UUID, req *dto.UpsertScheduleRequest) (*dto.ScheduleResponse, error)
	GetSchedule(ctx context.Context, doctorID uuid.UUID) (*dto.ScheduleResponse, error)
}

type scheduleUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	scheduleRepo repository.WeeklyScheduleRepository
	doctorRepo   repository.DoctorProfileRepository
}

func NewScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	scheduleRepo repository.WeeklyScheduleRepository,
	doctorRepo repository.DoctorProfileRepository,
) ScheduleUsecase {
	return &scheduleUsecase{
		db:           db,
		log:          log,
		scheduleRepo: scheduleRepo,
		doctorRepo:   doctorRepo,
	}
}

func (u *scheduleUsecase) UpsertSchedule(ctx context.Context, doctorID uuid.UUID, req *dto.UpsertScheduleRequest) (*dto.ScheduleResponse, error) {
	seen := make(map[string]bool, len(req.Rules))
	for _, rule := range req.Rules {
		if !entity.IsWeekdayName(rule.Day) {
			return nil, ErrInvalidDay
		}
		if seen[rule.Day] {
			return nil, ErrDuplicateDayInRules
		}
		seen[rule.Day] = true

		start, err := time.Parse("15:04", rule.StartTime)
		if err != nil {
			return nil, ErrInvalidTimeFormat
		}
		end, err := time.Parse("15:04", rule.EndTime)
		if err != nil {
			return nil, ErrInvalidTimeFormat
		}
		// A disabled day keeps its window for later re-enabling; only
		// enabled windows must be well-formed intervals.
		if rule.Enabled && !start.Before(end) {
			return nil, ErrInvalidTimeWindow
		}
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	for _, rule := range req.Rules {
		schedule := &entity.WeeklySchedule{
			DoctorID:  doctorID,
			Day:       rule.Day,
			StartTime: rule.StartTime,
			EndTime:   rule.EndTime,
			Enabled:   rule.Enabled,
		}

		if err := u.scheduleRepo.Upsert(tx, schedule); err != nil {
			u.log.Warnf("Failed to upsert schedule rule: %+v", err)
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.GetSchedule(ctx, doctorID)
}

func (u *scheduleUsecase) GetSchedule(ctx context.Context, doctorID uuid.UUID) (*dto.ScheduleResponse, error) {
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

	return converter.ScheduleToResponse(doctorID, schedules), nil
}

package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"sehat-sathi-server/internal/converter"
	"sehat-sathi-server/internal/delivery/dto"
	"sehat-sathi-server/internal/domain/entity"
	"sehat-sathi-server/internal/domain/repository"
	"sehat-sathi-server/internal/scheduler"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrCallNotFound        = errors.New("call not found")
	ErrPatientNotFound     = errors.New("patient profile not found")
	ErrScheduledTimeNeeded = errors.New("scheduled_time is required for non-immediate calls")
	ErrInvalidTransition   = errors.New("invalid call status transition")
)

type CallUsecase interface {
	CreateCall(ctx context.Context, patientID uuid.UUID, req *dto.CreateCallRequest) (*dto.CallResponse, error)
	GetCall(ctx context.Context, id string) (*dto.CallResponse, error)
	GetUpcomingCalls(ctx context.Context, patientID uuid.UUID) (*dto.CallListResponse, error)
	UpdateCallStatus(ctx context.Context, id string, req *dto.UpdateCallStatusRequest) (*dto.CallResponse, error)
	CancelCall(ctx context.Context, id string) error
}

type callUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	linkBase      string
	callRepo      repository.CallRecordRepository
	patientRepo   repository.PatientProfileRepository
	doctorRepo    repository.DoctorProfileRepository
	callScheduler *scheduler.CallScheduler
}

func NewCallUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	linkBase string,
	callRepo repository.CallRecordRepository,
	patientRepo repository.PatientProfileRepository,
	doctorRepo repository.DoctorProfileRepository,
	callScheduler *scheduler.CallScheduler,
) CallUsecase {
	return &callUsecase{
		db:            db,
		log:           log,
		linkBase:      linkBase,
		callRepo:      callRepo,
		patientRepo:   patientRepo,
		doctorRepo:    doctorRepo,
		callScheduler: callScheduler,
	}
}

func (u *callUsecase) CreateCall(ctx context.Context, patientID uuid.UUID, req *dto.CreateCallRequest) (*dto.CallResponse, error) {
	if !req.IsImmediate && req.ScheduledTime == nil {
		return nil, ErrScheduledTimeNeeded
	}

	patient, err := u.patientRepo.FindByUserID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	id := generateCallID()

	call := &entity.CallRecord{
		ID:            id,
		PatientID:     patientID,
		DoctorID:      req.DoctorID,
		ScheduledTime: req.ScheduledTime,
		IsImmediate:   req.IsImmediate,
		Status:        entity.CallStatusPending,
		CallLink:      u.linkBase + id,
		PatientName:   patient.User.FullName,
		PatientPhone:  patient.PhoneNumber,
		Issue:         req.Issue,
	}

	if err := u.callRepo.Create(u.db.WithContext(ctx), call); err != nil {
		u.log.Warnf("Failed to create call record: %+v", err)
		return nil, err
	}

	// Arm the reminder only after the row is persisted; a timer for a call
	// that never made it to the database would notify about nothing.
	u.callScheduler.Schedule(call)
	u.callScheduler.PublishChange(ctx, patientID)

	return converter.CallToResponse(call), nil
}

func (u *callUsecase) GetCall(ctx context.Context, id string) (*dto.CallResponse, error) {
	call, err := u.callRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		// Point-lookup read failures degrade to absence.
		u.log.Warnf("Failed to find call: %+v", err)
		return nil, ErrCallNotFound
	}
	if call == nil {
		return nil, ErrCallNotFound
	}

	return converter.CallToResponse(call), nil
}

func (u *callUsecase) GetUpcomingCalls(ctx context.Context, patientID uuid.UUID) (*dto.CallListResponse, error) {
	calls, err := u.callRepo.FindPendingByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		// A degraded read surfaces as an empty list rather than an error;
		// the caller polls again on the next change event.
		u.log.Warnf("Failed to find upcoming calls: %+v", err)
		calls = nil
	}

	return converter.CallsToListResponse(calls), nil
}

func (u *callUsecase) UpdateCallStatus(ctx context.Context, id string, req *dto.UpdateCallStatusRequest) (*dto.CallResponse, error) {
	call, err := u.callRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find call: %+v", err)
		return nil, err
	}
	if call == nil {
		return nil, ErrCallNotFound
	}

	next := entity.CallStatus(req.Status)
	if !call.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	if err := u.callRepo.UpdateStatus(u.db.WithContext(ctx), id, next); err != nil {
		u.log.Warnf("Failed to update call status: %+v", err)
		return nil, err
	}

	// A call leaving pending no longer needs its reminder.
	if next != entity.CallStatusPending {
		u.callScheduler.Cancel(id)
	}

	call.Status = next
	u.callScheduler.PublishChange(ctx, call.PatientID)

	return converter.CallToResponse(call), nil
}

func (u *callUsecase) CancelCall(ctx context.Context, id string) error {
	// Cancelling an unknown or already-fired reminder is a no-op.
	u.callScheduler.Cancel(id)
	return nil
}

// generateCallID builds a unique call id from the creation instant plus a
// random suffix, e.g. "1756600000000-9f86d081". The id doubles as the join
// link path segment.
func generateCallID() string {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand failing means the process has bigger problems; fall
		// back to a time-only id rather than refusing the call.
		return fmt.Sprintf("%d", time.Now().UnixMilli())
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), hex.EncodeToString(suffix))
}

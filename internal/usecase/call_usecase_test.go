package usecase

import (
	"context"
	"regexp"
	"testing"
	"time"

	"sehat-sathi-server/internal/delivery/dto"
	"sehat-sathi-server/internal/domain/entity"
	"sehat-sathi-server/internal/notification"
	"sehat-sathi-server/internal/scheduler"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var callIDPattern = regexp.MustCompile(`^\d+-[0-9a-f]{8}$`)

func newCallFixture(t *testing.T, callRepo *callRepoStub) (CallUsecase, *scheduler.CallScheduler, uuid.UUID, uuid.UUID) {
	t.Helper()

	patientID := uuid.New()
	doctorID := uuid.New()

	patientRepo := &patientRepoStub{patients: map[uuid.UUID]*entity.PatientProfile{
		patientID: {
			UserID:      patientID,
			PhoneNumber: "+919812345678",
			User:        entity.User{ID: patientID, FullName: "Sunita Devi"},
		},
	}}
	doctorRepo := &doctorRepoStub{doctors: map[uuid.UUID]*entity.DoctorProfile{
		doctorID: {UserID: doctorID, RegistrationNumber: "MH-2019-44821"},
	}}

	sched := scheduler.NewCallScheduler(nil, testLogger(), callRepo, nil, notification.NewNoopNotifier(), 5*time.Minute)
	t.Cleanup(sched.Stop)

	uc := NewCallUsecase(testDB(), testLogger(), "/video-call/", callRepo, patientRepo, doctorRepo, sched)
	return uc, sched, patientID, doctorID
}

func TestCallUsecase_CreateScheduledCall(t *testing.T) {
	callRepo := newCallRepoStub()
	uc, sched, patientID, doctorID := newCallFixture(t, callRepo)

	scheduled := time.Now().Add(2 * time.Hour)
	resp, err := uc.CreateCall(context.Background(), patientID, &dto.CreateCallRequest{
		DoctorID:      doctorID,
		ScheduledTime: &scheduled,
		Issue:         "follow-up on blood pressure readings",
	})
	require.NoError(t, err)

	assert.Regexp(t, callIDPattern, resp.ID)
	assert.Equal(t, "/video-call/"+resp.ID, resp.CallLink)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "Sunita Devi", resp.PatientName)
	assert.Equal(t, "+919812345678", resp.PatientPhone)

	// The record was persisted and the reminder timer armed.
	require.Contains(t, callRepo.calls, resp.ID)
	assert.True(t, sched.HasTimer(resp.ID))

	// Reading the call back returns the same data.
	got, err := uc.GetCall(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, got.ID)
	assert.Equal(t, resp.CallLink, got.CallLink)
	assert.Equal(t, resp.PatientID, got.PatientID)
	assert.WithinDuration(t, scheduled, *got.ScheduledTime, time.Second)
}

func TestCallUsecase_CreateImmediateCall(t *testing.T) {
	callRepo := newCallRepoStub()
	uc, sched, patientID, doctorID := newCallFixture(t, callRepo)

	resp, err := uc.CreateCall(context.Background(), patientID, &dto.CreateCallRequest{
		DoctorID:    doctorID,
		IsImmediate: true,
	})
	require.NoError(t, err)

	assert.True(t, resp.IsImmediate)
	assert.False(t, sched.HasTimer(resp.ID), "immediate calls get no reminder")
}

func TestCallUsecase_ScheduledTimeRequired(t *testing.T) {
	uc, _, patientID, doctorID := newCallFixture(t, newCallRepoStub())

	_, err := uc.CreateCall(context.Background(), patientID, &dto.CreateCallRequest{DoctorID: doctorID})
	assert.ErrorIs(t, err, ErrScheduledTimeNeeded)
}

func TestCallUsecase_CreateRequiresKnownPatientAndDoctor(t *testing.T) {
	uc, _, patientID, doctorID := newCallFixture(t, newCallRepoStub())

	_, err := uc.CreateCall(context.Background(), uuid.New(), &dto.CreateCallRequest{
		DoctorID:    doctorID,
		IsImmediate: true,
	})
	assert.ErrorIs(t, err, ErrPatientNotFound)

	_, err = uc.CreateCall(context.Background(), patientID, &dto.CreateCallRequest{
		DoctorID:    uuid.New(),
		IsImmediate: true,
	})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestCallUsecase_GetCallNotFound(t *testing.T) {
	uc, _, _, _ := newCallFixture(t, newCallRepoStub())

	_, err := uc.GetCall(context.Background(), "1756600000000-deadbeef")
	assert.ErrorIs(t, err, ErrCallNotFound)
}

func TestCallUsecase_UpdateCallStatusTransitions(t *testing.T) {
	callRepo := newCallRepoStub()
	uc, sched, patientID, doctorID := newCallFixture(t, callRepo)

	scheduled := time.Now().Add(2 * time.Hour)
	created, err := uc.CreateCall(context.Background(), patientID, &dto.CreateCallRequest{
		DoctorID:      doctorID,
		ScheduledTime: &scheduled,
	})
	require.NoError(t, err)
	require.True(t, sched.HasTimer(created.ID))

	// pending -> completed skips active and is rejected.
	_, err = uc.UpdateCallStatus(context.Background(), created.ID, &dto.UpdateCallStatusRequest{Status: "completed"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// pending -> active is legal and drops the reminder.
	resp, err := uc.UpdateCallStatus(context.Background(), created.ID, &dto.UpdateCallStatusRequest{Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Status)
	assert.False(t, sched.HasTimer(created.ID))

	// active -> completed is legal; completed is terminal.
	_, err = uc.UpdateCallStatus(context.Background(), created.ID, &dto.UpdateCallStatusRequest{Status: "completed"})
	require.NoError(t, err)
	_, err = uc.UpdateCallStatus(context.Background(), created.ID, &dto.UpdateCallStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCallUsecase_UpdateStatusUnknownCall(t *testing.T) {
	uc, _, _, _ := newCallFixture(t, newCallRepoStub())

	_, err := uc.UpdateCallStatus(context.Background(), "1756600000000-deadbeef", &dto.UpdateCallStatusRequest{Status: "active"})
	assert.ErrorIs(t, err, ErrCallNotFound)
}

func TestCallUsecase_GetUpcomingCallsDegradesToEmpty(t *testing.T) {
	callRepo := newCallRepoStub()
	callRepo.findErr = assert.AnError
	uc, _, patientID, _ := newCallFixture(t, callRepo)

	resp, err := uc.GetUpcomingCalls(context.Background(), patientID)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Total)
	assert.NotNil(t, resp.Calls)
}

func TestCallUsecase_CancelCallIsIdempotent(t *testing.T) {
	callRepo := newCallRepoStub()
	uc, sched, patientID, doctorID := newCallFixture(t, callRepo)

	scheduled := time.Now().Add(2 * time.Hour)
	created, err := uc.CreateCall(context.Background(), patientID, &dto.CreateCallRequest{
		DoctorID:      doctorID,
		ScheduledTime: &scheduled,
	})
	require.NoError(t, err)

	require.NoError(t, uc.CancelCall(context.Background(), created.ID))
	assert.False(t, sched.HasTimer(created.ID))

	// Cancelling again, or cancelling an id that never existed, is a no-op.
	require.NoError(t, uc.CancelCall(context.Background(), created.ID))
	require.NoError(t, uc.CancelCall(context.Background(), "1756600000000-deadbeef"))
}

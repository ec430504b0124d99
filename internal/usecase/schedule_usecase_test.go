package usecase

import (
	"context"
	"testing"

	"sehat-sathi-server/internal/delivery/dto"
	"sehat-sathi-server/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleUsecase_UpsertRejectsUnknownDay(t *testing.T) {
	uc := NewScheduleUsecase(testDB(), testLogger(), &scheduleRepoStub{}, &doctorRepoStub{})

	_, err := uc.UpsertSchedule(context.Background(), uuid.New(), &dto.UpsertScheduleRequest{
		Rules: []dto.ScheduleRuleRequest{
			{Day: "Funday", StartTime: "09:00", EndTime: "17:00", Enabled: true},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidDay)
}

func TestScheduleUsecase_UpsertRejectsBadTimeFormat(t *testing.T) {
	uc := NewScheduleUsecase(testDB(), testLogger(), &scheduleRepoStub{}, &doctorRepoStub{})

	_, err := uc.UpsertSchedule(context.Background(), uuid.New(), &dto.UpsertScheduleRequest{
		Rules: []dto.ScheduleRuleRequest{
			{Day: "Monday", StartTime: "9am", EndTime: "17:00", Enabled: true},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestScheduleUsecase_UpsertRejectsInvertedWindow(t *testing.T) {
	uc := NewScheduleUsecase(testDB(), testLogger(), &scheduleRepoStub{}, &doctorRepoStub{})

	_, err := uc.UpsertSchedule(context.Background(), uuid.New(), &dto.UpsertScheduleRequest{
		Rules: []dto.ScheduleRuleRequest{
			{Day: "Monday", StartTime: "17:00", EndTime: "09:00", Enabled: true},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidTimeWindow)
}

func TestScheduleUsecase_DisabledDayMayKeepInvertedWindow(t *testing.T) {
	// Validation of the interval only applies to enabled days, so the
	// check must not fire here. The upsert itself fails later because the
	// stub db has no connection; the window error is what matters.
	uc := NewScheduleUsecase(testDB(), testLogger(), &scheduleRepoStub{}, &doctorRepoStub{})

	_, err := uc.UpsertSchedule(context.Background(), uuid.New(), &dto.UpsertScheduleRequest{
		Rules: []dto.ScheduleRuleRequest{
			{Day: "Monday", StartTime: "17:00", EndTime: "09:00", Enabled: false},
		},
	})
	assert.NotErrorIs(t, err, ErrInvalidTimeWindow)
}

func TestScheduleUsecase_UpsertRejectsDuplicateDay(t *testing.T) {
	uc := NewScheduleUsecase(testDB(), testLogger(), &scheduleRepoStub{}, &doctorRepoStub{})

	_, err := uc.UpsertSchedule(context.Background(), uuid.New(), &dto.UpsertScheduleRequest{
		Rules: []dto.ScheduleRuleRequest{
			{Day: "Monday", StartTime: "09:00", EndTime: "12:00", Enabled: true},
			{Day: "Monday", StartTime: "14:00", EndTime: "17:00", Enabled: true},
		},
	})
	assert.ErrorIs(t, err, ErrDuplicateDayInRules)
}

func TestScheduleUsecase_GetSchedule(t *testing.T) {
	doctorID := uuid.New()
	scheduleRepo := &scheduleRepoStub{schedules: []entity.WeeklySchedule{
		{DoctorID: doctorID, Day: "Monday", StartTime: "09:00", EndTime: "17:00", Enabled: true},
		{DoctorID: uuid.New(), Day: "Tuesday", StartTime: "09:00", EndTime: "17:00", Enabled: true},
	}}
	doctorRepo := &doctorRepoStub{doctors: map[uuid.UUID]*entity.DoctorProfile{
		doctorID: {UserID: doctorID},
	}}

	uc := NewScheduleUsecase(testDB(), testLogger(), scheduleRepo, doctorRepo)

	resp, err := uc.GetSchedule(context.Background(), doctorID)
	require.NoError(t, err)
	require.Len(t, resp.Rules, 1)
	assert.Equal(t, "Monday", resp.Rules[0].Day)
	assert.Equal(t, doctorID, resp.DoctorID)
}

func TestScheduleUsecase_GetScheduleUnknownDoctor(t *testing.T) {
	uc := NewScheduleUsecase(testDB(), testLogger(), &scheduleRepoStub{}, &doctorRepoStub{})

	_, err := uc.GetSchedule(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

package usecase

import (
	"context"
	"testing"
	"time"

	"sehat-sathi-server/internal/delivery/dto"
	"sehat-sathi-server/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentUsecase_CreateAppointment(t *testing.T) {
	patientID := uuid.New()
	doctorID := uuid.New()
	appointmentRepo := &appointmentRepoStub{}
	availability := &availabilityStub{slots: map[string][]string{
		"2030-01-02": {"09:00", "10:00", "11:00"},
	}}

	uc := NewAppointmentUsecase(testDB(), testLogger(), time.UTC, appointmentRepo, availability)

	resp, err := uc.CreateAppointment(context.Background(), patientID, &dto.CreateAppointmentRequest{
		DoctorID:  doctorID,
		Date:      "2030-01-02",
		StartTime: "10:00",
		Symptoms:  "fever and cough for three days",
	})
	require.NoError(t, err)
	assert.Equal(t, "booked", resp.Status)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, patientID, resp.PatientID)
	require.Len(t, appointmentRepo.created, 1)
}

func TestAppointmentUsecase_SlotNotOffered(t *testing.T) {
	availability := &availabilityStub{slots: map[string][]string{
		"2030-01-02": {"09:00"},
	}}
	uc := NewAppointmentUsecase(testDB(), testLogger(), time.UTC, &appointmentRepoStub{}, availability)

	_, err := uc.CreateAppointment(context.Background(), uuid.New(), &dto.CreateAppointmentRequest{
		DoctorID:  uuid.New(),
		Date:      "2030-01-02",
		StartTime: "10:00",
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestAppointmentUsecase_ConcurrentBookingDetected(t *testing.T) {
	doctorID := uuid.New()
	date, _ := time.Parse("2006-01-02", "2030-01-02")

	// The slot still shows as offered but another patient's row already
	// exists; the pre-insert check must reject the request.
	appointmentRepo := &appointmentRepoStub{appointments: []entity.Appointment{
		{ID: uuid.New(), PatientID: uuid.New(), DoctorID: doctorID, Date: date, StartTime: "10:00", Status: entity.AppointmentStatusBooked},
	}}
	availability := &availabilityStub{slots: map[string][]string{
		"2030-01-02": {"10:00"},
	}}

	uc := NewAppointmentUsecase(testDB(), testLogger(), time.UTC, appointmentRepo, availability)

	_, err := uc.CreateAppointment(context.Background(), uuid.New(), &dto.CreateAppointmentRequest{
		DoctorID:  doctorID,
		Date:      "2030-01-02",
		StartTime: "10:00",
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestAppointmentUsecase_InvalidDate(t *testing.T) {
	uc := NewAppointmentUsecase(testDB(), testLogger(), time.UTC, &appointmentRepoStub{}, &availabilityStub{})

	_, err := uc.CreateAppointment(context.Background(), uuid.New(), &dto.CreateAppointmentRequest{
		DoctorID:  uuid.New(),
		Date:      "January 2nd",
		StartTime: "10:00",
	})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestAppointmentUsecase_GetMyAppointments(t *testing.T) {
	patientID := uuid.New()
	date, _ := time.Parse("2006-01-02", "2030-01-02")
	appointmentRepo := &appointmentRepoStub{appointments: []entity.Appointment{
		{ID: uuid.New(), PatientID: patientID, DoctorID: uuid.New(), Date: date, StartTime: "09:00", Status: entity.AppointmentStatusBooked},
		{ID: uuid.New(), PatientID: uuid.New(), DoctorID: uuid.New(), Date: date, StartTime: "10:00", Status: entity.AppointmentStatusBooked},
	}}

	uc := NewAppointmentUsecase(testDB(), testLogger(), time.UTC, appointmentRepo, &availabilityStub{})

	resp, err := uc.GetMyAppointments(context.Background(), patientID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, patientID, resp.Appointments[0].PatientID)
}

func TestAppointmentUsecase_CancelAppointment(t *testing.T) {
	patientID := uuid.New()
	appointmentID := uuid.New()
	date, _ := time.Parse("2006-01-02", "2030-01-02")
	appointmentRepo := &appointmentRepoStub{appointments: []entity.Appointment{
		{ID: appointmentID, PatientID: patientID, DoctorID: uuid.New(), Date: date, StartTime: "09:00", Status: entity.AppointmentStatusBooked},
	}}

	uc := NewAppointmentUsecase(testDB(), testLogger(), time.UTC, appointmentRepo, &availabilityStub{})

	require.NoError(t, uc.CancelAppointment(context.Background(), patientID, appointmentID))
	assert.Equal(t, entity.AppointmentStatusCancelled, appointmentRepo.appointments[0].Status)

	// Second cancel of the same appointment is rejected, not repeated.
	err := uc.CancelAppointment(context.Background(), patientID, appointmentID)
	assert.ErrorIs(t, err, ErrAppointmentAlreadyCancelled)
}

func TestAppointmentUsecase_CancelRequiresOwnership(t *testing.T) {
	appointmentID := uuid.New()
	date, _ := time.Parse("2006-01-02", "2030-01-02")
	appointmentRepo := &appointmentRepoStub{appointments: []entity.Appointment{
		{ID: appointmentID, PatientID: uuid.New(), DoctorID: uuid.New(), Date: date, StartTime: "09:00", Status: entity.AppointmentStatusBooked},
	}}

	uc := NewAppointmentUsecase(testDB(), testLogger(), time.UTC, appointmentRepo, &availabilityStub{})

	err := uc.CancelAppointment(context.Background(), uuid.New(), appointmentID)
	assert.ErrorIs(t, err, ErrNotAppointmentOwner)
}

func TestAppointmentUsecase_CancelUnknownAppointment(t *testing.T) {
	uc := NewAppointmentUsecase(testDB(), testLogger(), time.UTC, &appointmentRepoStub{}, &availabilityStub{})

	err := uc.CancelAppointment(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

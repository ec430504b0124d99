package usecase

import (
	"context"
	"io"
	"time"

	"sehat-sathi-server/internal/delivery/dto"
	"sehat-sathi-server/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// testDB returns a detached gorm handle. The repository stubs never touch it;
// it only has to survive WithContext calls inside the usecases.
func testDB() *gorm.DB {
	db := &gorm.DB{Config: &gorm.Config{}}
	db.Statement = &gorm.Statement{DB: db, Context: context.Background()}
	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type userRepoStub struct {
	users map[uuid.UUID]*entity.User
	err   error
}

func (s *userRepoStub) Create(db *gorm.DB, user *entity.User) error {
	if s.err != nil {
		return s.err
	}
	user.ID = uuid.New()
	if s.users == nil {
		s.users = make(map[uuid.UUID]*entity.User)
	}
	s.users[user.ID] = user
	return nil
}

func (s *userRepoStub) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *userRepoStub) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users[id], nil
}

func (s *userRepoStub) Update(db *gorm.DB, user *entity.User) error { return s.err }

type roleRepoStub struct{}

func (s *roleRepoStub) FindByID(db *gorm.DB, id int) (*entity.Role, error) {
	return &entity.Role{ID: id}, nil
}

type doctorRepoStub struct {
	doctors map[uuid.UUID]*entity.DoctorProfile
	err     error
}

func (s *doctorRepoStub) Create(db *gorm.DB, profile *entity.DoctorProfile) error { return s.err }

func (s *doctorRepoStub) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.doctors[userID], nil
}

func (s *doctorRepoStub) FindAllActive(db *gorm.DB) ([]entity.DoctorProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]entity.DoctorProfile, 0, len(s.doctors))
	for _, d := range s.doctors {
		out = append(out, *d)
	}
	return out, nil
}

func (s *doctorRepoStub) Update(db *gorm.DB, profile *entity.DoctorProfile) error { return s.err }

type patientRepoStub struct {
	patients map[uuid.UUID]*entity.PatientProfile
	err      error
}

func (s *patientRepoStub) Create(db *gorm.DB, profile *entity.PatientProfile) error { return s.err }

func (s *patientRepoStub) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.patients[userID], nil
}

func (s *patientRepoStub) Update(db *gorm.DB, profile *entity.PatientProfile) error { return s.err }

type scheduleRepoStub struct {
	schedules []entity.WeeklySchedule
	err       error
}

func (s *scheduleRepoStub) Upsert(db *gorm.DB, schedule *entity.WeeklySchedule) error { return s.err }

func (s *scheduleRepoStub) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.WeeklySchedule, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]entity.WeeklySchedule, 0, len(s.schedules))
	for _, rule := range s.schedules {
		if rule.DoctorID == doctorID {
			out = append(out, rule)
		}
	}
	return out, nil
}

type appointmentRepoStub struct {
	appointments []entity.Appointment
	created      []*entity.Appointment
	cancelErr    error
	err          error
}

func (s *appointmentRepoStub) Create(db *gorm.DB, appointment *entity.Appointment) error {
	if s.err != nil {
		return s.err
	}
	appointment.ID = uuid.New()
	s.created = append(s.created, appointment)
	s.appointments = append(s.appointments, *appointment)
	return nil
}

func (s *appointmentRepoStub) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.appointments {
		if s.appointments[i].ID == id {
			return &s.appointments[i], nil
		}
	}
	return nil, nil
}

func (s *appointmentRepoStub) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []entity.Appointment
	for _, a := range s.appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *appointmentRepoStub) FindActiveByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []entity.Appointment
	for _, a := range s.appointments {
		if a.DoctorID == doctorID && a.Date.Format("2006-01-02") == date.Format("2006-01-02") && a.Status != entity.AppointmentStatusCancelled {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *appointmentRepoStub) FindActiveByDoctorDateTime(db *gorm.DB, doctorID uuid.UUID, date time.Time, startTime string) (*entity.Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.appointments {
		a := &s.appointments[i]
		if a.DoctorID == doctorID && a.Date.Format("2006-01-02") == date.Format("2006-01-02") && a.StartTime == startTime && a.Status != entity.AppointmentStatusCancelled {
			return a, nil
		}
	}
	return nil, nil
}

func (s *appointmentRepoStub) Cancel(db *gorm.DB, id uuid.UUID) (int64, error) {
	if s.cancelErr != nil {
		return 0, s.cancelErr
	}
	for i := range s.appointments {
		if s.appointments[i].ID == id && s.appointments[i].Status != entity.AppointmentStatusCancelled {
			s.appointments[i].Status = entity.AppointmentStatusCancelled
			return 1, nil
		}
	}
	return 0, nil
}

type callRepoStub struct {
	calls     map[string]*entity.CallRecord
	createErr error
	findErr   error
	updateErr error
}

func newCallRepoStub() *callRepoStub {
	return &callRepoStub{calls: make(map[string]*entity.CallRecord)}
}

func (s *callRepoStub) Create(db *gorm.DB, call *entity.CallRecord) error {
	if s.createErr != nil {
		return s.createErr
	}
	clone := *call
	s.calls[call.ID] = &clone
	return nil
}

func (s *callRepoStub) FindByID(db *gorm.DB, id string) (*entity.CallRecord, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.calls[id], nil
}

func (s *callRepoStub) FindPendingByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.CallRecord, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	var out []entity.CallRecord
	for _, c := range s.calls {
		if c.PatientID == patientID && c.Status == entity.CallStatusPending {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *callRepoStub) FindPendingScheduled(db *gorm.DB) ([]entity.CallRecord, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	var out []entity.CallRecord
	for _, c := range s.calls {
		if c.Status == entity.CallStatusPending && !c.IsImmediate && c.ScheduledTime != nil {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *callRepoStub) UpdateStatus(db *gorm.DB, id string, status entity.CallStatus) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	if c, ok := s.calls[id]; ok {
		c.Status = status
	}
	return nil
}

type availabilityStub struct {
	slots map[string][]string
	err   error
}

func (s *availabilityStub) GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.SlotListResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	slots := s.slots[date]
	if slots == nil {
		slots = []string{}
	}
	return &dto.SlotListResponse{DoctorID: doctorID, Date: date, Slots: slots, Total: len(slots)}, nil
}

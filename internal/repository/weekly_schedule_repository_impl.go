package repository

import (
	"sehat-sathi-server/internal/domain/entity"
	domainRepo "sehat-sathi-server/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type weeklyScheduleRepository struct{}

func NewWeeklyScheduleRepository() domainRepo.WeeklyScheduleRepository {
	return &weeklyScheduleRepository{}
}

func (r *weeklyScheduleRepository) Upsert(db *gorm.DB, schedule *entity.WeeklySchedule) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "doctor_id"}, {Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{"start_time", "end_time", "enabled", "updated_at"}),
	}).Create(schedule).Error
}

func (r *weeklyScheduleRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.WeeklySchedule, error) {
	var schedules []entity.WeeklySchedule
	err := db.Where("doctor_id = ?", doctorID).Order("id ASC").Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

package repository

import (
	"errors"

	"sehat-sathi-server/internal/domain/entity"
	domainRepo "sehat-sathi-server/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type callRecordRepository struct{}

func NewCallRecordRepository() domainRepo.CallRecordRepository {
	return &callRecordRepository{}
}

func (r *callRecordRepository) Create(db *gorm.DB, call *entity.CallRecord) error {
	return db.Create(call).Error
}

func (r *callRecordRepository) FindByID(db *gorm.DB, id string) (*entity.CallRecord, error) {
	var call entity.CallRecord
	err := db.Where("id = ?", id).First(&call).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &call, nil
}

func (r *callRecordRepository) FindPendingByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.CallRecord, error) {
	var calls []entity.CallRecord
	err := db.Where("patient_id = ? AND status = ?", patientID, entity.CallStatusPending).
		Order("scheduled_time ASC").
		Find(&calls).Error
	if err != nil {
		return nil, err
	}
	return calls, nil
}

func (r *callRecordRepository) FindPendingScheduled(db *gorm.DB) ([]entity.CallRecord, error) {
	var calls []entity.CallRecord
	err := db.Where("status = ? AND is_immediate = ? AND scheduled_time IS NOT NULL",
		entity.CallStatusPending, false).
		Order("scheduled_time ASC").
		Find(&calls).Error
	if err != nil {
		return nil, err
	}
	return calls, nil
}

func (r *callRecordRepository) UpdateStatus(db *gorm.DB, id string, status entity.CallStatus) error {
	return db.Model(&entity.CallRecord{}).Where("id = ?", id).Update("status", status).Error
}

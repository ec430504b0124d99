package converter

import (
	"github.com/google/uuid"

	"sehat-sathi-server/internal/delivery/dto"
	"sehat-sathi-server/internal/domain/entity"
)

// ScheduleToResponse converts a doctor's schedule rows to ScheduleResponse
func ScheduleToResponse(doctorID uuid.UUID, schedules []entity.WeeklySchedule) *dto.ScheduleResponse {
	rules := make([]dto.ScheduleRuleResponse, 0, len(schedules))
	for i := range schedules {
		rules = append(rules, dto.ScheduleRuleResponse{
			Day:       schedules[i].Day,
			StartTime: schedules[i].StartTime,
			EndTime:   schedules[i].EndTime,
			Enabled:   schedules[i].Enabled,
			UpdatedAt: schedules[i].UpdatedAt,
		})
	}

	return &dto.ScheduleResponse{
		DoctorID: doctorID,
		Rules:    rules,
	}
}

package converter

import (
	"sehat-sathi-server/internal/delivery/dto"
	"sehat-sathi-server/internal/domain/entity"
)

// CallToResponse converts a CallRecord entity to CallResponse DTO
func CallToResponse(call *entity.CallRecord) *dto.CallResponse {
	if call == nil {
		return nil
	}

	return &dto.CallResponse{
		ID:            call.ID,
		PatientID:     call.PatientID,
		DoctorID:      call.DoctorID,
		ScheduledTime: call.ScheduledTime,
		IsImmediate:   call.IsImmediate,
		Status:        string(call.Status),
		CallLink:      call.CallLink,
		PatientName:   call.PatientName,
		PatientPhone:  call.PatientPhone,
		Issue:         call.Issue,
		CreatedAt:     call.CreatedAt,
		UpdatedAt:     call.UpdatedAt,
	}
}

// CallsToListResponse converts a slice of CallRecord entities to CallListResponse
func CallsToListResponse(calls []entity.CallRecord) *dto.CallListResponse {
	responses := make([]dto.CallResponse, 0, len(calls))
	for i := range calls {
		responses = append(responses, *CallToResponse(&calls[i]))
	}

	return &dto.CallListResponse{
		Calls: responses,
		Total: len(responses),
	}
}

package converter

import (
	"sehat-sathi-server/internal/delivery/dto"
	"sehat-sathi-server/internal/domain/entity"
)

// DoctorToResponse converts a DoctorProfile entity (with User loaded) to
// a flat DoctorResponse DTO.
func DoctorToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:                 profile.UserID,
		Email:              profile.User.Email,
		FullName:           profile.User.FullName,
		RegistrationNumber: profile.RegistrationNumber,
		Specialization:     profile.Specialization,
		Languages:          profile.Languages,
		Biography:          profile.Biography,
		IsActive:           profile.User.IsActive,
	}
}

// DoctorsToListResponse converts a slice of DoctorProfile entities to DoctorListResponse
func DoctorsToListResponse(profiles []entity.DoctorProfile) *dto.DoctorListResponse {
	doctors := make([]dto.DoctorResponse, 0, len(profiles))
	for i := range profiles {
		doctors = append(doctors, *DoctorToResponse(&profiles[i]))
	}

	return &dto.DoctorListResponse{
		Doctors: doctors,
		Total:   len(doctors),
	}
}

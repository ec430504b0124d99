package converter

import (
	"sehat-sathi-server/internal/delivery/dto"
	"sehat-sathi-server/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO.
// Includes DoctorProfile and PatientProfile if they are loaded.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role.RoleName,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if user.DoctorProfile != nil {
		response.DoctorProfile = &dto.DoctorProfileResponse{
			RegistrationNumber: user.DoctorProfile.RegistrationNumber,
			Specialization:     user.DoctorProfile.Specialization,
			Languages:          user.DoctorProfile.Languages,
			Biography:          user.DoctorProfile.Biography,
		}
	}

	if user.PatientProfile != nil {
		response.PatientProfile = &dto.PatientProfileResponse{
			UserID:      user.PatientProfile.UserID,
			PhoneNumber: user.PatientProfile.PhoneNumber,
			DateOfBirth: user.PatientProfile.DateOfBirth.Format("2006-01-02"),
			Gender:      user.PatientProfile.Gender,
			Village:     user.PatientProfile.Village,
			District:    user.PatientProfile.District,
			Language:    user.PatientProfile.Language,
		}
	}

	return response
}

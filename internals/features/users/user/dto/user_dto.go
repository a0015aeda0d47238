package dto

import (
	userModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/users/user/model"
)

type UpdateProfileRequest struct {
	UserName string `json:"user_name" validate:"required,min=3,max=120"`
	Email    string `json:"email" validate:"required,email"`

	// Hanya dibaca untuk instructor
	Expertise          *string `json:"expertise" validate:"omitempty,max=100"`
	Institution        *string `json:"institution" validate:"omitempty,max=150"`
	TeachingExperience *int    `json:"teaching_experience" validate:"omitempty,min=0,max=80"`
	CertificateType    *string `json:"certificate_type" validate:"omitempty,oneof=default pdf image link"`
	CertificateData    *string `json:"certificate_data" validate:"omitempty,max=500"`
}

type ProfileResponse struct {
	UserID   uint   `json:"user_id"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`

	Expertise          *string `json:"expertise,omitempty"`
	Institution        *string `json:"institution,omitempty"`
	TeachingExperience *int    `json:"teaching_experience,omitempty"`
	CertificateType    string  `json:"certificate_type,omitempty"`
	CertificateData    *string `json:"certificate_data,omitempty"`
	IsVerified         bool    `json:"is_verified"`
}

func ToProfileResponse(u *userModel.UserModel) ProfileResponse {
	return ProfileResponse{
		UserID:             u.UserID,
		UserName:           u.UserName,
		Email:              u.UserEmail,
		Role:               u.UserRole,
		Expertise:          u.UserExpertise,
		Institution:        u.UserInstitution,
		TeachingExperience: u.UserTeachingExperience,
		CertificateType:    u.UserCertificateType,
		CertificateData:    u.UserCertificateData,
		IsVerified:         u.IsVerified(),
	}
}

package dto

import (
	"github.com/google/uuid"

	"github.com/campus-wellbeing/counsel-api/internal/models"
)

type UserView struct {
	ID                uuid.UUID `json:"id"`
	Email             string    `json:"email"`
	Name              string    `json:"name"`
	Role              string    `json:"role"`
	IsActive          bool      `json:"is_active"`
	IsOnboarded       bool      `json:"is_onboarded"`
	Department        string    `json:"department,omitempty"`
	Year              string    `json:"year,omitempty"`
	Specialization    string    `json:"specialization,omitempty"`
	AnonymousUsername *string   `json:"anonymous_username,omitempty"`
}

func NewUserView(u *models.User) UserView {
	return UserView{
		ID:                u.ID,
		Email:             u.Email,
		Name:              u.Name,
		Role:              u.Role,
		IsActive:          u.IsActive,
		IsOnboarded:       u.IsOnboarded,
		Department:        u.Department,
		Year:              u.Year,
		Specialization:    u.Specialization,
		AnonymousUsername: u.AnonymousUsername,
	}
}

// CounsellorEntry is a row of the public counsellor directory.
type CounsellorEntry struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
	IsActive       bool      `json:"is_active"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
}

// QRPayload is encoded into the student's check-in QR code by the client.
type QRPayload struct {
	StudentID uuid.UUID `json:"studentId"`
	Username  string    `json:"username"`
	Secret    string    `json:"secret"`
}

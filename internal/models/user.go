package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleStudent    = "student"
	RoleCounsellor = "counsellor"
	RoleManagement = "management"
)

type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Name         string `gorm:"size:100" json:"name"`
	Role         string `gorm:"size:20;not null" json:"role"`

	// IsActive mirrors "has an open session" for counsellors. It is
	// recomputed from the sessions table, never written directly.
	IsActive    bool `gorm:"default:false" json:"is_active"`
	IsOnboarded bool `gorm:"default:false" json:"is_onboarded"`

	Department        string  `gorm:"size:100" json:"department,omitempty"`
	Year              string  `gorm:"size:20" json:"year,omitempty"`
	Specialization    string  `gorm:"size:100" json:"specialization,omitempty"`
	AnonymousUsername *string `gorm:"size:50" json:"anonymous_username,omitempty"`
	QRSecret          string  `gorm:"size:64" json:"-"`
	AvatarKey         string  `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

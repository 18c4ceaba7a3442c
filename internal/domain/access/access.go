package access

import (
	"github.com/google/uuid"

	"github.com/campus-wellbeing/counsel-api/internal/models"
)

type Role string

const (
	RoleStudent    Role = models.RoleStudent
	RoleCounsellor Role = models.RoleCounsellor
	RoleManagement Role = models.RoleManagement
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleCounsellor, RoleManagement:
		return true
	}
	return false
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// Scope restricts a listing to the rows an actor may see. A nil field
// means no restriction on that column.
type Scope struct {
	StudentID    *uuid.UUID
	CounsellorID *uuid.UUID
}

// ScopeFor derives the listing scope of an actor. Unknown roles get a
// scope that matches nothing.
func ScopeFor(a Actor) Scope {
	id := a.ID
	switch a.Role {
	case RoleStudent:
		return Scope{StudentID: &id}
	case RoleCounsellor:
		return Scope{CounsellorID: &id}
	case RoleManagement:
		return Scope{}
	}
	nobody := uuid.Nil
	return Scope{StudentID: &nobody, CounsellorID: &nobody}
}

// Participates reports whether the actor may act on a record linking
// studentID and counsellorID.
func (a Actor) Participates(studentID, counsellorID uuid.UUID) bool {
	switch a.Role {
	case RoleManagement:
		return true
	case RoleStudent:
		return a.ID == studentID
	case RoleCounsellor:
		return a.ID == counsellorID
	}
	return false
}

func (s Scope) Matches(studentID, counsellorID uuid.UUID) bool {
	if s.StudentID != nil && *s.StudentID != studentID {
		return false
	}
	if s.CounsellorID != nil && *s.CounsellorID != counsellorID {
		return false
	}
	return true
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campus-wellbeing/counsel-api/internal/domain/access"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

// lockUser takes a row lock on the user, held until the surrounding
// transaction ends.
func lockUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*models.User, error) {
	var u models.User
	if err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", userID).
		First(&u).Error; err != nil {
		return nil, httperr.FromStore(err)
	}
	return &u, nil
}

func getUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*models.User, error) {
	var u models.User
	if err := db.WithContext(ctx).First(&u, "id = ?", userID).Error; err != nil {
		return nil, httperr.FromStore(err)
	}
	return &u, nil
}

func lockAppointment(ctx context.Context, db *gorm.DB, id uuid.UUID) (*models.Appointment, error) {
	var ap models.Appointment
	if err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, httperr.FromStore(err)
	}
	return &ap, nil
}

func saveAppointment(ctx context.Context, db *gorm.DB, ap *models.Appointment) error {
	return httperr.FromStore(db.WithContext(ctx).Save(ap).Error)
}

// scoped narrows q to the rows visible under scope.
func scoped(q *gorm.DB, scope access.Scope) *gorm.DB {
	if scope.StudentID != nil {
		q = q.Where("student_id = ?", *scope.StudentID)
	}
	if scope.CounsellorID != nil {
		q = q.Where("counsellor_id = ?", *scope.CounsellorID)
	}
	return q
}

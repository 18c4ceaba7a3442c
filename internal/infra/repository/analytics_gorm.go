package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/campus-wellbeing/counsel-api/internal/domain/analytics"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

// dimensionColumns whitelists the users columns analytics may group by.
var dimensionColumns = map[domain.Dimension]string{
	domain.ByDepartment: "u.department",
	domain.ByYear:       "u.year",
}

type AnalyticsGormRepository struct {
	db *gorm.DB
}

func NewAnalyticsGormRepository(db *gorm.DB) *AnalyticsGormRepository {
	return &AnalyticsGormRepository{db: db}
}

func (r *AnalyticsGormRepository) SeverityByStudent(
	ctx context.Context,
	dim domain.Dimension,
) ([]domain.SeverityRow, error) {

	col, ok := dimensionColumns[dim]
	if !ok {
		return nil, httperr.Validation("invalid_request")
	}

	var rows []domain.SeverityRow
	query := fmt.Sprintf(`
		SELECT COALESCE(%s, '') AS key, s.severity AS severity, COUNT(*) AS count
		FROM sessions s
		JOIN users u ON u.id = s.student_id
		GROUP BY 1, 2`, col)

	if err := r.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, httperr.FromStore(err)
	}
	return rows, nil
}

func (r *AnalyticsGormRepository) SeverityTotals(ctx context.Context) ([]domain.SeverityRow, error) {
	var rows []domain.SeverityRow
	if err := r.db.WithContext(ctx).
		Model(&models.Session{}).
		Select("severity, COUNT(*) AS count").
		Group("severity").
		Scan(&rows).Error; err != nil {
		return nil, httperr.FromStore(err)
	}
	return rows, nil
}

func (r *AnalyticsGormRepository) SessionsPerMonth(ctx context.Context) ([]domain.MonthRow, error) {
	var rows []domain.MonthRow
	if err := r.db.WithContext(ctx).
		Model(&models.Session{}).
		Select("to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM') AS month, COUNT(*) AS count").
		Group("1").
		Order("1").
		Scan(&rows).Error; err != nil {
		return nil, httperr.FromStore(err)
	}
	return rows, nil
}

func (r *AnalyticsGormRepository) Overview(ctx context.Context) (*domain.Overview, error) {
	var ov domain.Overview
	if err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM sessions) AS total_sessions,
			(SELECT COUNT(*) FROM users WHERE role = ?) AS total_students,
			(SELECT COUNT(*) FROM users WHERE role = ?) AS total_counsellors,
			(SELECT COUNT(DISTINCT counsellor_id) FROM sessions WHERE end_time IS NULL) AS active_counsellors`,
		models.RoleStudent, models.RoleCounsellor,
	).Scan(&ov).Error; err != nil {
		return nil, httperr.FromStore(err)
	}
	return &ov, nil
}

var _ domain.Repository = (*AnalyticsGormRepository)(nil)

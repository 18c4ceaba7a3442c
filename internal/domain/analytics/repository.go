package analytics

import "context"

// Dimension is a student attribute sessions can be grouped by.
type Dimension string

const (
	ByDepartment Dimension = "department"
	ByYear       Dimension = "year"
)

func (d Dimension) Valid() bool {
	return d == ByDepartment || d == ByYear
}

// SeverityRow counts sessions sharing a group key and severity. Key is
// empty for ungrouped totals and for students with no value set.
type SeverityRow struct {
	Key      string
	Severity *string
	Count    int64
}

type MonthRow struct {
	Month string
	Count int64
}

type Overview struct {
	TotalSessions     int64 `json:"totalSessions"`
	TotalStudents     int64 `json:"totalStudents"`
	TotalCounsellors  int64 `json:"totalCounsellors"`
	ActiveCounsellors int64 `json:"activeCounsellors"`
}

type Repository interface {
	SeverityByStudent(
		ctx context.Context,
		dim Dimension,
	) ([]SeverityRow, error)

	SeverityTotals(ctx context.Context) ([]SeverityRow, error)

	// SessionsPerMonth counts sessions by UTC creation month, "YYYY-MM".
	SessionsPerMonth(ctx context.Context) ([]MonthRow, error)

	Overview(ctx context.Context) (*Overview, error)
}

package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/campus-wellbeing/counsel-api/internal/models"
)

type CounsellorRef struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
}

// StudentRef never carries the student's real name or email.
type StudentRef struct {
	ID                uuid.UUID `json:"id"`
	AnonymousUsername *string   `json:"anonymous_username"`
}

type SlotRef struct {
	ID        uuid.UUID `json:"id"`
	DayOfWeek int       `json:"day_of_week"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
}

type AppointmentView struct {
	ID              uuid.UUID      `json:"id"`
	StudentID       uuid.UUID      `json:"student_id"`
	CounsellorID    uuid.UUID      `json:"counsellor_id"`
	TimeSlotID      *uuid.UUID     `json:"time_slot_id"`
	AppointmentDate time.Time      `json:"appointment_date"`
	Status          string         `json:"status"`
	CancelledAt     *time.Time     `json:"cancelled_at"`
	CompletedAt     *time.Time     `json:"completed_at"`
	CreatedAt       time.Time      `json:"created_at"`
	Counsellor      *CounsellorRef `json:"counsellor,omitempty"`
	Student         *StudentRef    `json:"student,omitempty"`
	TimeSlot        *SlotRef       `json:"time_slot,omitempty"`
}

type SessionView struct {
	ID            uuid.UUID      `json:"id"`
	StudentID     uuid.UUID      `json:"student_id"`
	CounsellorID  uuid.UUID      `json:"counsellor_id"`
	AppointmentID *uuid.UUID     `json:"appointment_id"`
	StartTime     time.Time      `json:"start_time"`
	EndTime       *time.Time     `json:"end_time"`
	QRScanInTime  *time.Time     `json:"qr_scan_in_time"`
	QRScanOutTime *time.Time     `json:"qr_scan_out_time"`
	Notes         string         `json:"notes"`
	Severity      *string        `json:"severity"`
	CreatedAt     time.Time      `json:"created_at"`
	Counsellor    *CounsellorRef `json:"counsellor,omitempty"`
	Student       *StudentRef    `json:"student,omitempty"`
}

func counsellorRef(u *models.User) *CounsellorRef {
	if u == nil {
		return nil
	}
	return &CounsellorRef{ID: u.ID, Name: u.Name, Specialization: u.Specialization}
}

func studentRef(u *models.User) *StudentRef {
	if u == nil {
		return nil
	}
	return &StudentRef{ID: u.ID, AnonymousUsername: u.AnonymousUsername}
}

func NewAppointmentView(ap *models.Appointment) AppointmentView {
	v := AppointmentView{
		ID:              ap.ID,
		StudentID:       ap.StudentID,
		CounsellorID:    ap.CounsellorID,
		TimeSlotID:      ap.TimeSlotID,
		AppointmentDate: ap.AppointmentDate,
		Status:          ap.Status,
		CancelledAt:     ap.CancelledAt,
		CompletedAt:     ap.CompletedAt,
		CreatedAt:       ap.CreatedAt,
		Counsellor:      counsellorRef(ap.Counsellor),
		Student:         studentRef(ap.Student),
	}
	if ap.TimeSlot != nil {
		v.TimeSlot = &SlotRef{
			ID:        ap.TimeSlot.ID,
			DayOfWeek: ap.TimeSlot.DayOfWeek,
			StartTime: ap.TimeSlot.StartTime,
			EndTime:   ap.TimeSlot.EndTime,
		}
	}
	return v
}

func NewAppointmentViews(aps []models.Appointment) []AppointmentView {
	out := make([]AppointmentView, 0, len(aps))
	for i := range aps {
		out = append(out, NewAppointmentView(&aps[i]))
	}
	return out
}

func NewSessionView(s *models.Session) SessionView {
	return SessionView{
		ID:            s.ID,
		StudentID:     s.StudentID,
		CounsellorID:  s.CounsellorID,
		AppointmentID: s.AppointmentID,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		QRScanInTime:  s.QRScanInTime,
		QRScanOutTime: s.QRScanOutTime,
		Notes:         s.Notes,
		Severity:      s.Severity,
		CreatedAt:     s.CreatedAt,
		Counsellor:    counsellorRef(s.Counsellor),
		Student:       studentRef(s.Student),
	}
}

func NewSessionViews(ss []models.Session) []SessionView {
	out := make([]SessionView, 0, len(ss))
	for i := range ss {
		out = append(out, NewSessionView(&ss[i]))
	}
	return out
}

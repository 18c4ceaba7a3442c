package session

import (
	"strings"
	"time"

	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
)

// ParseSeverity returns nil for an empty value. Anything outside the three
// known levels is rejected.
func ParseSeverity(raw string) (*string, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	switch Severity(raw) {
	case "":
		return nil, nil
	case SeverityLow, SeverityModerate, SeverityHigh:
		return &raw, nil
	}
	return nil, httperr.Validation("invalid_severity")
}

func IsOpen(s *models.Session) bool {
	return s.EndTime == nil
}

// Open builds a fresh session started at now.
func Open(s *models.Session, now time.Time) {
	s.StartTime = now
	s.QRScanInTime = &now
	s.EndTime = nil
	s.QRScanOutTime = nil
}

// Close ends an open session. Closed sessions are terminal.
func Close(s *models.Session, now time.Time, notes string, severity *string) error {
	if !IsOpen(s) {
		return httperr.Conflict("session_already_closed")
	}

	s.EndTime = &now
	s.QRScanOutTime = &now
	s.Notes = notes
	s.Severity = severity
	return nil
}

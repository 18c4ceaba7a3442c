package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HTTPError struct {
	Success bool   `json:"success"`
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

var messages = map[string]string{
	"invalid_request":           "Invalid request data.",
	"invalid_id":                "Invalid identifier.",
	"invalid_day_of_week":       "Day of week must be between 0 and 6.",
	"invalid_time":              "Times must be formatted as HH:MM.",
	"invalid_time_range":        "Start time must be before end time.",
	"slot_already_exists":       "Time slot already exists.",
	"slot_not_found":            "Time slot not found.",
	"invalid_slot":              "Time slot is not valid for this counsellor.",
	"invalid_date":              "Invalid appointment date.",
	"date_slot_mismatch":        "Appointment date does not fall on the slot's weekday.",
	"appointment_in_past":       "Appointment date is in the past.",
	"active_appointment_exists": "You already have a scheduled appointment.",
	"slot_taken":                "This slot is already booked for that date.",
	"appointment_not_found":     "Appointment not found.",
	"invalid_state":             "Operation not allowed in the current state.",
	"session_not_found":         "Session not found.",
	"session_already_open":      "You already have an open session.",
	"session_already_closed":    "Session has already ended.",
	"invalid_student":           "Student not found.",
	"invalid_appointment":       "Appointment cannot be linked to this session.",
	"invalid_severity":          "Severity must be low, moderate or high.",
	"email_already_exists":      "Email is already registered.",
	"invalid_email_domain":      "Email domain does not look valid.",
	"invalid_credentials":       "Invalid email or password.",
	"already_onboarded":         "User already onboarded.",
	"journal_not_found":         "Journal not found.",
	"invalid_mood":              "Mood level must be between 1 and 5.",
	"counsellor_not_found":      "Counsellor not found.",
	"invalid_image":             "Image must be a JPEG, PNG or WebP up to 5MB.",
	"storage_unavailable":       "File storage is not configured.",
	"not_authorized":            "Not authorized.",
}

var kindStatus = map[Kind]int{
	KindValidation:   http.StatusBadRequest,
	KindConflict:     http.StatusBadRequest,
	KindNotFound:     http.StatusNotFound,
	KindForbidden:    http.StatusForbidden,
	KindUnauthorized: http.StatusUnauthorized,
	KindUnavailable:  http.StatusServiceUnavailable,
	KindStore:        http.StatusInternalServerError,
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFoundJSON(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func UnauthorizedJSON(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Respond translates err into the response envelope. Store failures are
// logged with their cause and reported generically.
func Respond(c *gin.Context, log *zap.Logger, err error) {
	e, ok := As(FromStore(err))
	if !ok || e.Kind == KindStore {
		if log != nil {
			log.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
		}
		Internal(c, "server_error", "Server error.")
		return
	}

	Write(c, kindStatus[e.Kind], e.Code, Message(e.Code, e.Kind))
}

func Message(code string, kind Kind) string {
	if m, ok := messages[code]; ok {
		return m
	}
	switch kind {
	case KindNotFound:
		return "Not found."
	case KindForbidden:
		return "Not authorized."
	case KindUnauthorized:
		return "Authentication required."
	case KindConflict:
		return "Conflicting request."
	case KindUnavailable:
		return "Service unavailable."
	}
	return "Invalid request."
}

package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campus-wellbeing/counsel-api/internal/auth"
	"github.com/campus-wellbeing/counsel-api/internal/handlers"
	"github.com/campus-wellbeing/counsel-api/internal/testutil/memstore"
	ucAppointment "github.com/campus-wellbeing/counsel-api/internal/usecase/appointment"
	ucAvailability "github.com/campus-wellbeing/counsel-api/internal/usecase/availability"
	ucIdentity "github.com/campus-wellbeing/counsel-api/internal/usecase/identity"
	ucSession "github.com/campus-wellbeing/counsel-api/internal/usecase/session"
	ucWellbeing "github.com/campus-wellbeing/counsel-api/internal/usecase/wellbeing"
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
	store  *memstore.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memstore.New()
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	log := zap.NewNop()

	h := Handlers{
		Auth: handlers.NewAuthHandler(
			ucIdentity.NewRegister(store.Identity(), tokens, nil, bcrypt.MinCost, nil),
			ucIdentity.NewLogin(store.Identity(), tokens),
			ucIdentity.NewCompleteOnboarding(store.Identity(), nil),
			ucIdentity.NewProfile(store.Identity()),
			log,
		),
		Slots: handlers.NewSlotHandler(
			ucAvailability.NewCreateSlot(store.Availability(), nil),
			ucAvailability.NewListSlots(store.Availability()),
			ucAvailability.NewDeleteSlot(store.Availability(), nil),
			log,
		),
		Appointments: handlers.NewAppointmentHandler(
			ucAppointment.NewBookAppointment(store.Appointments(), nil, time.UTC),
			ucAppointment.NewCancelAppointment(store.Appointments(), nil),
			ucAppointment.NewListMyAppointments(store.Appointments()),
			log,
		),
		Sessions: handlers.NewSessionHandler(
			ucSession.NewStartSession(store.Sessions(), nil),
			ucSession.NewEndSession(store.Sessions(), nil),
			ucSession.NewGetSession(store.Sessions()),
			ucSession.NewListSessions(store.Sessions()),
			log,
		),
		Journals: handlers.NewJournalHandler(ucWellbeing.NewJournals(store.Wellbeing()), log),
		Moods:    handlers.NewMoodHandler(ucWellbeing.NewMoods(store.Wellbeing(), time.UTC), log),
	}

	r := gin.New()
	Mount(r, h, tokens)

	return &testServer{t: t, router: r, store: store}
}

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Count     *int            `json:"count"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
}

func (s *testServer) do(method, path, token string, body any) (int, envelope) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

type registered struct {
	Token string `json:"token"`
	User  struct {
		ID uuid.UUID `json:"id"`
	} `json:"user"`
}

func (s *testServer) register(email, role string) registered {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"email": email, "password": "secret1", "name": email, "role": role,
	})
	require.Equal(s.t, http.StatusCreated, code, env.ErrorCode)

	var out registered
	require.NoError(s.t, json.Unmarshal(env.Data, &out))
	return out
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

type idView struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

func TestCounsellingScenario(t *testing.T) {
	s := newTestServer(t)

	counsellor := s.register("counsellor@uni.edu", "counsellor")
	alice := s.register("alice@uni.edu", "student")
	bob := s.register("bob@uni.edu", "student")

	nextWeek := time.Now().UTC().AddDate(0, 0, 7)
	twoWeeks := nextWeek.AddDate(0, 0, 7)
	slotBody := gin.H{"dayOfWeek": int(nextWeek.Weekday()), "startTime": "10:00", "endTime": "11:00"}

	// ------------------------------
	// slots
	// ------------------------------
	code, env := s.do(http.MethodPost, "/api/appointments/slots", counsellor.Token, slotBody)
	require.Equal(t, http.StatusCreated, code)
	slot := decode[idView](t, env.Data)

	code, env = s.do(http.MethodPost, "/api/appointments/slots", counsellor.Token, slotBody)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "slot_already_exists", env.ErrorCode)

	code, _ = s.do(http.MethodPost, "/api/appointments/slots", alice.Token, slotBody)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.do(http.MethodGet, "/api/appointments/slots/"+counsellor.User.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, env.Count)
	assert.Equal(t, 1, *env.Count)

	// ------------------------------
	// booking
	// ------------------------------
	book := func(token string, day time.Time) (int, envelope) {
		return s.do(http.MethodPost, "/api/appointments", token, gin.H{
			"counsellorId":    counsellor.User.ID,
			"timeSlotId":      slot.ID,
			"appointmentDate": day.Format("2006-01-02"),
		})
	}

	code, env = book(alice.Token, nextWeek)
	require.Equal(t, http.StatusCreated, code, env.ErrorCode)
	first := decode[idView](t, env.Data)
	assert.Equal(t, "scheduled", first.Status)

	code, env = book(alice.Token, twoWeeks)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "active_appointment_exists", env.ErrorCode)

	code, _ = book(counsellor.Token, nextWeek)
	assert.Equal(t, http.StatusForbidden, code)

	// ------------------------------
	// walk-in session for bob
	// ------------------------------
	code, env = s.do(http.MethodPost, "/api/sessions/start", counsellor.Token, gin.H{"studentId": bob.User.ID})
	require.Equal(t, http.StatusCreated, code, env.ErrorCode)
	session := decode[idView](t, env.Data)

	u, _ := s.store.User(counsellor.User.ID)
	assert.True(t, u.IsActive)

	code, env = s.do(http.MethodPost, "/api/sessions/start", counsellor.Token, gin.H{"studentId": alice.User.ID})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "session_already_open", env.ErrorCode)

	code, env = s.do(http.MethodPost, "/api/sessions/"+session.ID.String()+"/end", counsellor.Token, gin.H{
		"notes": "ok", "severity": "moderate",
	})
	require.Equal(t, http.StatusOK, code, env.ErrorCode)
	ended := decode[struct {
		Severity *string `json:"severity"`
	}](t, env.Data)
	require.NotNil(t, ended.Severity)
	assert.Equal(t, "moderate", *ended.Severity)

	u, _ = s.store.User(counsellor.User.ID)
	assert.False(t, u.IsActive)

	ap, _ := s.store.Appointment(first.ID)
	assert.Equal(t, "scheduled", ap.Status, "walk-in session completes nothing")

	// ------------------------------
	// scoped listings
	// ------------------------------
	code, env = s.do(http.MethodGet, "/api/sessions", bob.Token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, *env.Count)

	code, env = s.do(http.MethodGet, "/api/sessions", alice.Token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, *env.Count)

	code, _ = s.do(http.MethodGet, "/api/sessions/"+session.ID.String(), alice.Token, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.do(http.MethodGet, "/api/appointments/my", bob.Token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, *env.Count)

	// ------------------------------
	// cancel and rebook
	// ------------------------------
	code, _ = s.do(http.MethodPut, "/api/appointments/"+first.ID.String()+"/cancel", bob.Token, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.do(http.MethodPut, "/api/appointments/"+first.ID.String()+"/cancel", alice.Token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "cancelled", decode[idView](t, env.Data).Status)

	code, env = book(alice.Token, twoWeeks)
	require.Equal(t, http.StatusCreated, code, env.ErrorCode)

	code, env = s.do(http.MethodGet, "/api/appointments/my", alice.Token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, *env.Count)
}

func TestAuthGate(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "missing_authorization_header", env.ErrorCode)

	code, env = s.do(http.MethodGet, "/api/sessions", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "invalid_token", env.ErrorCode)

	student := s.register("s@uni.edu", "student")

	code, env = s.do(http.MethodGet, "/api/auth/me", student.Token, nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodPost, "/api/sessions/start", student.Token, gin.H{"studentId": student.User.ID})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "not_authorized", env.ErrorCode)

	code, env = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "s@uni.edu", "password": "nope12"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "invalid_credentials", env.ErrorCode)

	code, _ = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "S@uni.edu", "password": "secret1"})
	assert.Equal(t, http.StatusOK, code)
}

func TestOnboardingAndQRCode(t *testing.T) {
	s := newTestServer(t)
	student := s.register("s@uni.edu", "student")

	code, env := s.do(http.MethodGet, "/api/auth/qr-code", student.Token, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "not_onboarded", env.ErrorCode)

	code, _ = s.do(http.MethodPost, "/api/auth/onboarding", student.Token, gin.H{"year": "2", "department": "Physics"})
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodPost, "/api/auth/onboarding", student.Token, gin.H{"year": "2", "department": "Physics"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "already_onboarded", env.ErrorCode)

	code, env = s.do(http.MethodGet, "/api/auth/qr-code", student.Token, nil)
	require.Equal(t, http.StatusOK, code)
	qr := decode[map[string]string](t, env.Data)
	assert.Equal(t, student.User.ID.String(), qr["studentId"])
	assert.NotEmpty(t, qr["username"])
	assert.NotEmpty(t, qr["secret"])
}

func TestHealthAndNoRoute(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/sessions")

	code, env := s.do(http.MethodGet, "/api/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
	assert.Equal(t, "route_not_found", env.ErrorCode)
}

type moodView struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	MoodLevel int       `json:"mood_level"`
	Note      string    `json:"note"`
}

func TestMoodUpsertOverHTTP(t *testing.T) {
	s := newTestServer(t)
	student := s.register("mood@uni.edu", "student")

	code, env := s.do(http.MethodPost, "/api/moods", student.Token, gin.H{
		"date": "2026-03-02", "moodLevel": 2, "note": "tired",
	})
	require.Equal(t, http.StatusCreated, code, env.ErrorCode)
	first := decode[moodView](t, env.Data)
	assert.Equal(t, "2026-03-02", first.Date)

	code, env = s.do(http.MethodPost, "/api/moods", student.Token, gin.H{
		"date": "2026-03-02", "moodLevel": 4, "note": "better",
	})
	require.Equal(t, http.StatusOK, code, env.ErrorCode)
	second := decode[moodView](t, env.Data)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 4, second.MoodLevel)

	code, env = s.do(http.MethodPost, "/api/moods", student.Token, gin.H{
		"date": "2026-03-01", "moodLevel": 3,
	})
	require.Equal(t, http.StatusCreated, code, env.ErrorCode)

	code, env = s.do(http.MethodGet, "/api/moods", student.Token, nil)
	require.Equal(t, http.StatusOK, code)
	list := decode[[]moodView](t, env.Data)
	require.Len(t, list, 2)
	assert.Equal(t, "2026-03-02", list[0].Date)
	assert.Equal(t, "better", list[0].Note)

	code, env = s.do(http.MethodPost, "/api/moods", student.Token, gin.H{
		"date": "2026-03-02", "moodLevel": 9,
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_mood", env.ErrorCode)

	counsellor := s.register("mood-c@uni.edu", "counsellor")
	code, _ = s.do(http.MethodGet, "/api/moods", counsellor.Token, nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestJournalOwnershipOverHTTP(t *testing.T) {
	s := newTestServer(t)
	owner := s.register("j1@uni.edu", "student")
	other := s.register("j2@uni.edu", "student")

	code, env := s.do(http.MethodPost, "/api/journals", owner.Token, gin.H{
		"title": " Day one ", "content": "wrote things", "mood": "calm",
	})
	require.Equal(t, http.StatusCreated, code, env.ErrorCode)
	j := decode[idView](t, env.Data)

	path := "/api/journals/" + j.ID.String()

	code, env = s.do(http.MethodPut, path, other.Token, gin.H{"content": "mine now"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "journal_not_found", env.ErrorCode)

	code, env = s.do(http.MethodDelete, path, other.Token, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "journal_not_found", env.ErrorCode)

	code, env = s.do(http.MethodGet, "/api/journals", other.Token, nil)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, env.Count)
	assert.Equal(t, 0, *env.Count)

	code, _ = s.do(http.MethodPut, path, owner.Token, gin.H{"content": "edited"})
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodDelete, path, owner.Token, nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodGet, "/api/journals", owner.Token, nil)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, env.Count)
	assert.Equal(t, 0, *env.Count)
}

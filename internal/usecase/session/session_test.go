package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campus-wellbeing/counsel-api/internal/domain/access"
	appointmentdomain "github.com/campus-wellbeing/counsel-api/internal/domain/appointment"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
	"github.com/campus-wellbeing/counsel-api/internal/testutil/memstore"
)

type fixture struct {
	store      *memstore.Store
	student    models.User
	other      models.User
	counsellor models.User

	start *StartSession
	end   *EndSession
	get   *GetSession
	list  *ListSessions
}

func newFixture() *fixture {
	store := memstore.New()
	return &fixture{
		store:      store,
		student:    store.AddUser(models.User{Email: "s1@uni.edu", Role: models.RoleStudent}),
		other:      store.AddUser(models.User{Email: "s2@uni.edu", Role: models.RoleStudent}),
		counsellor: store.AddUser(models.User{Email: "c@uni.edu", Role: models.RoleCounsellor}),
		start:      NewStartSession(store.Sessions(), nil),
		end:        NewEndSession(store.Sessions(), nil),
		get:        NewGetSession(store.Sessions()),
		list:       NewListSessions(store.Sessions()),
	}
}

func (f *fixture) appointment(t *testing.T, student models.User) models.Appointment {
	t.Helper()
	ap := models.Appointment{
		StudentID:       student.ID,
		CounsellorID:    f.counsellor.ID,
		AppointmentDate: time.Now().Add(48 * time.Hour).UTC(),
		Status:          string(appointmentdomain.StatusScheduled),
	}
	require.NoError(t, f.store.Appointments().CreateAppointment(context.Background(), &ap))
	return ap
}

func (f *fixture) active(t *testing.T) bool {
	t.Helper()
	u, ok := f.store.User(f.counsellor.ID)
	require.True(t, ok)
	return u.IsActive
}

func TestStartAndEndFlipActiveFlag(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.False(t, f.active(t))

	s, err := f.start.Execute(ctx, StartSessionInput{
		CounsellorID: f.counsellor.ID,
		StudentID:    f.student.ID,
	})
	require.NoError(t, err)
	assert.Nil(t, s.EndTime)
	assert.NotNil(t, s.QRScanInTime)
	assert.True(t, f.active(t))

	ended, err := f.end.Execute(ctx, EndSessionInput{
		CounsellorID: f.counsellor.ID,
		SessionID:    s.ID,
		Notes:        "follow up in two weeks",
		Severity:     "Moderate",
	})
	require.NoError(t, err)
	require.NotNil(t, ended.EndTime)
	require.NotNil(t, ended.Severity)
	assert.Equal(t, "moderate", *ended.Severity)
	assert.Equal(t, "follow up in two weeks", ended.Notes)
	assert.False(t, f.active(t))
}

func TestStartSecondSessionIsConflict(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.start.Execute(ctx, StartSessionInput{CounsellorID: f.counsellor.ID, StudentID: f.student.ID})
	require.NoError(t, err)

	_, err = f.start.Execute(ctx, StartSessionInput{CounsellorID: f.counsellor.ID, StudentID: f.other.ID})
	assert.True(t, httperr.Is(err, "session_already_open"))
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))
	assert.True(t, f.active(t))
}

func TestStartSessionRejections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.start.Execute(ctx, StartSessionInput{CounsellorID: f.counsellor.ID, StudentID: uuid.New()})
	assert.True(t, httperr.Is(err, "invalid_student"))

	_, err = f.start.Execute(ctx, StartSessionInput{CounsellorID: f.counsellor.ID, StudentID: f.counsellor.ID})
	assert.True(t, httperr.Is(err, "invalid_student"))

	theirs := f.appointment(t, f.other)
	_, err = f.start.Execute(ctx, StartSessionInput{
		CounsellorID:  f.counsellor.ID,
		StudentID:     f.student.ID,
		AppointmentID: &theirs.ID,
	})
	assert.True(t, httperr.Is(err, "invalid_appointment"))

	missing := uuid.New()
	_, err = f.start.Execute(ctx, StartSessionInput{
		CounsellorID:  f.counsellor.ID,
		StudentID:     f.student.ID,
		AppointmentID: &missing,
	})
	assert.True(t, httperr.Is(err, "invalid_appointment"))

	assert.False(t, f.active(t))
}

func TestEndSessionCompletesLinkedAppointmentOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	linked := f.appointment(t, f.student)
	unrelated := f.appointment(t, f.other)

	s, err := f.start.Execute(ctx, StartSessionInput{
		CounsellorID:  f.counsellor.ID,
		StudentID:     f.student.ID,
		AppointmentID: &linked.ID,
	})
	require.NoError(t, err)

	_, err = f.end.Execute(ctx, EndSessionInput{CounsellorID: f.counsellor.ID, SessionID: s.ID})
	require.NoError(t, err)

	got, _ := f.store.Appointment(linked.ID)
	assert.Equal(t, string(appointmentdomain.StatusCompleted), got.Status)
	assert.NotNil(t, got.CompletedAt)

	got, _ = f.store.Appointment(unrelated.ID)
	assert.Equal(t, string(appointmentdomain.StatusScheduled), got.Status)
}

func TestEndWalkInSessionTouchesNoAppointment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	pending := f.appointment(t, f.student)

	s, err := f.start.Execute(ctx, StartSessionInput{CounsellorID: f.counsellor.ID, StudentID: f.student.ID})
	require.NoError(t, err)

	ended, err := f.end.Execute(ctx, EndSessionInput{CounsellorID: f.counsellor.ID, SessionID: s.ID})
	require.NoError(t, err)
	assert.Nil(t, ended.Severity)

	got, _ := f.store.Appointment(pending.ID)
	assert.Equal(t, string(appointmentdomain.StatusScheduled), got.Status)
}

func TestEndSessionRejections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	s, err := f.start.Execute(ctx, StartSessionInput{CounsellorID: f.counsellor.ID, StudentID: f.student.ID})
	require.NoError(t, err)

	stranger := f.store.AddUser(models.User{Email: "c2@uni.edu", Role: models.RoleCounsellor})
	_, err = f.end.Execute(ctx, EndSessionInput{CounsellorID: stranger.ID, SessionID: s.ID})
	assert.True(t, httperr.Is(err, "session_not_found"))

	_, err = f.end.Execute(ctx, EndSessionInput{CounsellorID: f.counsellor.ID, SessionID: s.ID, Severity: "critical"})
	assert.True(t, httperr.Is(err, "invalid_severity"))
	assert.True(t, f.active(t), "failed end keeps the session open")

	_, err = f.end.Execute(ctx, EndSessionInput{CounsellorID: f.counsellor.ID, SessionID: s.ID, Severity: "high"})
	require.NoError(t, err)

	_, err = f.end.Execute(ctx, EndSessionInput{CounsellorID: f.counsellor.ID, SessionID: s.ID})
	assert.True(t, httperr.Is(err, "session_already_closed"))
	assert.False(t, f.active(t))
}

func TestSessionQueriesAreScoped(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.start.Execute(ctx, StartSessionInput{CounsellorID: f.counsellor.ID, StudentID: f.student.ID})
	require.NoError(t, err)
	_, err = f.end.Execute(ctx, EndSessionInput{CounsellorID: f.counsellor.ID, SessionID: first.ID})
	require.NoError(t, err)

	second, err := f.start.Execute(ctx, StartSessionInput{CounsellorID: f.counsellor.ID, StudentID: f.other.ID})
	require.NoError(t, err)

	me := access.Actor{ID: f.student.ID, Role: access.RoleStudent}

	list, err := f.list.Execute(ctx, me)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID)

	list, err = f.list.Execute(ctx, access.Actor{ID: f.counsellor.ID, Role: access.RoleCounsellor})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")
	require.NotNil(t, list[0].Student)

	got, err := f.get.Execute(ctx, me, first.ID)
	require.NoError(t, err)
	assert.Equal(t, f.student.ID, got.StudentID)

	_, err = f.get.Execute(ctx, me, second.ID)
	assert.True(t, httperr.Is(err, "not_authorized"))

	_, err = f.get.Execute(ctx, me, uuid.New())
	assert.True(t, httperr.Is(err, "session_not_found"))

	_, err = f.get.Execute(ctx, access.Actor{ID: uuid.New(), Role: access.RoleManagement}, second.ID)
	assert.NoError(t, err)
}

func TestReconcileActiveFlags(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	idle := f.store.AddUser(models.User{Email: "idle@uni.edu", Role: models.RoleCounsellor})
	f.store.SetActive(idle.ID, true)

	_, err := f.start.Execute(ctx, StartSessionInput{CounsellorID: f.counsellor.ID, StudentID: f.student.ID})
	require.NoError(t, err)
	f.store.SetActive(f.counsellor.ID, false)

	require.NoError(t, NewReconcileActiveFlags(f.store.Sessions(), zap.NewNop()).Execute(ctx))

	assert.True(t, f.active(t))
	u, _ := f.store.User(idle.ID)
	assert.False(t, u.IsActive)
}

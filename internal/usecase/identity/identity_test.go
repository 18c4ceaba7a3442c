package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/campus-wellbeing/counsel-api/internal/auth"
	"github.com/campus-wellbeing/counsel-api/internal/httperr"
	"github.com/campus-wellbeing/counsel-api/internal/models"
	"github.com/campus-wellbeing/counsel-api/internal/testutil/memstore"
)

func newTokens() *auth.TokenIssuer {
	return auth.NewTokenIssuer("test-secret", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	store := memstore.New()
	tokens := newTokens()
	ctx := context.Background()

	register := NewRegister(store.Identity(), tokens, nil, bcrypt.MinCost, nil)
	res, err := register.Execute(ctx, RegisterInput{
		Email:          "  Ada@Uni.EDU ",
		Password:       "secret1",
		Name:           "Ada",
		Role:           "Counsellor",
		Specialization: "Anxiety",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@uni.edu", res.User.Email)
	assert.Equal(t, models.RoleCounsellor, res.User.Role)
	assert.Equal(t, "Anxiety", res.User.Specialization)
	assert.NotEqual(t, "secret1", res.User.PasswordHash)

	claims, err := tokens.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, models.RoleCounsellor, claims.Role)

	login := NewLogin(store.Identity(), tokens)

	got, err := login.Execute(ctx, "ADA@uni.edu", "secret1")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, got.User.ID)

	_, err = login.Execute(ctx, "ada@uni.edu", "wrong")
	assert.True(t, httperr.Is(err, "invalid_credentials"))

	_, err = login.Execute(ctx, "nobody@uni.edu", "secret1")
	assert.True(t, httperr.Is(err, "invalid_credentials"))
	assert.True(t, httperr.IsKind(err, httperr.KindUnauthorized))
}

func TestRegisterRejections(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()

	register := NewRegister(store.Identity(), newTokens(), nil, bcrypt.MinCost, nil)
	_, err := register.Execute(ctx, RegisterInput{Email: "a@uni.edu", Password: "secret1", Role: "student"})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   RegisterInput
		code string
	}{
		{"duplicate email", RegisterInput{Email: "A@uni.edu", Password: "secret1", Role: "student"}, "email_already_exists"},
		{"bad email", RegisterInput{Email: "not-an-email", Password: "secret1", Role: "student"}, "invalid_request"},
		{"short password", RegisterInput{Email: "b@uni.edu", Password: "12345", Role: "student"}, "invalid_request"},
		{"management", RegisterInput{Email: "c@uni.edu", Password: "secret1", Role: "management"}, "invalid_request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := register.Execute(ctx, tt.in)
			assert.True(t, httperr.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestRegisterDomainCheck(t *testing.T) {
	store := memstore.New()
	reject := func(string) bool { return false }

	register := NewRegister(store.Identity(), newTokens(), nil, bcrypt.MinCost, reject)
	_, err := register.Execute(context.Background(), RegisterInput{
		Email: "a@nowhere.invalid", Password: "secret1", Role: "student",
	})
	assert.True(t, httperr.Is(err, "invalid_email_domain"))
}

func TestCompleteOnboarding(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()

	taken := "CalmOtter0001"
	store.AddUser(models.User{Email: "x@uni.edu", Role: models.RoleStudent, AnonymousUsername: &taken})
	student := store.AddUser(models.User{Email: "s@uni.edu", Role: models.RoleStudent})

	names := []string{taken, "BraveFox0042"}
	uc := NewCompleteOnboarding(store.Identity(), nil)
	uc.username = func() (string, error) {
		n := names[0]
		names = names[1:]
		return n, nil
	}

	u, err := uc.Execute(ctx, OnboardingInput{StudentID: student.ID, Year: " 2 ", Department: "Physics"})
	require.NoError(t, err)
	require.NotNil(t, u.AnonymousUsername)
	assert.Equal(t, "BraveFox0042", *u.AnonymousUsername)
	assert.Equal(t, "2", u.Year)
	assert.True(t, u.IsOnboarded)
	_, err = uuid.Parse(u.QRSecret)
	assert.NoError(t, err)

	_, err = uc.Execute(ctx, OnboardingInput{StudentID: student.ID})
	assert.True(t, httperr.Is(err, "already_onboarded"))

	profile, err := NewProfile(store.Identity()).Execute(ctx, student.ID)
	require.NoError(t, err)
	assert.True(t, profile.IsOnboarded)
}

func TestCompleteOnboardingStudentsOnly(t *testing.T) {
	store := memstore.New()
	c := store.AddUser(models.User{Email: "c@uni.edu", Role: models.RoleCounsellor})

	_, err := NewCompleteOnboarding(store.Identity(), nil).Execute(context.Background(), OnboardingInput{StudentID: c.ID})
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))
}

func TestCompleteOnboardingGivesUpOnCollisions(t *testing.T) {
	store := memstore.New()
	taken := "CalmOtter0001"
	store.AddUser(models.User{Email: "x@uni.edu", Role: models.RoleStudent, AnonymousUsername: &taken})
	student := store.AddUser(models.User{Email: "s@uni.edu", Role: models.RoleStudent})

	uc := NewCompleteOnboarding(store.Identity(), nil)
	uc.username = func() (string, error) { return taken, nil }

	_, err := uc.Execute(context.Background(), OnboardingInput{StudentID: student.ID})
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))

	u, _ := store.User(student.ID)
	assert.False(t, u.IsOnboarded)
}

package access

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestScopeFor(t *testing.T) {
	me := uuid.New()
	other := uuid.New()

	student := ScopeFor(Actor{ID: me, Role: RoleStudent})
	assert.True(t, student.Matches(me, other))
	assert.False(t, student.Matches(other, me))

	counsellor := ScopeFor(Actor{ID: me, Role: RoleCounsellor})
	assert.True(t, counsellor.Matches(other, me))
	assert.False(t, counsellor.Matches(me, other))

	mgmt := ScopeFor(Actor{ID: me, Role: RoleManagement})
	assert.True(t, mgmt.Matches(other, other))

	unknown := ScopeFor(Actor{ID: me, Role: "janitor"})
	assert.False(t, unknown.Matches(me, me))
}

func TestParticipates(t *testing.T) {
	s, c := uuid.New(), uuid.New()

	assert.True(t, Actor{ID: s, Role: RoleStudent}.Participates(s, c))
	assert.False(t, Actor{ID: c, Role: RoleStudent}.Participates(s, c))
	assert.True(t, Actor{ID: c, Role: RoleCounsellor}.Participates(s, c))
	assert.False(t, Actor{ID: s, Role: RoleCounsellor}.Participates(s, c))
	assert.True(t, Actor{ID: uuid.New(), Role: RoleManagement}.Participates(s, c))
}

package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocationFallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, Location(""))
	assert.Equal(t, time.UTC, Location("Mars/Olympus_Mons"))
	assert.False(t, IsValid("Mars/Olympus_Mons"))
}

func TestStartOfDayAndMonth(t *testing.T) {
	ts := time.Date(2026, time.March, 17, 15, 42, 9, 0, time.UTC)

	assert.Equal(t, time.Date(2026, time.March, 17, 0, 0, 0, 0, time.UTC), StartOfDay(ts, time.UTC))
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(ts, time.UTC))
}

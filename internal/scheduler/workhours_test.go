package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	c, err := ParseClock("08:30")
	require.NoError(t, err)
	assert.Equal(t, Clock(510), c)
	assert.Equal(t, "08:30", c.String())

	c, err = ParseClock("9:05")
	require.NoError(t, err)
	assert.Equal(t, "09:05", c.String())

	for _, bad := range []string{
		"", "noon", "24:00", "12:60", "-1:00", "-0:30", "+8:00",
		"8:00junk", "08:30 ", "8:5", "08:30:00",
	} {
		_, err := ParseClock(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInterval, bad)
	}
}

func TestParseWorkHours(t *testing.T) {
	h, err := ParseWorkHours("09:00", "18:00")
	require.NoError(t, err)

	w, err := h.Window(refNow)
	require.NoError(t, err)
	assert.Equal(t, at(9, 0), w.Start)
	assert.Equal(t, at(18, 0), w.End)

	_, err = ParseWorkHours("18:00", "09:00")
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)
}

func TestDayBounds(t *testing.T) {
	b := DayBounds(at(15, 42))
	assert.Equal(t, at(0, 0), b.Start)
	assert.Equal(t, 24*time.Hour, b.Duration())
}

func TestClockOn_KeepsLocation(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	day := time.Date(2025, 3, 15, 23, 0, 0, 0, jakarta)
	got := Clock(8 * 60).On(day)
	assert.Equal(t, time.Date(2025, 3, 15, 8, 0, 0, 0, jakarta), got)
}

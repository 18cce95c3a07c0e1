package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refTime = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func clock(h, m int) time.Time {
	return time.Date(2025, 3, 15, h, m, 0, 0, time.UTC)
}

func TestNewTimeInterval(t *testing.T) {
	iv, err := NewTimeInterval(clock(9, 0), clock(10, 30))
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, iv.Duration())
	assert.Equal(t, 90.0, iv.DurationMinutes())

	_, err = NewTimeInterval(clock(10, 0), clock(10, 0))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewTimeInterval(clock(11, 0), clock(10, 0))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewTimeInterval(time.Time{}, clock(10, 0))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestParseTimeInterval(t *testing.T) {
	iv, err := ParseTimeInterval("2025-03-15T09:00:00+07:00", "2025-03-15T10:00:00+07:00")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, iv.Duration())

	_, err = ParseTimeInterval("tomorrow", "2025-03-15T10:00:00Z")
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = ParseTimeInterval("2025-03-15T10:00:00Z", "2025-03-15T09:00:00Z")
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestTimeInterval_Overlaps(t *testing.T) {
	base := TimeInterval{Start: clock(9, 0), End: clock(10, 0)}
	cases := []struct {
		name  string
		other TimeInterval
		want  bool
	}{
		{"touching before", TimeInterval{clock(8, 0), clock(9, 0)}, false},
		{"touching after", TimeInterval{clock(10, 0), clock(11, 0)}, false},
		{"partial", TimeInterval{clock(9, 30), clock(10, 30)}, true},
		{"contained", TimeInterval{clock(9, 15), clock(9, 45)}, true},
		{"containing", TimeInterval{clock(8, 0), clock(11, 0)}, true},
		{"disjoint", TimeInterval{clock(12, 0), clock(13, 0)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Overlaps(tc.other))
			assert.Equal(t, tc.want, tc.other.Overlaps(base))
		})
	}
}

func TestTimeInterval_Contains(t *testing.T) {
	iv := TimeInterval{Start: clock(9, 0), End: clock(10, 0)}
	assert.True(t, iv.Contains(clock(9, 0)))
	assert.True(t, iv.Contains(clock(9, 59)))
	assert.False(t, iv.Contains(clock(10, 0)))
}

func TestTimeInterval_ShiftAndLength(t *testing.T) {
	iv := TimeInterval{Start: clock(9, 0), End: clock(10, 0)}

	later := iv.Shift(30)
	assert.Equal(t, clock(9, 30), later.Start)
	assert.Equal(t, clock(10, 30), later.End)

	earlier := iv.Shift(-15)
	assert.Equal(t, clock(8, 45), earlier.Start)

	assert.True(t, iv.LengthAtLeast(60))
	assert.False(t, iv.LengthAtLeast(61))
	assert.Equal(t, "09:00–10:00", iv.String())
}

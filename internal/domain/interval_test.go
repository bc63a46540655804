package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustInterval(t *testing.T, start, end string) TimeInterval {
	t.Helper()

	s, err := time.Parse(time.RFC3339, start)
	require.NoError(t, err)
	e, err := time.Parse(time.RFC3339, end)
	require.NoError(t, err)

	iv, err := NewTimeInterval(s, e)
	require.NoError(t, err)
	return iv
}

func TestNewTimeInterval_Invalid(t *testing.T) {
	now := time.Now().UTC()

	_, err := NewTimeInterval(now, now)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewTimeInterval(now.Add(time.Hour), now)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestTimeInterval_Duration(t *testing.T) {
	iv := mustInterval(t, "2026-09-10T10:00:00Z", "2026-09-10T12:30:00Z")
	assert.Equal(t, 2*time.Hour+30*time.Minute, iv.Duration())
}

func TestTimeInterval_Overlaps(t *testing.T) {
	base := mustInterval(t, "2026-09-10T10:00:00Z", "2026-09-10T12:00:00Z")

	tests := []struct {
		name     string
		other    TimeInterval
		expected bool
	}{
		{"identical", mustInterval(t, "2026-09-10T10:00:00Z", "2026-09-10T12:00:00Z"), true},
		{"contained", mustInterval(t, "2026-09-10T10:30:00Z", "2026-09-10T11:30:00Z"), true},
		{"contains", mustInterval(t, "2026-09-10T09:00:00Z", "2026-09-10T13:00:00Z"), true},
		{"overlaps start", mustInterval(t, "2026-09-10T09:00:00Z", "2026-09-10T10:30:00Z"), true},
		{"overlaps end", mustInterval(t, "2026-09-10T11:30:00Z", "2026-09-10T13:00:00Z"), true},
		{"touches start", mustInterval(t, "2026-09-10T08:00:00Z", "2026-09-10T10:00:00Z"), false},
		{"touches end", mustInterval(t, "2026-09-10T12:00:00Z", "2026-09-10T14:00:00Z"), false},
		{"disjoint before", mustInterval(t, "2026-09-10T07:00:00Z", "2026-09-10T08:00:00Z"), false},
		{"disjoint after", mustInterval(t, "2026-09-10T13:00:00Z", "2026-09-10T14:00:00Z"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base.Overlaps(tt.other))
			// Пересечение симметрично
			assert.Equal(t, tt.expected, tt.other.Overlaps(base))
		})
	}
}

func TestTimeInterval_EndedBy(t *testing.T) {
	iv := mustInterval(t, "2026-09-10T10:00:00Z", "2026-09-10T12:00:00Z")

	assert.False(t, iv.EndedBy(iv.Start))
	assert.False(t, iv.EndedBy(iv.End.Add(-time.Second)))
	assert.True(t, iv.EndedBy(iv.End))
	assert.True(t, iv.EndedBy(iv.End.Add(time.Hour)))
}

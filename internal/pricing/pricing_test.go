package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avlasov/PFR-BookingService/internal/domain"
)

func interval(t *testing.T, duration time.Duration) domain.TimeInterval {
	t.Helper()

	start := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	iv, err := domain.NewTimeInterval(start, start.Add(duration))
	require.NoError(t, err)
	return iv
}

func TestComputeAmount(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		duration time.Duration
		expected float64
	}{
		{"whole hours", 1000, 2 * time.Hour, 2000},
		{"fractional hours", 500, 90 * time.Minute, 750},
		{"single hour", 1500, time.Hour, 1500},
		{"half hour", 1000, 30 * time.Minute, 500},
		{"zero rate", 0, 2 * time.Hour, 0},
		{"sub-minor rounds half up", 10, time.Minute + 30*time.Second, 0.25},
		{"long booking", 250.50, 12 * time.Hour, 3006},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := ComputeAmount(tt.rate, interval(t, tt.duration))
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, amount, 1e-9)
		})
	}
}

func TestComputeAmount_RoundsToMinorUnit(t *testing.T) {
	// 1234.56 за 10 минут: 205.7599... -> 205.76
	amount, err := ComputeAmount(1234.56, interval(t, 10*time.Minute))
	require.NoError(t, err)
	assert.InDelta(t, 205.76, amount, 1e-9)

	// 33.333... за 20 минут: 100/3 * 1/3 = 11.111... -> 11.11
	amount, err = ComputeAmount(100.0/3.0, interval(t, 20*time.Minute))
	require.NoError(t, err)
	assert.InDelta(t, 11.11, amount, 1e-9)
}

func TestComputeAmount_NegativeRate(t *testing.T) {
	_, err := ComputeAmount(-1, interval(t, time.Hour))
	assert.ErrorIs(t, err, ErrNegativeRate)
}

func TestComputeAmount_InvalidInterval(t *testing.T) {
	_, err := ComputeAmount(100, domain.TimeInterval{})
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

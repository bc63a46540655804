package availability

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avlasov/PFR-BookingService/internal/domain"
)

func interval(t *testing.T, startHour, endHour int) domain.TimeInterval {
	t.Helper()

	day := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	iv, err := domain.NewTimeInterval(day.Add(time.Duration(startHour)*time.Hour), day.Add(time.Duration(endHour)*time.Hour))
	require.NoError(t, err)
	return iv
}

func TestIndex_IsAvailable_Empty(t *testing.T) {
	idx := NewIndex()
	assert.True(t, idx.IsAvailable(1, interval(t, 10, 12)))
}

func TestIndex_IsAvailable_InvalidInterval(t *testing.T) {
	idx := NewIndex()
	assert.False(t, idx.IsAvailable(1, domain.TimeInterval{}))
}

func TestIndex_Reserve(t *testing.T) {
	idx := NewIndex()

	require.NoError(t, idx.Reserve(1, uuid.New(), interval(t, 10, 12)))

	// Пересекающийся интервал занят
	assert.ErrorIs(t, idx.Reserve(1, uuid.New(), interval(t, 11, 13)), ErrSlotConflict)
	assert.False(t, idx.IsAvailable(1, interval(t, 11, 13)))

	// Соприкасающиеся границы — не конфликт
	require.NoError(t, idx.Reserve(1, uuid.New(), interval(t, 12, 14)))
	require.NoError(t, idx.Reserve(1, uuid.New(), interval(t, 8, 10)))

	assert.Equal(t, 3, idx.Held(1))
}

func TestIndex_Reserve_InvalidInterval(t *testing.T) {
	idx := NewIndex()
	assert.ErrorIs(t, idx.Reserve(1, uuid.New(), domain.TimeInterval{}), ErrInvalidInterval)
}

func TestIndex_FacilitiesAreIndependent(t *testing.T) {
	idx := NewIndex()

	require.NoError(t, idx.Reserve(1, uuid.New(), interval(t, 10, 12)))

	// Тот же интервал у другого объекта свободен
	assert.True(t, idx.IsAvailable(2, interval(t, 10, 12)))
	require.NoError(t, idx.Reserve(2, uuid.New(), interval(t, 10, 12)))
}

func TestIndex_Release(t *testing.T) {
	idx := NewIndex()
	bookingID := uuid.New()

	require.NoError(t, idx.Reserve(1, bookingID, interval(t, 10, 12)))
	assert.False(t, idx.IsAvailable(1, interval(t, 10, 12)))

	idx.Release(1, bookingID)
	assert.True(t, idx.IsAvailable(1, interval(t, 10, 12)))
	assert.Equal(t, 0, idx.Held(1))

	// Повторное освобождение — no-op
	idx.Release(1, bookingID)
	assert.Equal(t, 0, idx.Held(1))
}

func TestIndex_Release_KeepsOtherEntries(t *testing.T) {
	idx := NewIndex()
	first := uuid.New()
	second := uuid.New()

	require.NoError(t, idx.Reserve(1, first, interval(t, 10, 12)))
	require.NoError(t, idx.Reserve(1, second, interval(t, 14, 16)))

	idx.Release(1, first)

	assert.True(t, idx.IsAvailable(1, interval(t, 10, 12)))
	assert.False(t, idx.IsAvailable(1, interval(t, 14, 16)))
}

func TestIndex_Rebuild(t *testing.T) {
	idx := NewIndex()
	require.NoError(t, idx.Reserve(99, uuid.New(), interval(t, 1, 2)))

	entries := []Entry{
		{FacilityID: 1, BookingID: uuid.New(), Interval: interval(t, 14, 16)},
		{FacilityID: 1, BookingID: uuid.New(), Interval: interval(t, 10, 12)},
		{FacilityID: 2, BookingID: uuid.New(), Interval: interval(t, 10, 12)},
	}
	idx.Rebuild(entries)

	// Старое содержимое вытеснено
	assert.True(t, idx.IsAvailable(99, interval(t, 1, 2)))

	assert.False(t, idx.IsAvailable(1, interval(t, 10, 12)))
	assert.False(t, idx.IsAvailable(1, interval(t, 15, 17)))
	assert.True(t, idx.IsAvailable(1, interval(t, 12, 14)))
	assert.False(t, idx.IsAvailable(2, interval(t, 11, 13)))
	assert.Equal(t, 2, idx.Held(1))
}

func TestIndex_ConcurrentReserve_ExactlyOneWins(t *testing.T) {
	idx := NewIndex()
	const goroutines = 32

	var wg sync.WaitGroup
	successes := make(chan uuid.UUID, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := uuid.New()
			if err := idx.Reserve(1, id, interval(t, 10, 12)); err == nil {
				successes <- id
			}
		}()
	}
	wg.Wait()
	close(successes)

	var winners []uuid.UUID
	for id := range successes {
		winners = append(winners, id)
	}
	require.Len(t, winners, 1)
	assert.Equal(t, 1, idx.Held(1))

	// После освобождения победителя интервал снова свободен
	idx.Release(1, winners[0])
	assert.True(t, idx.IsAvailable(1, interval(t, 10, 12)))
}

func TestIndex_ConcurrentDisjointReserves(t *testing.T) {
	idx := NewIndex()
	const goroutines = 16

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Непересекающиеся часовые интервалы — все должны пройти
			iv := interval(t, i, i+1)
			assert.NoError(t, idx.Reserve(1, uuid.New(), iv))
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines, idx.Held(1))
}

package request_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avlasov/PFR-BookingService/internal/availability"
	"github.com/avlasov/PFR-BookingService/internal/domain"
	facilityRepo "github.com/avlasov/PFR-BookingService/internal/infra/storage/facility"
)

// Фейки

type fakeLedger struct {
	mu       sync.Mutex
	bookings []*domain.Booking
	failWith error
}

func (f *fakeLedger) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return nil, f.failWith
	}
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	f.bookings = append(f.bookings, b)
	return b, nil
}

func (f *fakeLedger) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookings)
}

type fakeCatalog struct {
	facilities map[int64]*domain.Facility
}

func (f *fakeCatalog) GetByID(_ context.Context, id int64) (*domain.Facility, error) {
	facility, ok := f.facilities[id]
	if !ok {
		return nil, facilityRepo.ErrFacilityNotFound
	}
	return facility, nil
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type nopMetrics struct{}

func (nopMetrics) IncBookingsCreated()  {}
func (nopMetrics) IncBookingConflicts() {}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Сборка

var testNow = time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

func testFacility() *domain.Facility {
	return &domain.Facility{
		ID:          1,
		Name:        "Большой зал",
		Type:        domain.FacilityHall,
		HourlyRate:  1000,
		MaxCapacity: 50,
		IsActive:    true,
	}
}

type fixture struct {
	uc     *UseCase
	ledger *fakeLedger
	index  *availability.Index
}

func newFixture(t *testing.T, facilities ...*domain.Facility) *fixture {
	t.Helper()

	catalog := &fakeCatalog{facilities: map[int64]*domain.Facility{}}
	for _, f := range facilities {
		catalog.facilities[f.ID] = f
	}

	ledger := &fakeLedger{}
	index := availability.NewIndex()

	uc := NewUseCase(ledger, catalog, index, domain.DefaultBookingRules(), nopMetrics{}, nopLogger{})
	uc.timeProvider = &fixedClock{now: testNow}

	return &fixture{uc: uc, ledger: ledger, index: index}
}

func validRequest() *Request {
	return &Request{
		UserID:         7,
		FacilityID:     1,
		Start:          testNow.Add(3 * time.Hour),
		End:            testNow.Add(5 * time.Hour),
		NumberOfPeople: 10,
	}
}

// Тесты

func TestExecute_Success(t *testing.T) {
	fx := newFixture(t, testFacility())

	resp, err := fx.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, int64(7), resp.UserID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	// 1000/час * 2 часа
	assert.InDelta(t, 2000.0, resp.TotalAmount, 1e-9)
	assert.Equal(t, 1, fx.ledger.count())
	assert.Equal(t, 1, fx.index.Held(1))
}

func TestExecute_InvalidInput(t *testing.T) {
	fx := newFixture(t, testFacility())

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero user", func(r *Request) { r.UserID = 0 }},
		{"zero facility", func(r *Request) { r.FacilityID = 0 }},
		{"zero start", func(r *Request) { r.Start = time.Time{} }},
		{"zero people", func(r *Request) { r.NumberOfPeople = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := fx.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Equal(t, 0, fx.ledger.count())
}

func TestExecute_FacilityNotFound(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrFacilityUnavailable)
}

func TestExecute_FacilityInactive(t *testing.T) {
	facility := testFacility()
	facility.IsActive = false
	fx := newFixture(t, facility)

	_, err := fx.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrFacilityUnavailable)
}

func TestExecute_IntervalRules(t *testing.T) {
	fx := newFixture(t, testFacility())

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"start after end", func(r *Request) {
			r.Start, r.End = r.End, r.Start
		}},
		{"insufficient lead time", func(r *Request) {
			r.Start = testNow.Add(time.Hour)
			r.End = testNow.Add(3 * time.Hour)
		}},
		{"too short", func(r *Request) {
			r.End = r.Start.Add(15 * time.Minute)
		}},
		{"too long", func(r *Request) {
			r.End = r.Start.Add(13 * time.Hour)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := fx.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInterval)
		})
	}
}

func TestExecute_LeadTimeBoundary(t *testing.T) {
	fx := newFixture(t, testFacility())

	// Ровно минимальный lead time — допустимо
	req := validRequest()
	req.Start = testNow.Add(domain.DefaultMinLeadTime)
	req.End = req.Start.Add(2 * time.Hour)

	_, err := fx.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_CapacityExceeded(t *testing.T) {
	fx := newFixture(t, testFacility())

	req := validRequest()
	req.NumberOfPeople = 51

	_, err := fx.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestExecute_UnknownCapacityUnlimited(t *testing.T) {
	facility := testFacility()
	facility.MaxCapacity = 0
	fx := newFixture(t, facility)

	req := validRequest()
	req.NumberOfPeople = 10000

	_, err := fx.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_SlotConflict(t *testing.T) {
	fx := newFixture(t, testFacility())

	_, err := fx.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Пересекающийся интервал
	req := validRequest()
	req.Start = req.Start.Add(time.Hour)
	req.End = req.End.Add(time.Hour)

	_, err = fx.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Equal(t, 1, fx.ledger.count())
}

func TestExecute_TouchingIntervalsAllowed(t *testing.T) {
	fx := newFixture(t, testFacility())

	first := validRequest()
	_, err := fx.uc.Execute(context.Background(), first)
	require.NoError(t, err)

	// Начало встык к концу предыдущего
	second := validRequest()
	second.Start = first.End
	second.End = first.End.Add(2 * time.Hour)

	_, err = fx.uc.Execute(context.Background(), second)
	assert.NoError(t, err)
	assert.Equal(t, 2, fx.index.Held(1))
}

func TestExecute_LedgerFailureReleasesInterval(t *testing.T) {
	fx := newFixture(t, testFacility())
	fx.ledger.failWith = errors.New("connection reset")

	_, err := fx.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)

	// Интервал снят — повторная попытка должна пройти
	assert.Equal(t, 0, fx.index.Held(1))

	fx.ledger.failWith = nil
	_, err = fx.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_ConcurrentSameSlot_ExactlyOneWins(t *testing.T) {
	fx := newFixture(t, testFacility())
	const goroutines = 16

	var wg sync.WaitGroup
	var mu sync.Mutex
	var successes, conflicts int

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := fx.uc.Execute(context.Background(), validRequest())

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrSlotConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, goroutines-1, conflicts)
	assert.Equal(t, 1, fx.ledger.count())
	assert.Equal(t, 1, fx.index.Held(1))
}

package check_availability

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avlasov/PFR-BookingService/internal/availability"
	"github.com/avlasov/PFR-BookingService/internal/domain"
	facilityRepo "github.com/avlasov/PFR-BookingService/internal/infra/storage/facility"
)

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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

func newFixture(t *testing.T, index *availability.Index) *UseCase {
	t.Helper()

	catalog := &fakeCatalog{facilities: map[int64]*domain.Facility{
		1: {ID: 1, Name: "Большой зал", Type: domain.FacilityHall, HourlyRate: 800, IsActive: true},
		2: {ID: 2, Name: "Старый парк", Type: domain.FacilityPark, HourlyRate: 300, IsActive: false},
	}}

	uc := NewUseCase(catalog, index, domain.DefaultBookingRules(), nopLogger{})
	uc.timeProvider = &fixedClock{now: testNow}
	return uc
}

func validRequest() *Request {
	return &Request{
		FacilityID: 1,
		Start:      testNow.Add(3 * time.Hour),
		End:        testNow.Add(5 * time.Hour),
	}
}

func TestExecute_Available(t *testing.T) {
	uc := newFixture(t, availability.NewIndex())

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.Available)
	// 800/час * 2 часа
	assert.InDelta(t, 1600.0, resp.QuotedAmount, 1e-9)
}

func TestExecute_Occupied(t *testing.T) {
	index := availability.NewIndex()
	req := validRequest()

	iv, err := domain.NewTimeInterval(req.Start.Add(time.Hour), req.End.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, index.Reserve(1, uuid.New(), iv))

	uc := newFixture(t, index)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Занятый интервал — доступности нет, но котировка возвращается
	assert.False(t, resp.Available)
	assert.InDelta(t, 1600.0, resp.QuotedAmount, 1e-9)
}

func TestExecute_ProbeReservesNothing(t *testing.T) {
	index := availability.NewIndex()
	uc := newFixture(t, index)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 0, index.Held(1))
}

func TestExecute_FacilityNotFound(t *testing.T) {
	uc := newFixture(t, availability.NewIndex())

	req := validRequest()
	req.FacilityID = 42

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrFacilityUnavailable)
}

func TestExecute_FacilityInactive(t *testing.T) {
	uc := newFixture(t, availability.NewIndex())

	req := validRequest()
	req.FacilityID = 2

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrFacilityUnavailable)
}

func TestExecute_IntervalRules(t *testing.T) {
	uc := newFixture(t, availability.NewIndex())

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"start after end", func(r *Request) { r.Start, r.End = r.End, r.Start }},
		{"insufficient lead time", func(r *Request) {
			r.Start = testNow.Add(30 * time.Minute)
			r.End = testNow.Add(2 * time.Hour)
		}},
		{"too short", func(r *Request) { r.End = r.Start.Add(10 * time.Minute) }},
		{"too long", func(r *Request) { r.End = r.Start.Add(20 * time.Hour) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInterval)
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newFixture(t, availability.NewIndex())

	req := validRequest()
	req.FacilityID = 0
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.Start = time.Time{}
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

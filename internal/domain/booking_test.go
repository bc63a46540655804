package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := map[BookingStatus][]BookingStatus{
		StatusPending:   {StatusConfirmed, StatusRejected, StatusCancelled},
		StatusConfirmed: {StatusCancelled, StatusCompleted},
		StatusCancelled: {},
		StatusRejected:  {},
		StatusCompleted: {},
	}

	// Полный перебор пар: всё, чего нет в таблице, должно быть запрещено
	for _, from := range AllStatuses() {
		for _, to := range AllStatuses() {
			expected := false
			for _, a := range allowed[from] {
				if a == to {
					expected = true
				}
			}
			assert.Equal(t, expected, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTransitionSources(t *testing.T) {
	assert.ElementsMatch(t, []BookingStatus{StatusPending}, TransitionSources(StatusConfirmed))
	assert.ElementsMatch(t, []BookingStatus{StatusPending}, TransitionSources(StatusRejected))
	assert.ElementsMatch(t, []BookingStatus{StatusPending, StatusConfirmed}, TransitionSources(StatusCancelled))
	assert.ElementsMatch(t, []BookingStatus{StatusConfirmed}, TransitionSources(StatusCompleted))
	assert.Empty(t, TransitionSources(StatusPending))

	// Согласованность с таблицей переходов
	for _, to := range AllStatuses() {
		for _, from := range TransitionSources(to) {
			assert.True(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_UnknownStatus(t *testing.T) {
	assert.False(t, CanTransition(BookingStatus("bogus"), StatusConfirmed))
	assert.False(t, CanTransition(StatusPending, BookingStatus("bogus")))
}

func TestBooking_HoldsInterval(t *testing.T) {
	holding := map[BookingStatus]bool{
		StatusPending:   true,
		StatusConfirmed: true,
		StatusCancelled: false,
		StatusRejected:  false,
		StatusCompleted: false,
	}

	for _, status := range AllStatuses() {
		b := Booking{Status: status}
		assert.Equal(t, holding[status], b.HoldsInterval(), "status=%s", status)
	}
}

func TestBooking_IsTerminal(t *testing.T) {
	terminal := map[BookingStatus]bool{
		StatusPending:   false,
		StatusConfirmed: false,
		StatusCancelled: true,
		StatusRejected:  true,
		StatusCompleted: true,
	}

	for _, status := range AllStatuses() {
		b := Booking{Status: status}
		assert.Equal(t, terminal[status], b.IsTerminal(), "status=%s", status)
	}
}

func TestBooking_IsPaid(t *testing.T) {
	assert.False(t, (&Booking{Status: StatusPending}).IsPaid())
	assert.True(t, (&Booking{Status: StatusConfirmed}).IsPaid())
	assert.True(t, (&Booking{Status: StatusCompleted}).IsPaid())
	assert.False(t, (&Booking{Status: StatusCancelled}).IsPaid())
	assert.False(t, (&Booking{Status: StatusRejected}).IsPaid())
}

func TestValidStatus(t *testing.T) {
	for _, status := range AllStatuses() {
		assert.True(t, ValidStatus(string(status)))
	}
	assert.False(t, ValidStatus("bogus"))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("PENDING"))
}

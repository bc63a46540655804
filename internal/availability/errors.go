package availability

import "errors"

var (
	// ErrSlotConflict возвращается, когда интервал пересекается с уже занятым
	ErrSlotConflict = errors.New("availability: interval conflicts with an existing reservation")

	// ErrInvalidInterval возвращается при некорректном интервале
	ErrInvalidInterval = errors.New("availability: invalid interval")
)

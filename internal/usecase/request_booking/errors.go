package request_booking

import "errors"

var (
	// ErrFacilityUnavailable возвращается, когда объект не найден или неактивен
	ErrFacilityUnavailable = errors.New("request_booking: facility is unknown or inactive")

	// ErrInvalidInterval возвращается при нарушении временных правил:
	// недостаточный lead time или длительность вне допустимых границ
	ErrInvalidInterval = errors.New("request_booking: invalid booking interval")

	// ErrSlotConflict возвращается, когда интервал пересекается с существующим
	// pending или confirmed бронированием этого объекта
	ErrSlotConflict = errors.New("request_booking: time slot conflicts with an existing booking")

	// ErrCapacityExceeded возвращается, когда число людей превышает вместимость
	ErrCapacityExceeded = errors.New("request_booking: number of people exceeds facility capacity")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("request_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("request_booking: internal error")
)

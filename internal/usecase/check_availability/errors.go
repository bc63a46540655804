package check_availability

import "errors"

var (
	// ErrFacilityUnavailable возвращается, когда объект не найден или неактивен
	ErrFacilityUnavailable = errors.New("check_availability: facility is unknown or inactive")

	// ErrInvalidInterval возвращается при нарушении временных правил
	ErrInvalidInterval = errors.New("check_availability: invalid booking interval")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)

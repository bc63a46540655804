package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrCancellationWindowClosed возвращается, когда подтвержденное бронирование
	// отменяют позже разрешенного окна до начала интервала
	ErrCancellationWindowClosed = errors.New("cancellation window closed")

	// ErrNotYetEnded возвращается при попытке завершить бронирование до конца интервала
	ErrNotYetEnded = errors.New("booking interval has not ended yet")

	// ErrPaymentDeclined возвращается, когда платежный шлюз отклонил создание платежа
	ErrPaymentDeclined = errors.New("payment declined by gateway")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

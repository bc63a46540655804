package paymentgw

import "errors"

var (
	// ErrPaymentDeclined возвращается, когда шлюз отклонил создание платежа
	ErrPaymentDeclined = errors.New("paymentgw client: payment declined")

	// ErrIntentNotFound возвращается, когда платежное намерение не найдено
	ErrIntentNotFound = errors.New("paymentgw client: payment intent not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentgw client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("paymentgw client: invalid response")
)

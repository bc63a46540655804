package paymentgw

import "github.com/google/uuid"

// PaymentIntent платежное намерение, созданное шлюзом.
// Token передается клиентскому платежному виджету; движок карточных
// данных не видит и не хранит.
type PaymentIntent struct {
	Reference string `json:"reference"`
	Token     string `json:"token"`
	Amount    float64 `json:"amount"`
	Currency  string `json:"currency"`
}

// createIntentRequest тело запроса создания платежного намерения
type createIntentRequest struct {
	BookingID uuid.UUID `json:"booking_id"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
}

// refundRequest тело уведомления о возврате
type refundRequest struct {
	BookingID uuid.UUID `json:"booking_id"`
	Amount    float64   `json:"amount"`
}

// ErrorResponse модель ошибки от платежного шлюза
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

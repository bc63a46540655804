package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/avlasov/PFR-BookingService/internal/domain"
	"github.com/avlasov/PFR-BookingService/internal/integrations/paymentgw"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ConfirmBookingRequest запрос на подтверждение бронирования после оплаты
type ConfirmBookingRequest struct {
	UserID           int64  `json:"userId"`
	PaymentReference string `json:"paymentReference"`
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// RejectBookingRequest запрос на отклонение бронирования (административный путь)
type RejectBookingRequest struct {
	UserID          int64  `json:"userId"`
	RejectionReason string `json:"rejectionReason"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetFacilityBookingsRequest запрос на получение бронирований объекта
type GetFacilityBookingsRequest struct {
	UserID          int64      `json:"userId"`
	FacilityID      int64      `json:"facilityId"`
	From            *time.Time `json:"from,omitempty"`            // Начало периода (опционально)
	To              *time.Time `json:"to,omitempty"`              // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить завершенные и отмененные
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetFacilityBookingsRequest) ToDomainFilter() (domain.FacilityBookingsFilter, error) {
	filter := domain.FacilityBookingsFilter{
		FacilityID:      r.FacilityID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID             uuid.UUID `json:"id"`
	UserID         int64     `json:"userId"`
	FacilityID     int64     `json:"facilityId"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	NumberOfPeople int       `json:"numberOfPeople"`
	TotalAmount    float64   `json:"totalAmount"`
	Status         string    `json:"status"`

	PaymentReference *string `json:"paymentReference,omitempty"`
	Purpose          *string `json:"purpose,omitempty"`
	Notes            *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format
	RefundRequestedAt  *string `json:"refundRequestedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PaymentIntentResponse ответ с платежным намерением
type PaymentIntentResponse struct {
	BookingID uuid.UUID `json:"bookingId"`
	Reference string    `json:"reference"`
	Token     string    `json:"token"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
}

// FromGatewayIntent конвертирует ответ платежного шлюза в DTO
func FromGatewayIntent(bookingID uuid.UUID, intent *paymentgw.PaymentIntent) *PaymentIntentResponse {
	return &PaymentIntentResponse{
		BookingID: bookingID,
		Reference: intent.Reference,
		Token:     intent.Token,
		Amount:    intent.Amount,
		Currency:  intent.Currency,
	}
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		FacilityID:         b.FacilityID,
		StartTime:          b.Interval.Start,
		EndTime:            b.Interval.End,
		NumberOfPeople:     b.NumberOfPeople,
		TotalAmount:        b.TotalAmount,
		Status:             string(b.Status),
		PaymentReference:   b.PaymentReference,
		Purpose:            b.Purpose,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}
	if b.RefundRequestedAt != nil {
		refundStr := b.RefundRequestedAt.Format(time.RFC3339)
		resp.RefundRequestedAt = &refundStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	if !domain.ValidStatus(status) {
		return "", ErrInvalidStatus
	}
	return domain.BookingStatus(status), nil
}

package check_availability

import "time"

// Request модель запроса проверки доступности
type Request struct {
	FacilityID int64     // ID объекта из каталога
	Start      time.Time // Начало интервала (UTC)
	End        time.Time // Конец интервала (UTC)
}

// Response модель ответа проверки доступности
type Response struct {
	FacilityID   int64
	Start        time.Time
	End          time.Time
	Available    bool
	QuotedAmount float64 // Стоимость интервала по текущему тарифу объекта
}

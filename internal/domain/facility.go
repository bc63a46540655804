package domain

import "time"

// FacilityType тип объекта. Набор открытый: в каталоге могут появляться
// новые типы без изменения кода движка.
type FacilityType string

const (
	FacilityHall        FacilityType = "HALL"
	FacilityPark        FacilityType = "PARK"
	FacilityCrematorium FacilityType = "CREMATORIUM"
	FacilityGuestHouse  FacilityType = "GUEST_HOUSE"
	FacilityStadium     FacilityType = "STADIUM"
)

// Facility объект бронирования. Принадлежит каталогу и для движка
// является read-only справочными данными.
type Facility struct {
	ID          int64
	Name        string
	Type        FacilityType
	Address     string
	Description string
	HourlyRate  float64
	MaxCapacity int // 0 = вместимость неизвестна
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasKnownCapacity сообщает, известна ли вместимость объекта
func (f *Facility) HasKnownCapacity() bool {
	return f.MaxCapacity > 0
}

// CanAccommodate проверяет, помещается ли указанное число людей.
// При неизвестной вместимости ограничение не применяется.
func (f *Facility) CanAccommodate(numberOfPeople int) bool {
	if !f.HasKnownCapacity() {
		return true
	}
	return numberOfPeople <= f.MaxCapacity
}

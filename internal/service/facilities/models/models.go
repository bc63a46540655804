package models

import (
	"time"

	"github.com/avlasov/PFR-BookingService/internal/domain"
)

// FacilityResponse ответ с данными объекта
type FacilityResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Address     string  `json:"address"`
	Description string  `json:"description,omitempty"`
	HourlyRate  float64 `json:"hourlyRate"`
	MaxCapacity *int    `json:"maxCapacity,omitempty"` // nil — вместимость не задана
	IsActive    bool    `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FacilityListResponse ответ со списком объектов
type FacilityListResponse struct {
	Facilities []FacilityResponse `json:"facilities"`
}

// FromDomainFacility конвертирует domain модель в DTO
func FromDomainFacility(f *domain.Facility) *FacilityResponse {
	if f == nil {
		return nil
	}

	resp := &FacilityResponse{
		ID:          f.ID,
		Name:        f.Name,
		Type:        string(f.Type),
		Address:     f.Address,
		Description: f.Description,
		HourlyRate:  f.HourlyRate,
		IsActive:    f.IsActive,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}

	if f.HasKnownCapacity() {
		capacity := f.MaxCapacity
		resp.MaxCapacity = &capacity
	}

	return resp
}

// FromDomainFacilityList конвертирует список domain моделей в DTO
func FromDomainFacilityList(facilities []*domain.Facility) *FacilityListResponse {
	if facilities == nil {
		return &FacilityListResponse{
			Facilities: []FacilityResponse{},
		}
	}

	resp := &FacilityListResponse{
		Facilities: make([]FacilityResponse, len(facilities)),
	}

	for i, facility := range facilities {
		if facilityResp := FromDomainFacility(facility); facilityResp != nil {
			resp.Facilities[i] = *facilityResp
		}
	}

	return resp
}

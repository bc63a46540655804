package facilities

import (
	"context"
	"errors"
	"fmt"

	facilityRepo "github.com/avlasov/PFR-BookingService/internal/infra/storage/facility"
	"github.com/avlasov/PFR-BookingService/internal/service/facilities/models"
)

// Service read-only сервис каталога объектов
type Service struct {
	facilityRepo FacilityRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(facilityRepo FacilityRepository, logger Logger) *Service {
	return &Service{
		facilityRepo: facilityRepo,
		logger:       logger,
	}
}

// GetByID получает объект по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.FacilityResponse, error) {
	s.logger.Info("GetByID: fetching facility id=%d", id)

	facility, err := s.facilityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("GetByID: facility id=%d not found", id)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("GetByID: repository error for facility id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainFacility(facility), nil
}

// ListActive получает список активных объектов каталога
func (s *Service) ListActive(ctx context.Context) (*models.FacilityListResponse, error) {
	s.logger.Info("ListActive: fetching active facilities")

	facilities, err := s.facilityRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListActive: successfully fetched %d facilities", len(facilities))
	return models.FromDomainFacilityList(facilities), nil
}

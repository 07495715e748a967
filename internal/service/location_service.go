package service

import (
	"context"

	"attractions/internal/model"
	"attractions/internal/repository"
)

// LocationService содержит бизнес-логику, связанную с локациями.
type LocationService struct {
	locationRepo *repository.LocationRepository
}

// NewLocationService создает новый сервис локаций.
func NewLocationService(locationRepo *repository.LocationRepository) *LocationService {
	return &LocationService{locationRepo: locationRepo}
}

// ListLocations возвращает все известные пары провинция/город.
func (s *LocationService) ListLocations(ctx context.Context) ([]model.Location, error) {
	return s.locationRepo.List(ctx)
}

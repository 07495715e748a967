package service

import (
	"context"
	"fmt"
	"strings"

	"attractions/internal/model"
	"attractions/internal/repository"
)

type scriptRunner interface {
	ExecScript(ctx context.Context, path string) error
}

// AttractionService содержит бизнес-логику, связанную с достопримечательностями.
type AttractionService struct {
	attractionRepo *repository.AttractionRepository
	seeder         scriptRunner
	seedFile       string
}

// NewAttractionService создает новый сервис достопримечательностей.
// seeder и seedFile используются для восстановления исходных данных.
func NewAttractionService(attractionRepo *repository.AttractionRepository, seeder scriptRunner, seedFile string) *AttractionService {
	return &AttractionService{attractionRepo: attractionRepo, seeder: seeder, seedFile: seedFile}
}

// FindByLocation возвращает достопримечательности города. Пустой результат не является ошибкой.
func (s *AttractionService) FindByLocation(ctx context.Context, province, city string) ([]model.AttractionSummary, error) {
	return s.attractionRepo.ListByLocation(ctx, normalize(province), normalize(city))
}

// AddAttraction проверяет поля и добавляет достопримечательность вместе с локацией.
func (s *AttractionService) AddAttraction(ctx context.Context, a model.NewAttraction) (int, error) {
	a.Name = strings.TrimSpace(a.Name)
	a.Description = strings.TrimSpace(a.Description)
	a.Category = normalize(a.Category)
	a.Province = normalize(a.Province)
	a.City = normalize(a.City)
	a.OpeningHour = strings.TrimSpace(a.OpeningHour)
	a.ClosingHour = strings.TrimSpace(a.ClosingHour)

	switch {
	case a.Name == "":
		return 0, fmt.Errorf("%w: не указано название", ErrInvalidInput)
	case a.Province == "" || a.City == "":
		return 0, fmt.Errorf("%w: не указаны провинция или город", ErrInvalidInput)
	case a.Latitude < -90 || a.Latitude > 90:
		return 0, fmt.Errorf("%w: широта вне диапазона", ErrInvalidInput)
	case a.Longitude < -180 || a.Longitude > 180:
		return 0, fmt.Errorf("%w: долгота вне диапазона", ErrInvalidInput)
	}
	return s.attractionRepo.Add(ctx, a)
}

// UpdateAttraction перезаписывает описательные поля достопримечательности.
func (s *AttractionService) UpdateAttraction(ctx context.Context, u model.AttractionUpdate) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Description = strings.TrimSpace(u.Description)
	u.Category = normalize(u.Category)
	if u.Name == "" {
		return fmt.Errorf("%w: не указано название", ErrInvalidInput)
	}
	return s.attractionRepo.Update(ctx, u)
}

// DeleteAttraction удаляет достопримечательность и ее впечатления.
func (s *AttractionService) DeleteAttraction(ctx context.Context, id int) error {
	return s.attractionRepo.Delete(ctx, id)
}

// CountAttractions возвращает число достопримечательностей города.
func (s *AttractionService) CountAttractions(ctx context.Context, province, city string) (int, error) {
	return s.attractionRepo.CountByLocation(ctx, normalize(province), normalize(city))
}

// CitiesWithMoreThan возвращает города, где достопримечательностей больше minCount.
func (s *AttractionService) CitiesWithMoreThan(ctx context.Context, minCount int) ([]model.CityCount, error) {
	if minCount < 0 {
		return nil, fmt.Errorf("%w: отрицательный порог", ErrInvalidInput)
	}
	return s.attractionRepo.CountPerCity(ctx, minCount)
}

// AveragePerProvince возвращает среднее число достопримечательностей на город по провинциям.
func (s *AttractionService) AveragePerProvince(ctx context.Context) ([]model.ProvinceAverage, error) {
	return s.attractionRepo.AveragePerProvince(ctx)
}

// Repopulate восстанавливает исходные данные из скрипта и возвращает все достопримечательности.
func (s *AttractionService) Repopulate(ctx context.Context) ([]model.AttractionSummary, error) {
	if err := s.seeder.ExecScript(ctx, s.seedFile); err != nil {
		return nil, fmt.Errorf("не удалось восстановить данные: %w", err)
	}
	return s.attractionRepo.ListAll(ctx)
}

package service

import (
	"context"
	"fmt"

	"attractions/internal/model"
	"attractions/internal/repository"
)

// ExperienceService содержит бизнес-логику, связанную с впечатлениями.
type ExperienceService struct {
	experienceRepo *repository.ExperienceRepository
}

// NewExperienceService создает новый сервис впечатлений.
func NewExperienceService(experienceRepo *repository.ExperienceRepository) *ExperienceService {
	return &ExperienceService{experienceRepo: experienceRepo}
}

// ProjectExperiences возвращает выбранные столбцы впечатлений достопримечательности.
// Имена столбцов проверяются по списку разрешенных (model.ErrInvalidColumn, model.ErrNoColumns).
func (s *ExperienceService) ProjectExperiences(ctx context.Context, attractionID int, columns []string) ([][]any, error) {
	cols, err := model.ParseExperienceColumns(columns)
	if err != nil {
		return nil, err
	}
	return s.experienceRepo.Project(ctx, attractionID, cols)
}

// FilterByBudget возвращает впечатления, цена которых удовлетворяет сравнению.
func (s *ExperienceService) FilterByBudget(ctx context.Context, price float64, comparison string) ([]model.ExperiencePrice, error) {
	cmp, err := model.ParsePriceComparison(comparison)
	if err != nil {
		return nil, err
	}
	if price < 0 {
		return nil, fmt.Errorf("%w: отрицательная цена", ErrInvalidInput)
	}
	return s.experienceRepo.FilterByPrice(ctx, price, cmp)
}

// FindCompletionists возвращает пользователей, прошедших все впечатления достопримечательности.
func (s *ExperienceService) FindCompletionists(ctx context.Context, attractionID int) ([]model.User, error) {
	return s.experienceRepo.FindCompletionists(ctx, attractionID)
}

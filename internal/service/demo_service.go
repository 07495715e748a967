package service

import (
	"context"
	"fmt"
	"strings"

	"attractions/internal/model"
	"attractions/internal/repository"
)

// DemoService обслуживает демонстрационную таблицу.
type DemoService struct {
	demoRepo *repository.DemoRepository
}

// NewDemoService создает новый сервис демонстрационной таблицы.
func NewDemoService(demoRepo *repository.DemoRepository) *DemoService {
	return &DemoService{demoRepo: demoRepo}
}

func (s *DemoService) List(ctx context.Context) ([]model.DemoRow, error) {
	return s.demoRepo.List(ctx)
}

func (s *DemoService) Insert(ctx context.Context, id int, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: пустое имя", ErrInvalidInput)
	}
	return s.demoRepo.Insert(ctx, id, name)
}

// UpdateName переименовывает все строки с именем oldName; если таких нет: repository.ErrNotFound.
func (s *DemoService) UpdateName(ctx context.Context, oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return fmt.Errorf("%w: пустое новое имя", ErrInvalidInput)
	}
	return s.demoRepo.UpdateName(ctx, oldName, newName)
}

func (s *DemoService) Count(ctx context.Context) (int, error) {
	return s.demoRepo.Count(ctx)
}

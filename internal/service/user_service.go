package service

import (
	"context"
	"fmt"

	"attractions/internal/model"
	"attractions/internal/repository"
)

// UserService ведет пользователей и отметки о пройденных впечатлениях.
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService создает новый сервис пользователей.
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// CreateUser добавляет пользователя; имена хранятся в нижнем регистре.
func (s *UserService) CreateUser(ctx context.Context, name string) (int, error) {
	name = normalize(name)
	if name == "" {
		return 0, fmt.Errorf("%w: пустое имя пользователя", ErrInvalidInput)
	}
	return s.userRepo.Create(ctx, name)
}

// CompleteExperience отмечает, что пользователь прошел впечатление.
func (s *UserService) CompleteExperience(ctx context.Context, userID, experienceID int) error {
	if userID <= 0 || experienceID <= 0 {
		return fmt.Errorf("%w: идентификаторы должны быть положительными", ErrInvalidInput)
	}
	return s.userRepo.RecordCompletion(ctx, userID, experienceID)
}

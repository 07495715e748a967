package repository

import (
	"context"
	"fmt"

	"attractions/internal/database"
	"attractions/internal/model"

	"github.com/jmoiron/sqlx"
)

// UserRepository обеспечивает доступ к пользователям и пройденным ими впечатлениям.
type UserRepository struct {
	pool *database.Pool
}

// NewUserRepository создаёт новый репозиторий пользователей.
func NewUserRepository(pool *database.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// List возвращает всех пользователей по возрастанию ID.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	return database.WithConnResult(ctx, r.pool, func(ctx context.Context, conn *sqlx.Conn) ([]model.User, error) {
		users := []model.User{}
		if err := conn.SelectContext(ctx, &users, "SELECT user_id, user_name FROM users ORDER BY user_id"); err != nil {
			return nil, fmt.Errorf("ошибка при получении пользователей: %w", err)
		}
		return users, nil
	})
}

// Create добавляет пользователя. Возвращает ID созданного пользователя.
func (r *UserRepository) Create(ctx context.Context, name string) (int, error) {
	return database.WithConnResult(ctx, r.pool, func(ctx context.Context, conn *sqlx.Conn) (int, error) {
		var id int
		err := conn.QueryRowxContext(ctx, "INSERT INTO users (user_name) VALUES ($1) RETURNING user_id", name).Scan(&id)
		if isPQCode(err, pqUniqueViolation) {
			return 0, fmt.Errorf("пользователь %q: %w", name, ErrAlreadyExists)
		}
		if err != nil {
			return 0, fmt.Errorf("не удалось создать пользователя: %w", err)
		}
		return id, nil
	})
}

// RecordCompletion отмечает впечатление пройденным. Повторная отметка не является ошибкой.
// Если пользователя или впечатления нет, возвращает ErrNotFound.
func (r *UserRepository) RecordCompletion(ctx context.Context, userID, experienceID int) error {
	return database.WithConn(ctx, r.pool, func(ctx context.Context, conn *sqlx.Conn) error {
		_, err := conn.ExecContext(ctx,
			"INSERT INTO experience_completed (user_id, experience_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			userID, experienceID)
		if isPQCode(err, pqForeignKeyViolation) {
			return fmt.Errorf("пользователь %d или впечатление %d: %w", userID, experienceID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("не удалось отметить впечатление: %w", err)
		}
		return nil
	})
}

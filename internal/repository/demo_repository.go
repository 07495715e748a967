package repository

import (
	"context"
	"fmt"

	"attractions/internal/database"
	"attractions/internal/model"

	"github.com/jmoiron/sqlx"
)

// DemoRepository обеспечивает доступ к демонстрационной таблице.
type DemoRepository struct {
	pool *database.Pool
}

// NewDemoRepository создает новый репозиторий демонстрационной таблицы.
func NewDemoRepository(pool *database.Pool) *DemoRepository {
	return &DemoRepository{pool: pool}
}

// List возвращает все строки таблицы.
func (r *DemoRepository) List(ctx context.Context) ([]model.DemoRow, error) {
	return database.WithConnResult(ctx, r.pool, func(ctx context.Context, conn *sqlx.Conn) ([]model.DemoRow, error) {
		rows := []model.DemoRow{}
		if err := conn.SelectContext(ctx, &rows, "SELECT id, name FROM demotable ORDER BY id"); err != nil {
			return nil, fmt.Errorf("ошибка при чтении demotable: %w", err)
		}
		return rows, nil
	})
}

// Insert добавляет строку.
func (r *DemoRepository) Insert(ctx context.Context, id int, name string) error {
	return database.WithConn(ctx, r.pool, func(ctx context.Context, conn *sqlx.Conn) error {
		res, err := conn.ExecContext(ctx, "INSERT INTO demotable (id, name) VALUES ($1, $2)", id, name)
		if err != nil {
			return fmt.Errorf("не удалось добавить строку в demotable: %w", err)
		}
		return expectAffected(res)
	})
}

// UpdateName переименовывает все строки с именем oldName.
func (r *DemoRepository) UpdateName(ctx context.Context, oldName, newName string) error {
	return database.WithConn(ctx, r.pool, func(ctx context.Context, conn *sqlx.Conn) error {
		res, err := conn.ExecContext(ctx, "UPDATE demotable SET name=$1 WHERE name=$2", newName, oldName)
		if err != nil {
			return fmt.Errorf("не удалось обновить demotable: %w", err)
		}
		return expectAffected(res)
	})
}

// Count возвращает число строк.
func (r *DemoRepository) Count(ctx context.Context) (int, error) {
	return database.WithConnResult(ctx, r.pool, func(ctx context.Context, conn *sqlx.Conn) (int, error) {
		var count int
		if err := conn.GetContext(ctx, &count, "SELECT COUNT(*) FROM demotable"); err != nil {
			return 0, fmt.Errorf("ошибка при подсчете строк demotable: %w", err)
		}
		return count, nil
	})
}

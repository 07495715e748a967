package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"attractions/internal/database"
	"attractions/internal/model"

	"github.com/jmoiron/sqlx"
)

// ExperienceRepository обеспечивает доступ к впечатлениям при достопримечательностях.
type ExperienceRepository struct {
	pool *database.Pool
}

// NewExperienceRepository создает новый репозиторий для впечатлений.
func NewExperienceRepository(pool *database.Pool) *ExperienceRepository {
	return &ExperienceRepository{pool: pool}
}

// Project возвращает выбранные столбцы впечатлений достопримечательности.
// Значения в каждой строке идут в порядке columns. Имена столбцов берутся только
// из model.ExperienceColumn, поэтому их можно подставлять в текст запроса.
func (r *ExperienceRepository) Project(ctx context.Context, attractionID int, columns []model.ExperienceColumn) ([][]any, error) {
	if len(columns) == 0 {
		return nil, model.ErrNoColumns
	}
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = string(c)
	}
	query := "SELECT " + strings.Join(names, ", ") +
		" FROM experience_offered WHERE attraction_id=$1 ORDER BY experience_id"

	return database.WithConnResult(ctx, r.pool, func(ctx context.Context, conn *sqlx.Conn) ([][]any, error) {
		rows, err := conn.QueryxContext(ctx, query, attractionID)
		if err != nil {
			return nil, fmt.Errorf("ошибка при проекции впечатлений: %w", err)
		}
		defer rows.Close()

		result := [][]any{}
		for rows.Next() {
			values, err := rows.SliceScan()
			if err != nil {
				return nil, fmt.Errorf("ошибка при чтении строки впечатления: %w", err)
			}
			for i, v := range values {
				values[i] = normalizeValue(v)
			}
			result = append(result, values)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("ошибка при проекции впечатлений: %w", err)
		}
		return result, nil
	})
}

// FilterByPrice возвращает впечатления, цена которых удовлетворяет сравнению с price.
func (r *ExperienceRepository) FilterByPrice(ctx context.Context, price float64, cmp model.PriceComparison) ([]model.ExperiencePrice, error) {
	query := "SELECT experience_id, experience_name, price::float8 AS price FROM experience_offered WHERE price " +
		string(cmp) + " $1 ORDER BY price, experience_id"

	return database.WithConnResult(ctx, r.pool, func(ctx context.Context, conn *sqlx.Conn) ([]model.ExperiencePrice, error) {
		experiences := []model.ExperiencePrice{}
		if err := conn.SelectContext(ctx, &experiences, query, price); err != nil {
			return nil, fmt.Errorf("ошибка при фильтрации впечатлений по цене: %w", err)
		}
		return experiences, nil
	})
}

// FindCompletionists возвращает пользователей, прошедших все впечатления достопримечательности.
// Для достопримечательности без впечатлений список пуст.
func (r *ExperienceRepository) FindCompletionists(ctx context.Context, attractionID int) ([]model.User, error) {
	return database.WithConnResult(ctx, r.pool, func(ctx context.Context, conn *sqlx.Conn) ([]model.User, error) {
		users := []model.User{}
		err := conn.SelectContext(ctx, &users,
			`SELECT u.user_id, u.user_name
			 FROM users u
			 WHERE EXISTS (SELECT 1 FROM experience_offered e WHERE e.attraction_id = $1)
			 AND NOT EXISTS (
			     SELECT e.experience_id FROM experience_offered e WHERE e.attraction_id = $1
			     EXCEPT
			     SELECT c.experience_id FROM experience_completed c WHERE c.user_id = u.user_id
			 )
			 ORDER BY u.user_id`, attractionID)
		if err != nil {
			return nil, fmt.Errorf("ошибка при поиске пользователей: %w", err)
		}
		return users, nil
	})
}

// normalizeValue приводит значения драйвера к виду, пригодному для JSON:
// lib/pq отдает NUMERIC и текст как []byte.
func normalizeValue(v any) any {
	b, ok := v.([]byte)
	if !ok {
		return v
	}
	s := string(b)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

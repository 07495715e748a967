package repository

import (
	"context"
	"fmt"

	"attractions/internal/database"
	"attractions/internal/model"

	"github.com/jmoiron/sqlx"
)

// AttractionRepository обеспечивает доступ к данным достопримечательностей в базе данных.
type AttractionRepository struct {
	pool      *database.Pool
	locations *LocationRepository
}

// NewAttractionRepository создает новый репозиторий для достопримечательностей.
func NewAttractionRepository(pool *database.Pool, locations *LocationRepository) *AttractionRepository {
	return &AttractionRepository{pool: pool, locations: locations}
}

// ListByLocation возвращает достопримечательности (id, название) заданных провинции и города.
// Если совпадений нет, возвращается пустой список, а не ошибка.
func (r *AttractionRepository) ListByLocation(ctx context.Context, province, city string) ([]model.AttractionSummary, error) {
	return database.WithConnResult(ctx, r.pool, func(ctx context.Context, conn *sqlx.Conn) ([]model.AttractionSummary, error) {
		attractions := []model.AttractionSummary{}
		err := conn.SelectContext(ctx, &attractions,
			`SELECT t2.attraction_id, t2.attraction_name
			 FROM tourist_attractions1 t1
			 JOIN tourist_attractions2 t2 ON t1.latitude = t2.latitude AND t1.longitude = t2.longitude
			 WHERE t1.province = $1 AND t1.city = $2
			 ORDER BY t2.attraction_id`, province, city)
		if err != nil {
			return nil, fmt.Errorf("ошибка при поиске достопримечательностей: %w", err)
		}
		return attractions, nil
	})
}

// ListAll возвращает все достопримечательности.
func (r *AttractionRepository) ListAll(ctx context.Context) ([]model.AttractionSummary, error) {
	return database.WithConnResult(ctx, r.pool, func(ctx context.Context, conn *sqlx.Conn) ([]model.AttractionSummary, error) {
		attractions := []model.AttractionSummary{}
		err := conn.SelectContext(ctx, &attractions,
			"SELECT attraction_id, attraction_name FROM tourist_attractions2 ORDER BY attraction_id")
		if err != nil {
			return nil, fmt.Errorf("ошибка при получении списка достопримечательностей: %w", err)
		}
		return attractions, nil
	})
}

// Add добавляет достопримечательность одной транзакцией: локация -> координаты -> сама запись.
// Возвращает сгенерированный идентификатор.
func (r *AttractionRepository) Add(ctx context.Context, a model.NewAttraction) (int, error) {
	return database.WithTx(ctx, r.pool, func(ctx context.Context, tx *sqlx.Tx) (int, error) {
		if err := r.locations.EnsureCoordinate(ctx, tx, a.Coordinate()); err != nil {
			return 0, err
		}
		var id int
		err := tx.QueryRowxContext(ctx,
			`INSERT INTO tourist_attractions2
			 (attraction_name, attraction_desc, category, opening_hour, closing_hour, latitude, longitude)
			 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING attraction_id`,
			a.Name, a.Description, a.Category, a.OpeningHour, a.ClosingHour, a.Latitude, a.Longitude,
		).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("не удалось добавить достопримечательность: %w", err)
		}
		return id, nil
	})
}

// Update меняет описательные поля достопримечательности. Пустые поля оставляют
// сохраненное значение, поэтому переименование не затирает описание и часы работы.
func (r *AttractionRepository) Update(ctx context.Context, u model.AttractionUpdate) error {
	return database.WithConn(ctx, r.pool, func(ctx context.Context, conn *sqlx.Conn) error {
		res, err := conn.ExecContext(ctx,
			`UPDATE tourist_attractions2
			 SET attraction_name = COALESCE(NULLIF($1, ''), attraction_name),
			     attraction_desc = COALESCE(NULLIF($2, ''), attraction_desc),
			     category = COALESCE(NULLIF($3, ''), category),
			     opening_hour = COALESCE(NULLIF($4, ''), opening_hour),
			     closing_hour = COALESCE(NULLIF($5, ''), closing_hour)
			 WHERE attraction_id=$6`,
			u.Name, u.Description, u.Category, u.OpeningHour, u.ClosingHour, u.ID)
		if err != nil {
			return fmt.Errorf("не удалось обновить достопримечательность: %w", err)
		}
		return expectAffected(res)
	})
}

// Delete удаляет достопримечательность; связанные впечатления удаляются каскадно.
func (r *AttractionRepository) Delete(ctx context.Context, id int) error {
	return database.WithConn(ctx, r.pool, func(ctx context.Context, conn *sqlx.Conn) error {
		res, err := conn.ExecContext(ctx, "DELETE FROM tourist_attractions2 WHERE attraction_id=$1", id)
		if err != nil {
			return fmt.Errorf("не удалось удалить достопримечательность: %w", err)
		}
		return expectAffected(res)
	})
}

// CountByLocation возвращает число достопримечательностей в городе.
func (r *AttractionRepository) CountByLocation(ctx context.Context, province, city string) (int, error) {
	return database.WithConnResult(ctx, r.pool, func(ctx context.Context, conn *sqlx.Conn) (int, error) {
		var count int
		err := conn.GetContext(ctx, &count,
			`SELECT COUNT(*)
			 FROM tourist_attractions1 t1
			 JOIN tourist_attractions2 t2 ON t1.latitude = t2.latitude AND t1.longitude = t2.longitude
			 WHERE t1.province = $1 AND t1.city = $2`, province, city)
		if err != nil {
			return 0, fmt.Errorf("ошибка при подсчете достопримечательностей: %w", err)
		}
		return count, nil
	})
}

// CountPerCity возвращает города, где достопримечательностей больше minCount.
func (r *AttractionRepository) CountPerCity(ctx context.Context, minCount int) ([]model.CityCount, error) {
	return database.WithConnResult(ctx, r.pool, func(ctx context.Context, conn *sqlx.Conn) ([]model.CityCount, error) {
		counts := []model.CityCount{}
		err := conn.SelectContext(ctx, &counts,
			`SELECT t1.province, t1.city, COUNT(*) AS attraction_count
			 FROM tourist_attractions1 t1
			 JOIN tourist_attractions2 t2 ON t1.latitude = t2.latitude AND t1.longitude = t2.longitude
			 GROUP BY t1.province, t1.city
			 HAVING COUNT(*) > $1
			 ORDER BY t1.province, t1.city`, minCount)
		if err != nil {
			return nil, fmt.Errorf("ошибка при подсчете достопримечательностей по городам: %w", err)
		}
		return counts, nil
	})
}

// AveragePerProvince возвращает среднее число достопримечательностей на город для каждой провинции.
func (r *AttractionRepository) AveragePerProvince(ctx context.Context) ([]model.ProvinceAverage, error) {
	return database.WithConnResult(ctx, r.pool, func(ctx context.Context, conn *sqlx.Conn) ([]model.ProvinceAverage, error) {
		averages := []model.ProvinceAverage{}
		err := conn.SelectContext(ctx, &averages,
			`SELECT per_city.province, AVG(per_city.attraction_count)::float8 AS average
			 FROM (
			     SELECT t1.province, t1.city, COUNT(*) AS attraction_count
			     FROM tourist_attractions1 t1
			     JOIN tourist_attractions2 t2 ON t1.latitude = t2.latitude AND t1.longitude = t2.longitude
			     GROUP BY t1.province, t1.city
			 ) per_city
			 GROUP BY per_city.province
			 ORDER BY per_city.province`)
		if err != nil {
			return nil, fmt.Errorf("ошибка при расчете среднего по провинциям: %w", err)
		}
		return averages, nil
	})
}

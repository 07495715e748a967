package repository

import (
	"context"
	"fmt"

	"attractions/internal/database"
	"attractions/internal/model"

	"github.com/jmoiron/sqlx"
)

// LocationRepository обеспечивает доступ к локациям и координатам достопримечательностей.
type LocationRepository struct {
	pool *database.Pool
}

// NewLocationRepository создает новый репозиторий для локаций.
func NewLocationRepository(pool *database.Pool) *LocationRepository {
	return &LocationRepository{pool: pool}
}

// List возвращает все локации, упорядоченные по провинции и городу.
func (r *LocationRepository) List(ctx context.Context) ([]model.Location, error) {
	return database.WithConnResult(ctx, r.pool, func(ctx context.Context, conn *sqlx.Conn) ([]model.Location, error) {
		locations := []model.Location{}
		err := conn.SelectContext(ctx, &locations, "SELECT province, city FROM locations ORDER BY province, city")
		if err != nil {
			return nil, fmt.Errorf("ошибка при получении списка локаций: %w", err)
		}
		return locations, nil
	})
}

// EnsureLocation создает локацию, если ее еще нет.
func (r *LocationRepository) EnsureLocation(ctx context.Context, q queryExecer, loc model.Location) error {
	_, err := q.ExecContext(ctx,
		"INSERT INTO locations (province, city) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		loc.Province, loc.City)
	if err != nil {
		return fmt.Errorf("не удалось добавить локацию: %w", err)
	}
	return nil
}

// EnsureCoordinate создает локацию и точку, если их еще нет.
// Если точка уже привязана к другой локации, возвращает ErrCoordinateConflict.
func (r *LocationRepository) EnsureCoordinate(ctx context.Context, q queryExecer, c model.Coordinate) error {
	if err := r.EnsureLocation(ctx, q, c.Location()); err != nil {
		return err
	}
	_, err := q.ExecContext(ctx,
		`INSERT INTO tourist_attractions1 (latitude, longitude, province, city)
		 VALUES ($1, $2, $3, $4) ON CONFLICT (latitude, longitude) DO NOTHING`,
		c.Latitude, c.Longitude, c.Province, c.City)
	if err != nil {
		return fmt.Errorf("не удалось добавить координаты: %w", err)
	}

	var existing model.Coordinate
	err = sqlx.GetContext(ctx, q, &existing,
		"SELECT latitude, longitude, province, city FROM tourist_attractions1 WHERE latitude=$1 AND longitude=$2",
		c.Latitude, c.Longitude)
	if err != nil {
		return fmt.Errorf("ошибка при проверке координат: %w", err)
	}
	if existing.Location() != c.Location() {
		return fmt.Errorf("%w: %s, %s", ErrCoordinateConflict, existing.Province, existing.City)
	}
	return nil
}

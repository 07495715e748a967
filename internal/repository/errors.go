package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	// ErrNotFound: запрос не затронул ни одной строки.
	ErrNotFound = errors.New("запись не найдена")
	// ErrCoordinateConflict: точка уже зарегистрирована за другой локацией.
	ErrCoordinateConflict = errors.New("координаты уже привязаны к другой локации")
	// ErrAlreadyExists: нарушено ограничение уникальности.
	ErrAlreadyExists = errors.New("запись уже существует")
)

// Коды ошибок PostgreSQL.
const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

// queryExecer объединяет соединение из пула и транзакцию.
type queryExecer interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
}

// expectAffected возвращает ErrNotFound, если запрос не изменил ни одной строки.
func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("не удалось получить число измененных строк: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isPQCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}

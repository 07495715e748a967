// Package database владеет пулом соединений с PostgreSQL и предоставляет
// обертки для выполнения единицы работы на одном соединении или в транзакции.
package database

import (
	"context"
	"fmt"
	"log"

	"attractions/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL драйвер
)

// Pool: пул соединений, которым явно владеет вызывающий код (main).
type Pool struct {
	db *sqlx.DB
}

// Open создает пул по настройкам и проверяет подключение.
func Open(ctx context.Context, dbCfg config.DBConfig, poolCfg config.PoolConfig) (*Pool, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dbCfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к базе данных: %w", err)
	}
	// database/sql растит пул по одному соединению по мере надобности.
	db.SetMaxOpenConns(poolCfg.MaxOpen)
	db.SetMaxIdleConns(poolCfg.MinIdle)
	db.SetConnMaxIdleTime(poolCfg.IdleTimeout)
	log.Printf("Пул соединений запущен (max=%d, idle=%d)", poolCfg.MaxOpen, poolCfg.MinIdle)
	return NewPool(db), nil
}

// NewPool оборачивает уже открытое соединение sqlx.
func NewPool(db *sqlx.DB) *Pool {
	return &Pool{db: db}
}

// DB возвращает нижележащий *sqlx.DB.
func (p *Pool) DB() *sqlx.DB {
	return p.db
}

// Ping проверяет, что база данных доступна.
func (p *Pool) Ping(ctx context.Context) error {
	return WithConn(ctx, p, func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.PingContext(ctx)
	})
}

// Close закрывает пул. Уже начатые запросы завершаются, новые не принимаются.
func (p *Pool) Close() error {
	if err := p.db.Close(); err != nil {
		return fmt.Errorf("ошибка при закрытии пула: %w", err)
	}
	log.Println("Пул закрыт")
	return nil
}

// WithConn берет одно соединение из пула, выполняет fn и всегда возвращает соединение в пул.
func WithConn(ctx context.Context, p *Pool, fn func(ctx context.Context, conn *sqlx.Conn) error) error {
	_, err := WithConnResult(ctx, p, func(ctx context.Context, conn *sqlx.Conn) (struct{}, error) {
		return struct{}{}, fn(ctx, conn)
	})
	return err
}

// WithConnResult: то же, что WithConn, но единица работы возвращает результат.
func WithConnResult[T any](ctx context.Context, p *Pool, fn func(ctx context.Context, conn *sqlx.Conn) (T, error)) (T, error) {
	var zero T
	conn, err := p.db.Connx(ctx)
	if err != nil {
		return zero, fmt.Errorf("не удалось получить соединение из пула: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Printf("Ошибка при возврате соединения в пул: %v", cerr)
		}
	}()
	return fn(ctx, conn)
}

// WithTx выполняет fn в транзакции на одном соединении: commit при успехе, rollback при ошибке или панике.
func WithTx[T any](ctx context.Context, p *Pool, fn func(ctx context.Context, tx *sqlx.Tx) (T, error)) (T, error) {
	return WithConnResult(ctx, p, func(ctx context.Context, conn *sqlx.Conn) (res T, err error) {
		tx, err := conn.BeginTxx(ctx, nil)
		if err != nil {
			return res, fmt.Errorf("не удалось начать транзакцию: %w", err)
		}
		defer func() {
			if r := recover(); r != nil {
				if rerr := tx.Rollback(); rerr != nil {
					log.Printf("Ошибка отката транзакции: %v", rerr)
				}
				panic(r)
			}
			if err != nil {
				if rerr := tx.Rollback(); rerr != nil {
					log.Printf("Ошибка отката транзакции: %v", rerr)
				}
			}
		}()

		res, err = fn(ctx, tx)
		if err != nil {
			return res, err
		}
		if err = tx.Commit(); err != nil {
			return res, fmt.Errorf("не удалось зафиксировать транзакцию: %w", err)
		}
		return res, nil
	})
}

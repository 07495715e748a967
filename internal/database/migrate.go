package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/jmoiron/sqlx"
)

// Migrate применяет все *.sql из каталога dir в лексическом порядке.
// Каждый файл выполняется в собственной транзакции; ошибка одного файла
// логируется и не мешает применению остальных.
func (p *Pool) Migrate(ctx context.Context, dir string) (applied int, err error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return 0, fmt.Errorf("некорректный каталог миграций: %w", err)
	}
	sort.Strings(files)
	for _, file := range files {
		if err := p.ExecScript(ctx, file); err != nil {
			log.Printf("Миграция %s завершилась ошибкой: %v", file, err)
			continue
		}
		applied++
		log.Printf("Миграция %s применена.", file)
	}
	return applied, nil
}

// ExecScript выполняет SQL-скрипт из файла одной транзакцией.
func (p *Pool) ExecScript(ctx context.Context, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("не удалось прочитать %s: %w", path, err)
	}
	_, err = WithTx(ctx, p, func(ctx context.Context, tx *sqlx.Tx) (struct{}, error) {
		_, err := tx.ExecContext(ctx, string(content))
		return struct{}{}, err
	})
	return err
}

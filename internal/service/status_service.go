package service

import (
	"context"
	"log"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// StatusService проверяет доступность базы данных.
type StatusService struct {
	db pinger
}

// NewStatusService создает сервис проверки подключения.
func NewStatusService(db pinger) *StatusService {
	return &StatusService{db: db}
}

// Check возвращает true, если из пула удалось получить соединение.
func (s *StatusService) Check(ctx context.Context) bool {
	if err := s.db.Ping(ctx); err != nil {
		log.Printf("База данных недоступна: %v", err)
		return false
	}
	return true
}

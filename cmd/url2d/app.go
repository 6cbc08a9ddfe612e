package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Popolzen/url2/internal/audit"
	"github.com/Popolzen/url2/internal/logger"
	"github.com/Popolzen/url2/internal/repository"
)

type App struct {
	server    *http.Server
	repo      repository.PresetRepository
	publisher *audit.Publisher
}

// Close закрывает все ресурсы
func (a *App) Close() error {
	logger.Log().Info("Закрываем репозиторий...")
	if err := a.repo.Close(); err != nil {
		logger.Log().Errorw("Ошибка закрытия репозитория", "error", err)
	}

	logger.Log().Info("Закрываем audit publisher...")
	if err := a.publisher.Close(); err != nil {
		logger.Log().Errorw("Ошибка закрытия publisher", "error", err)
	}

	return nil
}

// Shutdown выполняет graceful shutdown с таймаутом
func (a *App) Shutdown(ctx context.Context) error {
	logger.Log().Info("Останавливаем HTTP сервер...")
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка остановки сервера: %w", err)
	}
	return a.Close()
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Popolzen/url2/internal/audit"
	"github.com/Popolzen/url2/internal/config"
	"github.com/Popolzen/url2/internal/db"
	"github.com/Popolzen/url2/internal/handler"
	"github.com/Popolzen/url2/internal/logger"
	"github.com/Popolzen/url2/internal/repository"
	"github.com/Popolzen/url2/internal/repository/database"
	"github.com/Popolzen/url2/internal/repository/filestorage"
	"github.com/Popolzen/url2/internal/repository/memory"
	"github.com/Popolzen/url2/internal/service/rewriter"
	"github.com/gin-gonic/gin"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg := config.NewConfig()

	// Инициализируем логгер
	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatal("Не удалось инициализировать логгер:", err)
	}
	defer logger.Close()

	if err := run(cfg); err != nil {
		logger.Log().Errorw("Сервис остановлен с ошибкой", "error", err)
	}
}

func run(cfg *config.Config) error {
	gin.SetMode(gin.ReleaseMode)
	dbCfg := db.NewDBConfig(*cfg)

	publisher := initAudit(cfg)

	repo, err := initRepository(cfg, dbCfg)
	if err != nil {
		return err
	}

	urlService := rewriter.NewURLService(repo)

	var pinger handler.Pinger
	if dbCfg.DBurl != "" {
		pinger = &dbCfg
	}

	app := &App{
		server: &http.Server{
			Addr:    cfg.GetAddress(),
			Handler: setupRouter(urlService, pinger, publisher),
		},
		repo:      repo,
		publisher: publisher,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Log().Infow("url2d запущен", "addr", cfg.GetAddress())
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		app.Close()
		return err
	case <-ctx.Done():
		logger.Log().Info("Получен сигнал остановки, завершаем работу...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.Shutdown(shutdownCtx)
}

func printBuildInfo() {
	version := "N/A"
	date := "N/A"
	commit := "N/A"

	if buildVersion != "" {
		version = buildVersion
	}
	if buildDate != "" {
		date = buildDate
	}
	if buildCommit != "" {
		commit = buildCommit
	}

	fmt.Printf("Build version: %s\n", version)
	fmt.Printf("Build date: %s\n", date)
	fmt.Printf("Build commit: %s\n", commit)
}

// initRepository выбирает хранилище пресетов в зависимости от конфигурации
func initRepository(cfg *config.Config, dbCfg db.DBConfig) (repository.PresetRepository, error) {
	switch {
	case dbCfg.DBurl != "":
		dbInstance, err := db.NewDataBase(dbCfg)
		if err != nil {
			return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
		}
		if err := dbInstance.Migrate(); err != nil {
			return nil, fmt.Errorf("ошибка выполнения миграций: %w", err)
		}
		logger.Log().Info("Используется БД репозиторий")
		return database.NewPresetRepository(dbInstance.DB), nil
	case cfg.GetFilePath() != "":
		logger.Log().Infow("Используется файл", "path", cfg.GetFilePath())
		return filestorage.NewPresetRepository(cfg.GetFilePath()), nil
	default:
		logger.Log().Info("Используется память")
		return memory.NewPresetRepository(), nil
	}
}

// initAudit - функция инициализации аудита
func initAudit(cfg *config.Config) *audit.Publisher {
	publisher := audit.NewPublisher()

	// Файловый observer
	if cfg.GetAuditFile() != "" {
		fileObs, err := audit.NewFileObserver(cfg.GetAuditFile())
		if err != nil {
			logger.Log().Warnw("Не удалось создать file observer", "error", err)
		} else {
			publisher.Subscribe(fileObs)
			logger.Log().Infow("Аудит в файл", "path", cfg.GetAuditFile())
		}
	}

	// HTTP observer
	if cfg.GetAuditURL() != "" {
		httpObs, err := audit.NewHTTPObserver(cfg.GetAuditURL())
		if err != nil {
			logger.Log().Warnw("Не удалось создать http observer", "error", err)
		} else {
			publisher.Subscribe(httpObs)
			logger.Log().Infow("Аудит на сервер", "url", cfg.GetAuditURL())
		}
	}

	return publisher
}

// setupRouter настраивает роуты и middleware
func setupRouter(urlService rewriter.URLService, pinger handler.Pinger, auditPub *audit.Publisher) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestResponseLogger())

	r.POST("/api/rewrite", handler.RewriteHandler(urlService, auditPub))
	r.GET("/api/lookup", handler.LookupHandler(urlService))
	r.POST("/api/presets", handler.CreatePresetHandler(urlService))
	r.GET("/api/presets", handler.ListPresetsHandler(urlService))
	r.GET("/api/presets/:id", handler.GetPresetHandler(urlService))
	r.POST("/api/presets/:id/apply", handler.ApplyPresetHandler(urlService, auditPub))

	r.GET("/ping", handler.PingHandler(pinger))
	return r
}

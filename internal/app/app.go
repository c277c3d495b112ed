// Package app содержит основную структуру приложения и логику инициализации.
// Собирает сервис аудита, HTTP роутер, middleware и метрики в один сервер.
package app

import (
	"context"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/InQaaaaGit/lighthouse_runner.git/internal/buildinfo"
	"github.com/InQaaaaGit/lighthouse_runner.git/internal/config"
	"github.com/InQaaaaGit/lighthouse_runner.git/internal/handler"
	"github.com/InQaaaaGit/lighthouse_runner.git/internal/metrics"
	"github.com/InQaaaaGit/lighthouse_runner.git/internal/server"
	"github.com/InQaaaaGit/lighthouse_runner.git/internal/service"
)

// App представляет сервис пакетного аудита страниц.
// Инкапсулирует конфигурацию, HTTP роутер, логгер и обработчики запросов.
type App struct {
	config   *config.Config       // Конфигурация приложения
	router   *chi.Mux             // HTTP роутер для обработки запросов
	logger   *zap.Logger          // Логгер для записи событий приложения
	handler  *handler.Handler     // Обработчики HTTP запросов
	registry *prometheus.Registry // Реестр метрик для /metrics
}

// NewApp создает и инициализирует новый экземпляр приложения.
// Настраивает метрики, сервисный слой, обработчики и маршруты.
//
// Параметры:
//   - cfg: проверенная конфигурация приложения
//   - info: информация о сборке для метрики build_info
//   - logger: логгер приложения
func NewApp(cfg *config.Config, info *buildinfo.Info, logger *zap.Logger) *App {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		info.Collector(),
	)

	auditService := service.NewAuditService(cfg, metrics.New(registry), logger)
	return NewAppWithService(cfg, auditService, registry, logger)
}

// NewAppWithService собирает приложение вокруг готового сервиса аудита.
func NewAppWithService(cfg *config.Config, svc service.AuditService, registry *prometheus.Registry, logger *zap.Logger) *App {
	a := &App{
		config:   cfg,
		router:   chi.NewRouter(),
		logger:   logger,
		handler:  handler.NewHandler(svc, handler.OptionsFromConfig(cfg), logger),
		registry: registry,
	}
	a.setupRoutes()
	return a
}

// Run запускает HTTP или HTTPS сервер приложения в зависимости от конфигурации.
// Блокирующий вызов: после отмены ctx сервер дожидается активных запросов и останавливается.
func (a *App) Run(ctx context.Context) error {
	return server.NewHTTPServer(a.GetServer(), a.config, a.logger).Run(ctx)
}

// Router возвращает настроенный роутер приложения
func (a *App) Router() http.Handler {
	return a.router
}

// setupRoutes настраивает HTTP маршруты и middleware для приложения.
func (a *App) setupRoutes() {
	// Middleware
	a.router.Use(chimiddleware.RequestID)
	a.router.Use(a.handler.WithLogging)
	a.router.Use(a.handler.WithGzip)
	if a.config.EnableCORS {
		a.router.Use(a.handler.WithCORS)
	}

	// Routes. Метод проверяет сам обработчик, чтобы ответить JSON-ошибкой
	a.router.HandleFunc("/run-lighthouse", a.handler.HandleRunLighthouse)
	a.router.HandleFunc("/api/run-lighthouse", a.handler.HandleRunLighthouse)
	a.router.Get("/ping", a.handler.HandlePing)
	// Сжатие делает GzipMiddleware
	a.router.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{DisableCompression: true}))

	// Профилирование
	a.router.Mount("/debug/pprof", http.DefaultServeMux)
}

// GetServer создает и возвращает настроенный HTTP сервер.
// Таймаут записи берется из конфигурации: пакет аудита может идти минутами.
func (a *App) GetServer() *http.Server {
	return &http.Server{
		Addr:              a.config.ServerAddress,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      a.config.WriteTimeout,
		IdleTimeout:       120 * time.Second,
	}
}

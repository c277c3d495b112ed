package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/InQaaaaGit/lighthouse_runner.git/internal/app"
	"github.com/InQaaaaGit/lighthouse_runner.git/internal/buildinfo"
	"github.com/InQaaaaGit/lighthouse_runner.git/internal/server"
)

// Задаются при сборке: go build -ldflags "-X main.buildVersion=v1.0.0 ..."
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := buildinfo.NewInfo(buildVersion, buildDate, buildCommit)
	info.Print(os.Stdout)

	// Переменные из .env не перекрывают уже заданное окружение
	if err := loadDotEnv(".env"); err != nil {
		log.Fatalf("Error loading .env: %v", err)
	}

	// Инициализация логгера
	logger, cleanup := server.InitLogger()
	defer cleanup()

	// Инициализация конфигурации
	cfg := server.InitConfig(logger)
	logger.Info("Starting lighthouse runner", info.Fields()...)

	// Создание приложения
	application := app.NewApp(cfg, info, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	// Запуск сервера
	if err := application.Run(ctx); err != nil {
		logger.Error("Server error", zap.Error(err))
		return
	}
	logger.Info("Server stopped")
}

// loadDotEnv загружает переменные из файла path, если он существует
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

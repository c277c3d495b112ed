// Package audit запускает внешний движок Lighthouse против одного URL.
package audit

import (
	"context"
	"errors"
	"fmt"

	"github.com/InQaaaaGit/lighthouse_runner.git/internal/browser"
	"github.com/InQaaaaGit/lighthouse_runner.git/internal/models"
	"go.uber.org/zap"
)

// Invoker выполняет один аудит: запускает браузер, прогоняет движок и гарантированно завершает браузер
type Invoker struct {
	launcher browser.Launcher
	engine   Engine
	flags    Flags
	logger   *zap.Logger
}

// NewInvoker создает новый Invoker
func NewInvoker(launcher browser.Launcher, engine Engine, flags Flags, logger *zap.Logger) *Invoker {
	return &Invoker{
		launcher: launcher,
		engine:   engine,
		flags:    flags,
		logger:   logger,
	}
}

// Run выполняет аудит URL и возвращает сырой JSON-отчет.
// Любая ошибка возвращается как *Failure; браузер завершается до ее возврата.
func (i *Invoker) Run(ctx context.Context, url string) (data []byte, err error) {
	lease, err := i.launcher.Launch(ctx)
	if err != nil {
		return nil, &Failure{URL: url, Stage: StageLaunch, Err: err}
	}
	defer func() {
		if releaseErr := lease.Release(); releaseErr != nil {
			i.logger.Warn("Error releasing browser",
				zap.String("url", url),
				zap.String("lease_id", lease.ID),
				zap.Error(releaseErr))
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = &Failure{URL: url, Stage: StageAudit, Err: fmt.Errorf("engine panic: %v", r)}
		}
	}()

	i.logger.Debug("Running audit",
		zap.String("url", url),
		zap.String("lease_id", lease.ID),
		zap.Int("port", lease.Port))

	data, err = i.engine.Audit(ctx, url, lease.Port, i.flags)
	if err != nil {
		if isContextError(err) {
			i.logger.Warn("Audit interrupted", zap.String("url", url), zap.Error(err))
		}
		return nil, &Failure{URL: url, Stage: StageAudit, Err: err}
	}

	report, err := models.ParseReport(data)
	if err != nil {
		return nil, &Failure{URL: url, Stage: StageReport, Err: err}
	}
	if report.Failed() {
		msg := report.RuntimeError.Message
		if msg == "" {
			msg = report.RuntimeError.Code
		}
		return nil, &Failure{URL: url, Stage: StageReport, Err: errors.New(msg)}
	}

	return data, nil
}

// Check проверяет готовность движка аудита
func (i *Invoker) Check(ctx context.Context) error {
	return i.engine.Check(ctx)
}

// Package service содержит пакетную обработку URL: последовательный аудит
// с повторами и сборку строк отчета.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/InQaaaaGit/lighthouse_runner.git/internal/metrics"
	"github.com/InQaaaaGit/lighthouse_runner.git/internal/models"
	"github.com/InQaaaaGit/lighthouse_runner.git/internal/retry"
)

// Auditor выполняет аудит одного URL и возвращает сырой JSON-отчет
type Auditor interface {
	Run(ctx context.Context, url string) ([]byte, error)
	Check(ctx context.Context) error
}

// AuditService определяет интерфейс сервиса пакетного аудита
type AuditService interface {
	ProcessBatch(ctx context.Context, urls []string) []models.Row
	CheckConnection(ctx context.Context) error
}

// Orchestrator обрабатывает список URL строго по порядку, по одному
type Orchestrator struct {
	auditor    Auditor
	policy     retry.Policy
	categories []models.Category
	recorder   metrics.Recorder
	logger     *zap.Logger
}

// NewOrchestrator создает новый Orchestrator
func NewOrchestrator(auditor Auditor, policy retry.Policy, categories []models.Category, recorder metrics.Recorder, logger *zap.Logger) *Orchestrator {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	if len(categories) == 0 {
		categories = models.DefaultCategories()
	}
	return &Orchestrator{
		auditor:    auditor,
		policy:     policy,
		categories: categories,
		recorder:   recorder,
		logger:     logger,
	}
}

// ProcessBatch проводит аудит всех URL и возвращает по одной строке на URL в исходном порядке.
// Ошибка одного URL превращается в строку {url, error} и не прерывает пакет.
func (o *Orchestrator) ProcessBatch(ctx context.Context, urls []string) []models.Row {
	logger := o.logger.With(zap.String("batch_id", uuid.New().String()))
	logger.Info("Starting batch", zap.Int("urls", len(urls)), zap.Strings("list", urls))
	o.recorder.ObserveBatch(len(urls))

	start := time.Now()
	rows := make([]models.Row, 0, len(urls))
	failed := 0
	for i, url := range urls {
		row := o.processURL(ctx, logger.With(zap.Int("index", i)), url)
		if row.IsError() {
			failed++
		}
		rows = append(rows, row)
	}

	logger.Info("Batch finished",
		zap.Int("urls", len(urls)),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(start)))
	return rows
}

// processURL выполняет аудит одного URL с повторами и проецирует отчет в строку
func (o *Orchestrator) processURL(ctx context.Context, logger *zap.Logger, url string) models.Row {
	start := time.Now()

	var data []byte
	err := o.policy.Do(ctx, func(ctx context.Context) error {
		var err error
		data, err = o.auditor.Run(ctx, url)
		return err
	}, func(err error, attempt int, delay time.Duration) {
		o.recorder.IncRetry()
		logger.Warn("Audit attempt failed, retrying",
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err))
	})
	if err != nil {
		o.recorder.ObserveAudit(metrics.OutcomeFailure, time.Since(start))
		logger.Error("Error processing URL", zap.String("url", url), zap.Error(err))
		return models.NewErrorRow(url, err.Error())
	}

	report, err := models.ParseReport(data)
	if err != nil {
		o.recorder.ObserveAudit(metrics.OutcomeFailure, time.Since(start))
		logger.Error("Error parsing report", zap.String("url", url), zap.Error(err))
		return models.NewErrorRow(url, err.Error())
	}

	o.recorder.ObserveAudit(metrics.OutcomeSuccess, time.Since(start))
	logger.Info("Metrics collected", zap.String("url", url))
	return report.ToRow(url, o.categories)
}

// CheckConnection проверяет готовность движка аудита
func (o *Orchestrator) CheckConnection(ctx context.Context) error {
	return o.auditor.Check(ctx)
}

var _ AuditService = (*Orchestrator)(nil)

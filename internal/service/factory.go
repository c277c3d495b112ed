package service

import (
	"go.uber.org/zap"

	"github.com/InQaaaaGit/lighthouse_runner.git/internal/audit"
	"github.com/InQaaaaGit/lighthouse_runner.git/internal/browser"
	"github.com/InQaaaaGit/lighthouse_runner.git/internal/config"
	"github.com/InQaaaaGit/lighthouse_runner.git/internal/metrics"
	"github.com/InQaaaaGit/lighthouse_runner.git/internal/models"
	"github.com/InQaaaaGit/lighthouse_runner.git/internal/retry"
)

// NewAuditService собирает сервис из конфигурации: Chrome через chromedp и lighthouse CLI
func NewAuditService(cfg *config.Config, recorder metrics.Recorder, logger *zap.Logger) *Orchestrator {
	categories := cfg.AuditCategories()

	flags := audit.DefaultFlags()
	flags.MaxWaitForLoad = cfg.MaxWaitForLoad
	flags.FormFactor = cfg.FormFactor
	flags.Locale = cfg.Locale
	flags.Categories = models.CategoryIDs(categories)

	launcher := browser.NewChromeLauncher(cfg.ChromePath, cfg.ChromeFlagMap(), logger)
	engine := audit.NewLighthouseCLI(cfg.LighthousePath)
	invoker := audit.NewInvoker(launcher, engine, flags, logger)

	policy := retry.Policy{
		MaxAttempts: cfg.MaxAttempts,
		Delay:       cfg.RetryDelay,
	}

	logger.Info("Audit service configured",
		zap.Int("max_attempts", policy.MaxAttempts),
		zap.Duration("retry_delay", policy.Delay),
		zap.Strings("categories", flags.Categories),
		zap.String("lighthouse", cfg.LighthousePath))

	return NewOrchestrator(invoker, policy, categories, recorder, logger)
}

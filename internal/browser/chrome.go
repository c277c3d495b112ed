package browser

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// ChromeLauncher запускает headless Chrome через chromedp
type ChromeLauncher struct {
	execPath string
	flags    map[string]interface{}
	logger   *zap.Logger
}

// NewChromeLauncher создает новый ChromeLauncher.
// execPath может быть пустым - тогда chromedp ищет Chrome самостоятельно.
func NewChromeLauncher(execPath string, flags map[string]interface{}, logger *zap.Logger) *ChromeLauncher {
	return &ChromeLauncher{
		execPath: execPath,
		flags:    flags,
		logger:   logger,
	}
}

// Launch запускает браузер на свободном порту удаленной отладки
func (c *ChromeLauncher) Launch(ctx context.Context) (*Lease, error) {
	port, err := freePort()
	if err != nil {
		return nil, fmt.Errorf("error allocating debugging port: %w", err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("remote-debugging-port", strconv.Itoa(port)),
	)
	if c.execPath != "" {
		opts = append(opts, chromedp.ExecPath(c.execPath))
	}
	for name, value := range c.flags {
		opts = append(opts, chromedp.Flag(name, value))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	release := func() error {
		// Cancel закрывает браузер штатно, cancelAlloc добивает процесс и удаляет профиль
		err := chromedp.Cancel(browserCtx)
		cancelBrowser()
		cancelAlloc()
		return err
	}

	// Пустой Run стартует процесс браузера
	if err := chromedp.Run(browserCtx); err != nil {
		if releaseErr := release(); releaseErr != nil {
			c.logger.Warn("Error releasing browser after failed launch", zap.Error(releaseErr))
		}
		return nil, fmt.Errorf("error launching browser: %w", err)
	}

	lease := NewLease(port, release)
	c.logger.Debug("Browser launched", zap.String("lease_id", lease.ID), zap.Int("port", port))
	return lease, nil
}

// freePort выбирает свободный TCP-порт на loopback-интерфейсе
func freePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

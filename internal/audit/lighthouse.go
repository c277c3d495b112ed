package audit

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const waitDelay = 10 * time.Second

// Engine выполняет аудит одной страницы в уже запущенном браузере
type Engine interface {
	Audit(ctx context.Context, url string, port int, flags Flags) ([]byte, error)
	Check(ctx context.Context) error
}

// LighthouseCLI запускает lighthouse как внешний процесс и читает JSON-отчет из stdout
type LighthouseCLI struct {
	binary string
}

// NewLighthouseCLI создает движок на основе исполняемого файла lighthouse
func NewLighthouseCLI(binary string) *LighthouseCLI {
	if binary == "" {
		binary = "lighthouse"
	}
	return &LighthouseCLI{binary: binary}
}

// Audit запускает lighthouse против браузера на заданном порту
func (l *LighthouseCLI) Audit(ctx context.Context, url string, port int, flags Flags) ([]byte, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, l.binary, flags.Args(url, port)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Дочерние процессы lighthouse могут держать stdout открытым после отмены
	cmd.WaitDelay = waitDelay

	if err := cmd.Run(); err != nil {
		if msg := lastLine(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w", msg, err)
		}
		return nil, err
	}

	if stdout.Len() == 0 {
		return nil, ErrEmptyReport
	}
	return stdout.Bytes(), nil
}

// Check проверяет, что исполняемый файл lighthouse доступен
func (l *LighthouseCLI) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := exec.LookPath(l.binary); err != nil {
		return fmt.Errorf("lighthouse binary %q not found: %w", l.binary, err)
	}
	return nil
}

// lastLine возвращает последнюю непустую строку вывода - обычно там текст ошибки
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

var _ Engine = (*LighthouseCLI)(nil)

package audit

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript создает исполняемый shell-скрипт, подменяющий lighthouse
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "lighthouse")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestFlagsArgs(t *testing.T) {
	flags := DefaultFlags()
	flags.Categories = []string{"performance", "best-practices"}

	args := flags.Args("https://a.example/", 9222)

	assert.Equal(t, []string{
		"https://a.example/",
		"--port=9222",
		"--output=json",
		"--output-path=stdout",
		"--max-wait-for-load=60000",
		"--locale=en-US",
		"--quiet",
		"--preset=desktop",
		"--only-categories=performance,best-practices",
	}, args)
}

func TestFlagsArgsMobile(t *testing.T) {
	flags := DefaultFlags()
	flags.FormFactor = "mobile"

	args := flags.Args("https://a.example/", 1)
	assert.Contains(t, args, "--form-factor=mobile")
	assert.NotContains(t, args, "--preset=desktop")
}

func TestLighthouseCLIAudit(t *testing.T) {
	// Скрипт печатает свои аргументы в отчет, чтобы проверить их передачу
	script := writeScript(t, `echo "{\"requestedUrl\":\"$1\",\"args\":\"$*\"}"`)
	engine := NewLighthouseCLI(script)

	data, err := engine.Audit(context.Background(), "https://a.example/", 4242, DefaultFlags())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"requestedUrl":"https://a.example/"`)
	assert.Contains(t, string(data), "--port=4242")
	assert.Contains(t, string(data), "--output=json")
}

func TestLighthouseCLIAuditFailure(t *testing.T) {
	script := writeScript(t, "echo 'Runtime error encountered: net::ERR_NAME_NOT_RESOLVED' >&2\nexit 1\n")
	engine := NewLighthouseCLI(script)

	_, err := engine.Audit(context.Background(), "https://bad.invalid/", 1, DefaultFlags())
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Runtime error encountered: net::ERR_NAME_NOT_RESOLVED"))
}

func TestLighthouseCLIEmptyReport(t *testing.T) {
	script := writeScript(t, "exit 0\n")
	engine := NewLighthouseCLI(script)

	_, err := engine.Audit(context.Background(), "https://a.example/", 1, DefaultFlags())
	assert.ErrorIs(t, err, ErrEmptyReport)
}

func TestLighthouseCLIAuditTimeout(t *testing.T) {
	script := writeScript(t, "exec sleep 5\n")
	engine := NewLighthouseCLI(script)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := engine.Audit(ctx, "https://a.example/", 1, DefaultFlags())
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestLighthouseCLICheck(t *testing.T) {
	script := writeScript(t, "exit 0\n")
	assert.NoError(t, NewLighthouseCLI(script).Check(context.Background()))
	assert.Error(t, NewLighthouseCLI("/nonexistent/lighthouse").Check(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewLighthouseCLI(script).Check(ctx), context.Canceled)
}

func TestNewLighthouseCLIDefaultBinary(t *testing.T) {
	assert.Equal(t, "lighthouse", NewLighthouseCLI("").binary)
}

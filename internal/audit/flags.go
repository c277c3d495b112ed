package audit

import (
	"strconv"
	"strings"
	"time"
)

// Flags содержит параметры запуска движка аудита
type Flags struct {
	Output         string        // Формат отчета
	MaxWaitForLoad time.Duration // Максимальное ожидание загрузки страницы
	FormFactor     string        // Эмуляция устройства: desktop или mobile
	Locale         string        // Локаль отчета
	Categories     []string      // Идентификаторы категорий Lighthouse
}

// DefaultFlags возвращает фиксированную конфигурацию аудита
func DefaultFlags() Flags {
	return Flags{
		Output:         "json",
		MaxWaitForLoad: 60 * time.Second,
		FormFactor:     "desktop",
		Locale:         "en-US",
	}
}

// Args преобразует параметры в аргументы командной строки lighthouse
func (f Flags) Args(url string, port int) []string {
	args := []string{
		url,
		"--port=" + strconv.Itoa(port),
		"--output=" + f.Output,
		"--output-path=stdout",
		"--max-wait-for-load=" + strconv.FormatInt(f.MaxWaitForLoad.Milliseconds(), 10),
		"--locale=" + f.Locale,
		"--quiet",
	}
	if f.FormFactor == "desktop" {
		args = append(args, "--preset=desktop")
	} else if f.FormFactor != "" {
		args = append(args, "--form-factor="+f.FormFactor)
	}
	if len(f.Categories) > 0 {
		args = append(args, "--only-categories="+strings.Join(f.Categories, ","))
	}
	return args
}

// Package csvcodec преобразует строки отчета в CSV и извлекает список URL из загруженного файла.
package csvcodec

import (
	"fmt"
	"strings"

	"github.com/InQaaaaGit/lighthouse_runner.git/internal/models"
)

// HeaderPolicy определяет, как строится заголовок CSV
type HeaderPolicy string

const (
	// HeaderUnion - объединение ключей всех строк в порядке первого появления
	HeaderUnion HeaderPolicy = "union"
	// HeaderFirstRow - ключи только первой строки; лишние ключи последующих строк отбрасываются
	HeaderFirstRow HeaderPolicy = "first-row"
)

// ParseHeaderPolicy разбирает название политики заголовка
func ParseHeaderPolicy(s string) (HeaderPolicy, error) {
	switch HeaderPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case HeaderUnion, "":
		return HeaderUnion, nil
	case HeaderFirstRow:
		return HeaderFirstRow, nil
	default:
		return "", fmt.Errorf("unknown header policy %q", s)
	}
}

// Encode сериализует строки в CSV: каждое поле в двойных кавычках,
// строки разделены переводом строки. Пустой вход дает пустую строку.
func Encode(rows []models.Row, policy HeaderPolicy) string {
	if len(rows) == 0 {
		return ""
	}

	header := Header(rows, policy)

	var sb strings.Builder
	writeRecord(&sb, header)
	for _, row := range rows {
		sb.WriteByte('\n')
		values := make([]string, len(header))
		for i, key := range header {
			values[i], _ = row.Get(key)
		}
		writeRecord(&sb, values)
	}
	return sb.String()
}

// Header вычисляет заголовок CSV по выбранной политике
func Header(rows []models.Row, policy HeaderPolicy) []string {
	if len(rows) == 0 {
		return nil
	}
	if policy == HeaderFirstRow {
		return rows[0].Keys()
	}

	seen := make(map[string]bool)
	var header []string
	for _, row := range rows {
		for _, key := range row.Keys() {
			if !seen[key] {
				seen[key] = true
				header = append(header, key)
			}
		}
	}
	return header
}

func writeRecord(sb *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		// Кавычки внутри поля удваиваются (RFC 4180)
		sb.WriteString(strings.ReplaceAll(field, `"`, `""`))
		sb.WriteByte('"')
	}
}

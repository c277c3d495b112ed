package csvcodec

import (
	"encoding/csv"
	"strings"

	"github.com/InQaaaaGit/lighthouse_runner.git/internal/models"
)

const utf8BOM = "\ufeff"

// DecodeURLs извлекает список URL из содержимого загруженного файла.
// Сначала файл разбирается как CSV с заголовком: если есть колонка url и первая
// запись содержит в ней значение, возвращается эта колонка. Иначе каждая непустая
// строка считается URL.
func DecodeURLs(text string) []string {
	text = strings.TrimPrefix(text, utf8BOM)

	if urls, ok := decodeStructured(text); ok {
		return urls
	}
	return decodeLines(text)
}

// decodeStructured разбирает CSV с заголовком и возвращает колонку url
func decodeStructured(text string) ([]string, bool) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil || len(records) < 2 {
		return nil, false
	}

	column := -1
	for i, name := range records[0] {
		if strings.EqualFold(strings.TrimSpace(name), models.KeyURL) {
			column = i
			break
		}
	}
	if column < 0 || !hasValue(records[1], column) {
		return nil, false
	}

	urls := make([]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if hasValue(record, column) {
			urls = append(urls, strings.TrimSpace(record[column]))
		}
	}
	return urls, true
}

func hasValue(record []string, column int) bool {
	return column < len(record) && strings.TrimSpace(record[column]) != ""
}

// decodeLines трактует текст как список URL по одному на строку
func decodeLines(text string) []string {
	var urls []string
	for _, line := range strings.Split(text, "\n") {
		if u := strings.TrimSpace(line); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

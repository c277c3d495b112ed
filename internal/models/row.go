// Package models содержит структуры данных, которыми обмениваются слои приложения:
// строки итогового отчета, категории аудита и разобранный отчет Lighthouse.
package models

// Ключи строк отчета, общие для результатов и ошибок.
const (
	KeyURL   = "url"
	KeyError = "error"
)

// Cell представляет одну пару ключ/значение в строке отчета
type Cell struct {
	Key   string
	Value string
}

// Row представляет одну строку отчета с сохранением порядка ключей.
// Пустое значение соответствует null/undefined.
type Row []Cell

// NewErrorRow создает строку ошибки {url, error}
func NewErrorRow(url, message string) Row {
	return Row{
		{Key: KeyURL, Value: url},
		{Key: KeyError, Value: message},
	}
}

// Keys возвращает ключи строки в исходном порядке
func (r Row) Keys() []string {
	keys := make([]string, 0, len(r))
	for _, c := range r {
		keys = append(keys, c.Key)
	}
	return keys
}

// Get возвращает значение по ключу и признак его наличия
func (r Row) Get(key string) (string, bool) {
	for _, c := range r {
		if c.Key == key {
			return c.Value, true
		}
	}
	return "", false
}

// IsError сообщает, является ли строка строкой ошибки
func (r Row) IsError() bool {
	_, ok := r.Get(KeyError)
	return ok
}

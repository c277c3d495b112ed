package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Report содержит поля JSON-отчета Lighthouse, которые использует сервис
type Report struct {
	RequestedURL      string                    `json:"requestedUrl"`
	FinalURL          string                    `json:"finalUrl"`
	FinalDisplayedURL string                    `json:"finalDisplayedUrl"`
	RuntimeError      *RuntimeError             `json:"runtimeError,omitempty"`
	Categories        map[string]CategoryResult `json:"categories"`
}

// RuntimeError описывает ошибку навигации или выполнения, которую Lighthouse кладет в отчет
type RuntimeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CategoryResult содержит оценку категории; nil означает отсутствие оценки
type CategoryResult struct {
	Score *float64 `json:"score"`
}

// ParseReport разбирает JSON-отчет Lighthouse
func ParseReport(data []byte) (*Report, error) {
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("error decoding report: %w", err)
	}
	return &report, nil
}

// ResolvedURL возвращает итоговый URL отчета, а при его отсутствии - входной URL
func (r *Report) ResolvedURL(inputURL string) string {
	if r.FinalURL != "" {
		return r.FinalURL
	}
	if r.FinalDisplayedURL != "" {
		return r.FinalDisplayedURL
	}
	return inputURL
}

// Score возвращает оценку категории; ok=false, если категория отсутствует или оценка null
func (r *Report) Score(categoryID string) (float64, bool) {
	result, exists := r.Categories[categoryID]
	if !exists || result.Score == nil {
		return 0, false
	}
	return *result.Score, true
}

// Failed сообщает, завершился ли аудит ошибкой выполнения
func (r *Report) Failed() bool {
	return r.RuntimeError != nil && r.RuntimeError.Code != ""
}

// ToRow проецирует отчет в строку результата для заданных категорий
func (r *Report) ToRow(inputURL string, categories []Category) Row {
	row := make(Row, 0, len(categories)+1)
	row = append(row, Cell{Key: KeyURL, Value: r.ResolvedURL(inputURL)})
	for _, c := range categories {
		value := ""
		if score, ok := r.Score(c.ID); ok {
			value = FormatScore(score)
		}
		row = append(row, Cell{Key: c.Column, Value: value})
	}
	return row
}

// FormatScore форматирует оценку в кратчайшем десятичном представлении (0.9, 1, 0.87)
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

package models

import (
	"fmt"
	"strings"
)

// Category описывает категорию аудита Lighthouse и имя колонки в CSV
type Category struct {
	ID     string // Идентификатор категории в отчете Lighthouse
	Column string // Имя колонки в итоговом CSV
}

// Известные категории Lighthouse.
var (
	CategoryPerformance   = Category{ID: "performance", Column: "performance"}
	CategoryAccessibility = Category{ID: "accessibility", Column: "accessibility"}
	CategoryBestPractices = Category{ID: "best-practices", Column: "bestPractices"}
	CategorySEO           = Category{ID: "seo", Column: "seo"}
	CategoryPWA           = Category{ID: "pwa", Column: "pwa"}
)

// KnownCategories перечисляет все поддерживаемые категории в порядке колонок
var KnownCategories = []Category{
	CategoryPerformance,
	CategoryAccessibility,
	CategoryBestPractices,
	CategorySEO,
	CategoryPWA,
}

// DefaultCategories возвращает набор категорий по умолчанию (без pwa)
func DefaultCategories() []Category {
	return []Category{
		CategoryPerformance,
		CategoryAccessibility,
		CategoryBestPractices,
		CategorySEO,
	}
}

// LookupCategory ищет категорию по идентификатору Lighthouse или имени колонки
func LookupCategory(name string) (Category, bool) {
	name = strings.TrimSpace(name)
	for _, c := range KnownCategories {
		if strings.EqualFold(c.ID, name) || strings.EqualFold(c.Column, name) {
			return c, true
		}
	}
	return Category{}, false
}

// ParseCategories разбирает список имен категорий, сохраняя порядок и убирая дубликаты
func ParseCategories(names []string) ([]Category, error) {
	seen := make(map[string]bool, len(names))
	result := make([]Category, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		c, ok := LookupCategory(name)
		if !ok {
			return nil, fmt.Errorf("unknown category %q", name)
		}
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		result = append(result, c)
	}
	return result, nil
}

// CategoryIDs возвращает идентификаторы категорий
func CategoryIDs(categories []Category) []string {
	ids := make([]string, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// Package search содержит фильтрацию и постраничную нарезку уже загруженных списков.
package search

import "strings"

// Page параметры постраничной выдачи. Limit <= 0 означает «без ограничения».
type Page struct {
	Offset int
	Limit  int
}

// Filter оставляет элементы, у которых хотя бы одно поле содержит query без учёта регистра.
// Пустой query возвращает исходный срез.
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, f := range fields(item) {
			if strings.Contains(strings.ToLower(f), query) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// Slice применяет смещение и лимит к срезу.
func Slice[T any](items []T, p Page) []T {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if p.Limit > 0 && p.Offset+p.Limit < end {
		end = p.Offset + p.Limit
	}
	return items[p.Offset:end]
}

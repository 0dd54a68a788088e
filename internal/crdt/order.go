package crdt

import (
	"slices"
	"strings"

	"github.com/iudanet/crmsync/internal/models"
)

// Результаты сравнения
const (
	Lower   = -1
	Equal   = 0
	Greater = 1
)

// Compare задает полный порядок журнала событий:
//  1. Timestamp, лексикографически (ISO-8601)
//  2. DeviceID, лексикографически
//  3. (epoch, counter) численно, если оба id разбираются
//  4. строка ID
func Compare(a, b *models.Event) int {
	if c := strings.Compare(a.Timestamp, b.Timestamp); c != Equal {
		return c
	}
	if c := strings.Compare(a.DeviceID, b.DeviceID); c != Equal {
		return c
	}

	ae, ac, aok := ParseID(a.ID)
	be, bc, bok := ParseID(b.ID)
	if aok && bok {
		switch {
		case ae < be:
			return Lower
		case ae > be:
			return Greater
		case ac < bc:
			return Lower
		case ac > bc:
			return Greater
		}
	}

	return strings.Compare(a.ID, b.ID)
}

// SortEvents возвращает события в порядке воспроизведения, не меняя входной срез.
// Результат не зависит от порядка получения событий.
func SortEvents(events []models.Event) []models.Event {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b models.Event) int {
		return Compare(&a, &b)
	})
	return sorted
}

// IsSorted сообщает, упорядочены ли события для воспроизведения.
func IsSorted(events []models.Event) bool {
	return slices.IsSortedFunc(events, func(a, b models.Event) int {
		return Compare(&a, &b)
	})
}

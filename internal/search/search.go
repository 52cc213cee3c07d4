// Package search реализует нечеткий поиск путей по проекции дерева.
// Запрос сопоставляется с путем как подпоследовательность символов,
// совпадения на границах сегментов ценятся выше. Результат
// детерминирован: одинаковая проекция и запрос дают одинаковый
// порядок на всех репликах.
package search

import (
	"sort"
	"unicode"

	"github.com/iudanet/treesync/internal/crdt"
	"github.com/iudanet/treesync/internal/models"
)

// Result одно совпадение поиска
type Result struct {
	ID    models.NodeID `json:"id"`
	Path  string        `json:"path"`
	Score int           `json:"score"`
	// Positions индексы рун пути, сопоставленных символам запроса
	Positions []int `json:"positions,omitempty"`
}

// DefaultMaxResults ограничение числа результатов по умолчанию
const DefaultMaxResults = 10

const (
	scoreBase        = 1
	scoreBoundary    = 2
	scoreConsecutive = 1
)

// Paths ищет файлы проекции, чьи пути содержат query как
// подпоследовательность (без учета регистра). Возвращает не более
// maxResults лучших совпадений: по убыванию балла, затем короткие
// пути раньше длинных, затем лексический порядок.
func Paths(proj *crdt.Projection, query string, maxResults int) []Result {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	needle := []rune(query)
	var results []Result

	for _, entry := range proj.Entries() {
		if entry.IsDir {
			continue
		}
		if len(needle) == 0 {
			results = append(results, Result{ID: entry.ID, Path: entry.Path})
			continue
		}
		score, positions, ok := match([]rune(entry.Path), needle)
		if !ok {
			continue
		}
		results = append(results, Result{
			ID:        entry.ID,
			Path:      entry.Path,
			Score:     score,
			Positions: positions,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if len(results[i].Path) != len(results[j].Path) {
			return len(results[i].Path) < len(results[j].Path)
		}
		return results[i].Path < results[j].Path
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// match сопоставляет needle с haystack слева направо, выбирая для
// каждого символа запроса ближайшую допустимую позицию. Бонусы
// начисляются за совпадение на границе сегмента и за непрерывные
// серии совпадений.
func match(haystack, needle []rune) (int, []int, bool) {
	positions := make([]int, 0, len(needle))
	score := 0
	pos := 0

	for _, want := range needle {
		found := -1
		for i := pos; i < len(haystack); i++ {
			if foldEq(haystack[i], want) {
				found = i
				break
			}
		}
		if found < 0 {
			return 0, nil, false
		}

		score += scoreBase
		if isBoundary(haystack, found) {
			score += scoreBoundary
		}
		if len(positions) > 0 && positions[len(positions)-1] == found-1 {
			score += scoreConsecutive
		}
		positions = append(positions, found)
		pos = found + 1
	}

	return score, positions, true
}

func foldEq(a, b rune) bool {
	return unicode.ToLower(a) == unicode.ToLower(b)
}

// isBoundary истинно для начала пути, символа после разделителя
// и горба camelCase
func isBoundary(haystack []rune, i int) bool {
	if i == 0 {
		return true
	}
	prev := haystack[i-1]
	switch prev {
	case '/', '.', '_', '-', ' ':
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(haystack[i])
}

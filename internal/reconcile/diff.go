package reconcile

import (
	"sort"

	"github.com/iudanet/treesync/internal/history"
	"github.com/iudanet/treesync/internal/snapshot"
)

// ChangeType тип изменения между двумя снимками
type ChangeType string

const (
	// ChangeAdded путь появился
	ChangeAdded ChangeType = "added"
	// ChangeRemoved путь исчез
	ChangeRemoved ChangeType = "removed"
	// ChangeModified содержимое файла изменилось
	ChangeModified ChangeType = "modified"
	// ChangeRenamed файл перемещен (удаление + создание с похожим
	// содержимым свернуты в одно переименование)
	ChangeRenamed ChangeType = "renamed"
)

// Change одно изменение между двумя снимками
type Change struct {
	Type ChangeType
	Path string
	// From исходный путь для ChangeRenamed
	From string
	// Entry состояние пути в новом снимке (кроме ChangeRemoved)
	Entry snapshot.Entry
}

// Similarity вычисляет схожесть двух файлов как коэффициент Жаккара
// по множествам хешей строк. Чистая детерминированная функция от
// явных входов; алгоритм схожести - осознанно настраиваемая точка,
// а не требование корректности.
func Similarity(a, b []byte) float64 {
	setA := lineSet(a)
	setB := lineSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}

	intersection := 0
	for line := range setA {
		if _, ok := setB[line]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func lineSet(content []byte) map[string]struct{} {
	set := make(map[string]struct{})
	start := 0
	for i, c := range content {
		if c == '\n' {
			set[history.HashContent(content[start:i])] = struct{}{}
			start = i + 1
		}
	}
	if start < len(content) {
		set[history.HashContent(content[start:])] = struct{}{}
	}
	return set
}

// Diff вычисляет изменения между старым и новым снимками.
// Пара (удаленный путь, созданный путь) с одинаковым или достаточно
// похожим содержимым (similarity >= threshold) сворачивается в одно
// переименование. При нескольких равнопохожих кандидатах выбор
// детерминирован лексическим порядком путей, чтобы все реплики на
// одинаковых входах получали одинаковый результат.
func Diff(old, new *snapshot.Snapshot, threshold float64) []Change {
	var removed, added []string
	var modified []string

	for _, path := range old.Paths() {
		if _, ok := new.Entries[path]; !ok {
			removed = append(removed, path)
		}
	}
	for _, path := range new.Paths() {
		oldEntry, ok := old.Entries[path]
		newEntry := new.Entries[path]
		if !ok {
			added = append(added, path)
			continue
		}
		if !oldEntry.IsDir && !newEntry.IsDir && oldEntry.Hash != newEntry.Hash {
			modified = append(modified, path)
		}
	}

	// свертка переименований: только файлы, директории переименований
	// не образуют (их содержимое - это их дети)
	renames := detectRenames(old, new, removed, added, threshold)

	var changes []Change
	for _, path := range removed {
		if _, ok := renames[path]; ok {
			continue
		}
		changes = append(changes, Change{Type: ChangeRemoved, Path: path})
	}
	renamedTargets := make(map[string]string, len(renames))
	for from, to := range renames {
		renamedTargets[to] = from
	}
	for _, path := range added {
		if from, ok := renamedTargets[path]; ok {
			changes = append(changes, Change{
				Type:  ChangeRenamed,
				Path:  path,
				From:  from,
				Entry: new.Entries[path],
			})
			continue
		}
		changes = append(changes, Change{Type: ChangeAdded, Path: path, Entry: new.Entries[path]})
	}
	for _, path := range modified {
		changes = append(changes, Change{Type: ChangeModified, Path: path, Entry: new.Entries[path]})
	}

	sort.SliceStable(changes, func(i, j int) bool {
		if changes[i].Type != changes[j].Type {
			return changeOrder(changes[i].Type) < changeOrder(changes[j].Type)
		}
		return changes[i].Path < changes[j].Path
	})
	return changes
}

// changeOrder детерминированный порядок применения изменений:
// переименования до удалений, создания до модификаций
func changeOrder(t ChangeType) int {
	switch t {
	case ChangeRenamed:
		return 0
	case ChangeRemoved:
		return 1
	case ChangeAdded:
		return 2
	case ChangeModified:
		return 3
	default:
		return 4
	}
}

// detectRenames сопоставляет удаленные файлы с созданными.
// Возвращает map[удаленный путь]созданный путь.
func detectRenames(old, new *snapshot.Snapshot, removed, added []string, threshold float64) map[string]string {
	renames := make(map[string]string)
	taken := make(map[string]bool)

	// removed и added уже лексически отсортированы вызывающим кодом
	for _, from := range removed {
		oldEntry := old.Entries[from]
		if oldEntry.IsDir {
			continue
		}

		bestScore := 0.0
		bestTo := ""
		for _, to := range added {
			if taken[to] {
				continue
			}
			newEntry := new.Entries[to]
			if newEntry.IsDir {
				continue
			}
			var score float64
			if newEntry.Hash == oldEntry.Hash {
				score = 1.0
			} else {
				score = Similarity(oldEntry.Content, newEntry.Content)
			}
			// строгое "больше": при равных баллах выигрывает
			// лексически первый кандидат
			if score > bestScore {
				bestScore = score
				bestTo = to
			}
		}

		if bestScore >= threshold && bestTo != "" {
			renames[from] = bestTo
			taken[bestTo] = true
		}
	}
	return renames
}

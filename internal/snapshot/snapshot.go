// Package snapshot реализует границу с реальной файловой системой:
// чтение снимка дерева (путь, хеш содержимого, признак директории)
// и обратную запись спроецированного состояния. Низкоуровневая
// механика наблюдения за файловой системой сюда не входит.
package snapshot

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iudanet/treesync/internal/history"
)

// MetaDir служебная директория реплики, исключаемая из снимков
const MetaDir = ".treesync"

// Entry один путь снимка файловой системы
type Entry struct {
	Path    string `json:"path"`
	IsDir   bool   `json:"is_dir,omitempty"`
	Hash    string `json:"hash,omitempty"`
	Content []byte `json:"content,omitempty"`
}

// Snapshot снимок дерева файловой системы на момент чтения
type Snapshot struct {
	Entries map[string]Entry `json:"entries"`
}

// New создает пустой снимок
func New() *Snapshot {
	return &Snapshot{Entries: make(map[string]Entry)}
}

// Add добавляет файл в снимок (используется в тестах и при
// материализации снимка из коммита)
func (s *Snapshot) Add(path string, isDir bool, content []byte) {
	entry := Entry{Path: path, IsDir: isDir}
	if !isDir {
		entry.Content = content
		entry.Hash = history.HashContent(content)
	}
	s.Entries[path] = entry
}

// Paths возвращает отсортированные пути снимка
func (s *Snapshot) Paths() []string {
	paths := make([]string, 0, len(s.Entries))
	for path := range s.Entries {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Tree конвертирует снимок в дерево истории (только хеши)
func (s *Snapshot) Tree() history.Tree {
	tree := make(history.Tree, len(s.Entries))
	for path, entry := range s.Entries {
		tree[path] = history.FileInfo{Hash: entry.Hash, IsDir: entry.IsDir}
	}
	return tree
}

// Read читает снимок дерева под root. Служебная директория .treesync
// и скрытые от синхронизации пути пропускаются.
func Read(root string) (*Snapshot, error) {
	snap := New()
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to resolve relative path: %w", err)
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if rel == MetaDir || strings.HasPrefix(rel, MetaDir+"/") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			snap.Add(rel, true, nil)
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", rel, err)
		}
		snap.Add(rel, false, content)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return snap, nil
}

// Write записывает желаемое состояние дерева обратно на файловую
// систему: создает директории, перезаписывает отличающиеся файлы и
// удаляет пути, отсутствующие в желаемом состоянии. Служебная
// директория .treesync не трогается.
func Write(root string, desired *Snapshot) error {
	current, err := Read(root)
	if err != nil {
		return err
	}

	// удаляем лишнее, более глубокие пути первыми
	extraneous := make([]string, 0)
	for path := range current.Entries {
		if _, ok := desired.Entries[path]; !ok {
			extraneous = append(extraneous, path)
		}
	}
	sort.Slice(extraneous, func(i, j int) bool { return extraneous[i] > extraneous[j] })
	for _, path := range extraneous {
		if err := os.RemoveAll(filepath.Join(root, filepath.FromSlash(path))); err != nil {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}

	for _, path := range desired.Paths() {
		entry := desired.Entries[path]
		target := filepath.Join(root, filepath.FromSlash(path))
		if entry.IsDir {
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", path, err)
			}
			continue
		}
		if existing, ok := current.Entries[path]; ok && !existing.IsDir && existing.Hash == entry.Hash {
			// содержимое не изменилось
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("failed to create parent of %s: %w", path, err)
		}
		if err := os.WriteFile(target, entry.Content, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}

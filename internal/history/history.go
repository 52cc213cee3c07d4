// Package history определяет интерфейс внешней истории коммитов.
// История потребляется как неизменяемый оракул с контентной
// адресацией: commit SHA -> снимок дерева, parent SHA.
package history

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/iudanet/treesync/internal/models"
)

// FileInfo содержимое одного пути в снимке коммита
type FileInfo struct {
	Hash  string `json:"hash,omitempty"` // hex SHA256 содержимого (пусто для директорий)
	IsDir bool   `json:"is_dir,omitempty"`
}

// Tree плоский снимок дерева коммита: путь -> информация о файле.
// Пути относительные, разделитель всегда "/".
type Tree map[string]FileInfo

// Clone создает копию дерева
func (t Tree) Clone() Tree {
	clone := make(Tree, len(t))
	for path, info := range t {
		clone[path] = info
	}
	return clone
}

// Paths возвращает отсортированные пути дерева
func (t Tree) Paths() []string {
	paths := make([]string, 0, len(t))
	for path := range t {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

//go:generate moq -out oracle_mock.go . Oracle

// Oracle интерфейс внешней истории коммитов. Предполагается
// неизменяемой и контентно-адресуемой: один и тот же SHA всегда
// разрешается в одно и то же дерево.
type Oracle interface {
	// Resolve возвращает снимок дерева коммита
	Resolve(ctx context.Context, sha string) (Tree, error)

	// ParentOf возвращает SHA родительского коммита
	// (пустая строка для корневого коммита)
	ParentOf(ctx context.Context, sha string) (string, error)

	// CurrentHead возвращает SHA текущего HEAD
	// (пустая строка для пустой истории)
	CurrentHead(ctx context.Context) (string, error)

	// Commit записывает новый коммит и передвигает HEAD на него
	Commit(ctx context.Context, tree Tree, parent string) (string, error)

	// SetHead передвигает HEAD на существующий коммит (checkout)
	SetHead(ctx context.Context, sha string) error

	// Blob возвращает содержимое по контентному хешу
	Blob(ctx context.Context, hash string) ([]byte, error)

	// PutBlob сохраняет содержимое и возвращает его контентный хеш
	PutBlob(ctx context.Context, content []byte) (string, error)
}

// HashContent возвращает hex SHA256 содержимого файла
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// CommitSHA вычисляет SHA коммита по каноническому представлению
// дерева и родителя. Детерминировано: реплики, зафиксировавшие
// одинаковое дерево поверх одинакового родителя, получают
// одинаковый SHA.
func CommitSHA(tree Tree, parent string) string {
	h := sha256.New()
	fmt.Fprintf(h, "parent %s\n", parent)
	for _, path := range tree.Paths() {
		info := tree[path]
		fmt.Fprintf(h, "%s\t%s\t%t\n", path, info.Hash, info.IsDir)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// LastTouched возвращает SHA последнего коммита, изменившего именно
// этот путь, идя от head по цепочке родителей. Historical id должен
// вычисляться против этого коммита, а не против текущего HEAD,
// чтобы переименованный в истории путь не порождал неоднозначность.
// Возвращает models.ErrIdentityAmbiguous, если цепочку невозможно
// проследить (например, история обрезана локально).
func LastTouched(ctx context.Context, oracle Oracle, head, path string) (string, error) {
	cur := head
	curTree, err := oracle.Resolve(ctx, cur)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", cur, models.ErrIdentityAmbiguous)
	}
	curInfo, ok := curTree[path]
	if !ok {
		return "", fmt.Errorf("path %q not in commit %s: %w", path, head, models.ErrIdentityAmbiguous)
	}

	for {
		parent, err := oracle.ParentOf(ctx, cur)
		if err != nil {
			return "", fmt.Errorf("parent of %s: %w", cur, models.ErrIdentityAmbiguous)
		}
		if parent == "" {
			// путь появился в корневом коммите
			return cur, nil
		}
		parentTree, err := oracle.Resolve(ctx, parent)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", parent, models.ErrIdentityAmbiguous)
		}
		parentInfo, ok := parentTree[path]
		if !ok || parentInfo.Hash != curInfo.Hash || parentInfo.IsDir != curInfo.IsDir {
			// в parent путь отсутствует или отличается: cur - последний коммит,
			// тронувший этот путь
			return cur, nil
		}
		cur = parent
		curInfo = parentInfo
	}
}

package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/treesync/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return store
}

func TestCommitSHA_Deterministic(t *testing.T) {
	tree := Tree{
		"docs":           {IsDir: true},
		"docs/readme.md": {Hash: HashContent([]byte("# hi\n"))},
	}
	same := Tree{
		"docs/readme.md": {Hash: HashContent([]byte("# hi\n"))},
		"docs":           {IsDir: true},
	}

	assert.Equal(t, CommitSHA(tree, ""), CommitSHA(same, ""))
	assert.NotEqual(t, CommitSHA(tree, ""), CommitSHA(tree, "some-parent"))

	changed := tree.Clone()
	changed["docs/readme.md"] = FileInfo{Hash: HashContent([]byte("# bye\n"))}
	assert.NotEqual(t, CommitSHA(tree, ""), CommitSHA(changed, ""))
}

func TestStore_CommitResolveRoundtrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	head, err := store.CurrentHead(ctx)
	require.NoError(t, err)
	assert.Empty(t, head)

	tree := Tree{
		"a.txt": {Hash: HashContent([]byte("alpha\n"))},
		"dir":   {IsDir: true},
	}
	sha, err := store.Commit(ctx, tree, "")
	require.NoError(t, err)
	assert.Equal(t, CommitSHA(tree, ""), sha)

	head, err = store.CurrentHead(ctx)
	require.NoError(t, err)
	assert.Equal(t, sha, head)

	resolved, err := store.Resolve(ctx, sha)
	require.NoError(t, err)
	assert.Equal(t, tree, resolved)

	parent, err := store.ParentOf(ctx, sha)
	require.NoError(t, err)
	assert.Empty(t, parent)

	_, err = store.Resolve(ctx, "no-such-commit")
	assert.ErrorIs(t, err, models.ErrCommitNotFound)
}

func TestStore_CommitChain(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Commit(ctx, Tree{"a.txt": {Hash: "h1"}}, "")
	require.NoError(t, err)
	second, err := store.Commit(ctx, Tree{"a.txt": {Hash: "h2"}}, first)
	require.NoError(t, err)

	parent, err := store.ParentOf(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, first, parent)

	head, err := store.CurrentHead(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, head)
}

func TestStore_SetHead(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Commit(ctx, Tree{"a.txt": {Hash: "h1"}}, "")
	require.NoError(t, err)
	_, err = store.Commit(ctx, Tree{"a.txt": {Hash: "h2"}}, first)
	require.NoError(t, err)

	require.NoError(t, store.SetHead(ctx, first))
	head, err := store.CurrentHead(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, head)

	err = store.SetHead(ctx, "no-such-commit")
	assert.ErrorIs(t, err, models.ErrCommitNotFound)
}

func TestStore_BlobRoundtrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	content := []byte("package main\n")
	hash, err := store.PutBlob(ctx, content)
	require.NoError(t, err)
	assert.Equal(t, HashContent(content), hash)

	got, err := store.Blob(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	_, err = store.Blob(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrCommitNotFound)
}

// commitChain фиксирует цепочку деревьев и возвращает SHA по порядку
func commitChain(t *testing.T, store *Store, trees ...Tree) []string {
	t.Helper()
	ctx := context.Background()
	shas := make([]string, 0, len(trees))
	parent := ""
	for _, tree := range trees {
		sha, err := store.Commit(ctx, tree, parent)
		require.NoError(t, err)
		shas = append(shas, sha)
		parent = sha
	}
	return shas
}

func TestLastTouched_ChangedInHead(t *testing.T) {
	store := newTestStore(t)
	shas := commitChain(t, store,
		Tree{"a.txt": {Hash: "h1"}},
		Tree{"a.txt": {Hash: "h1"}, "b.txt": {Hash: "h2"}},
		Tree{"a.txt": {Hash: "h3"}, "b.txt": {Hash: "h2"}},
	)

	touched, err := LastTouched(context.Background(), store, shas[2], "a.txt")
	require.NoError(t, err)
	assert.Equal(t, shas[2], touched)
}

func TestLastTouched_UnchangedSinceEarlierCommit(t *testing.T) {
	store := newTestStore(t)
	shas := commitChain(t, store,
		Tree{"a.txt": {Hash: "h1"}},
		Tree{"a.txt": {Hash: "h1"}, "b.txt": {Hash: "h2"}},
		Tree{"a.txt": {Hash: "h3"}, "b.txt": {Hash: "h2"}},
	)

	// b.txt не менялся после второго коммита
	touched, err := LastTouched(context.Background(), store, shas[2], "b.txt")
	require.NoError(t, err)
	assert.Equal(t, shas[1], touched)
}

func TestLastTouched_RootCommit(t *testing.T) {
	store := newTestStore(t)
	shas := commitChain(t, store,
		Tree{"a.txt": {Hash: "h1"}},
		Tree{"a.txt": {Hash: "h1"}, "b.txt": {Hash: "h2"}},
	)

	touched, err := LastTouched(context.Background(), store, shas[1], "a.txt")
	require.NoError(t, err)
	assert.Equal(t, shas[0], touched)
}

func TestLastTouched_DirFlagChangeCountsAsTouch(t *testing.T) {
	store := newTestStore(t)
	shas := commitChain(t, store,
		Tree{"item": {Hash: "h1"}},
		Tree{"item": {IsDir: true}},
	)

	touched, err := LastTouched(context.Background(), store, shas[1], "item")
	require.NoError(t, err)
	assert.Equal(t, shas[1], touched)
}

func TestLastTouched_PathNotInHead(t *testing.T) {
	store := newTestStore(t)
	shas := commitChain(t, store, Tree{"a.txt": {Hash: "h1"}})

	_, err := LastTouched(context.Background(), store, shas[0], "missing.txt")
	assert.ErrorIs(t, err, models.ErrIdentityAmbiguous)
}

func TestLastTouched_TruncatedHistory(t *testing.T) {
	// родитель head известен, но его дерево недоступно локально
	oracle := &OracleMock{
		ResolveFunc: func(ctx context.Context, sha string) (Tree, error) {
			if sha == "c2" {
				return Tree{"a.txt": {Hash: "h1"}}, nil
			}
			return nil, fmt.Errorf("commit %s: %w", sha, models.ErrCommitNotFound)
		},
		ParentOfFunc: func(ctx context.Context, sha string) (string, error) {
			return "c1", nil
		},
	}

	_, err := LastTouched(context.Background(), oracle, "c2", "a.txt")
	assert.ErrorIs(t, err, models.ErrIdentityAmbiguous)
}

package crdt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/treesync/internal/models"
)

func createOp(origin string, seq uint64, time int64, id models.NodeID, isDir bool, name string, parent models.NodeID) *models.Operation {
	return &models.Operation{
		Origin: origin,
		Seq:    seq,
		Time:   time,
		Type:   models.OpCreateNode,
		Node:   id,
		IsDir:  isDir,
		Name:   name,
		Parent: parent,
	}
}

func setParentOp(origin string, seq uint64, time int64, id, parent models.NodeID) *models.Operation {
	return &models.Operation{
		Origin: origin,
		Seq:    seq,
		Time:   time,
		Type:   models.OpSetParent,
		Node:   id,
		Parent: parent,
	}
}

func paths(p *Projection) []string {
	var out []string
	for _, e := range p.Entries() {
		out = append(out, e.Path)
	}
	return out
}

func TestTree_ProjectNestedPaths(t *testing.T) {
	tree := NewTree()

	dir := models.LocalID("a", 1)
	file := models.LocalID("a", 2)
	tree.Apply(createOp("a", 1, 1, dir, true, "docs", models.RootID))
	tree.Apply(createOp("a", 2, 2, file, false, "readme.md", dir))

	proj := tree.Project()
	assert.Equal(t, []string{"docs", "docs/readme.md"}, paths(proj))

	id, ok := proj.IDAt("docs/readme.md")
	require.True(t, ok)
	assert.Equal(t, file, id)

	path, ok := proj.PathOf(dir)
	require.True(t, ok)
	assert.Equal(t, "docs", path)
}

func TestTree_LWWNameConflict(t *testing.T) {
	tree := NewTree()
	id := models.LocalID("a", 1)
	tree.Apply(createOp("a", 1, 1, id, false, "old.txt", models.RootID))

	// Конкурентные переименования: больший timestamp выигрывает
	winner := &models.Operation{Origin: "b", Seq: 1, Time: 5, Type: models.OpSetName, Node: id, Name: "newer.txt"}
	loser := &models.Operation{Origin: "c", Seq: 1, Time: 3, Type: models.OpSetName, Node: id, Name: "older.txt"}

	assert.True(t, tree.Apply(winner))
	assert.False(t, tree.Apply(loser), "older stamp must lose")

	node, ok := tree.Get(id)
	require.True(t, ok)
	assert.Equal(t, "newer.txt", node.Name.Value)
}

func TestTree_LWWTieBrokenByReplica(t *testing.T) {
	tree := NewTree()
	id := models.LocalID("a", 1)
	tree.Apply(createOp("a", 1, 1, id, false, "f", models.RootID))

	// Равные timestamp: выигрывает лексикографически большая реплика
	tree.Apply(&models.Operation{Origin: "b", Seq: 1, Time: 7, Type: models.OpSetName, Node: id, Name: "from-b"})
	tree.Apply(&models.Operation{Origin: "z", Seq: 1, Time: 7, Type: models.OpSetName, Node: id, Name: "from-z"})

	node, _ := tree.Get(id)
	assert.Equal(t, "from-z", node.Name.Value)
}

func TestTree_ApplyCommutative(t *testing.T) {
	dir := models.LocalID("a", 1)
	file := models.LocalID("b", 1)
	ops := []*models.Operation{
		createOp("a", 1, 1, dir, true, "src", models.RootID),
		createOp("b", 1, 2, file, false, "main.go", dir),
		{Origin: "a", Seq: 2, Time: 3, Type: models.OpSetName, Node: file, Name: "lib.go"},
		{Origin: "b", Seq: 2, Time: 4, Type: models.OpSetDeleted, Node: dir, Deleted: false},
		setParentOp("c", 1, 5, file, models.RootID),
	}

	forward := NewTree()
	for _, op := range ops {
		forward.Apply(op)
	}

	backward := NewTree()
	for i := len(ops) - 1; i >= 0; i-- {
		backward.Apply(ops[i])
	}

	assert.Equal(t, paths(forward.Project()), paths(backward.Project()),
		"projection must not depend on delivery order")
}

func TestTree_ApplyIdempotent(t *testing.T) {
	tree := NewTree()
	id := models.LocalID("a", 1)
	op := createOp("a", 1, 1, id, false, "f.txt", models.RootID)

	assert.True(t, tree.Apply(op))
	assert.False(t, tree.Apply(op), "re-applying the same op must be a no-op")
	assert.Equal(t, []string{"f.txt"}, paths(tree.Project()))
}

func TestTree_PlaceholderBeforeCreate(t *testing.T) {
	// set_name приходит раньше create_node той же ноды
	tree := NewTree()
	id := models.LocalID("a", 1)

	tree.Apply(&models.Operation{Origin: "a", Seq: 2, Time: 5, Type: models.OpSetName, Node: id, Name: "renamed.txt"})

	// Плейсхолдер не виден в проекции
	assert.Empty(t, paths(tree.Project()))

	// create_node с меньшей меткой не перетирает более новое имя
	tree.Apply(createOp("a", 1, 1, id, false, "created.txt", models.RootID))

	proj := tree.Project()
	assert.Equal(t, []string{"renamed.txt"}, paths(proj))
}

func TestTree_TombstoneHidesSubtree(t *testing.T) {
	tree := NewTree()
	dir := models.LocalID("a", 1)
	file := models.LocalID("a", 2)
	tree.Apply(createOp("a", 1, 1, dir, true, "docs", models.RootID))
	tree.Apply(createOp("a", 2, 2, file, false, "readme.md", dir))

	tree.Apply(&models.Operation{Origin: "a", Seq: 3, Time: 3, Type: models.OpSetDeleted, Node: dir, Deleted: true})

	// Потомки удаленной директории тоже исчезают из проекции
	assert.Empty(t, paths(tree.Project()))

	// Восстановление возвращает поддерево целиком
	tree.Apply(&models.Operation{Origin: "a", Seq: 4, Time: 4, Type: models.OpSetDeleted, Node: dir, Deleted: false})
	assert.Equal(t, []string{"docs", "docs/readme.md"}, paths(tree.Project()))
}

func TestTree_CycleBrokenDeterministically(t *testing.T) {
	// Реплика a перемещает x под y, реплика b конкурентно
	// перемещает y под x: CRDT состояние содержит цикл
	x := models.LocalID("a", 1)
	y := models.LocalID("a", 2)

	build := func(order []int) *Tree {
		tree := NewTree()
		ops := []*models.Operation{
			createOp("a", 1, 1, x, true, "x", models.RootID),
			createOp("a", 2, 2, y, true, "y", models.RootID),
			setParentOp("a", 3, 3, x, y),
			setParentOp("b", 1, 3, y, x),
		}
		for _, i := range order {
			tree.Apply(ops[i])
		}
		return tree
	}

	forward := build([]int{0, 1, 2, 3})
	backward := build([]int{3, 2, 1, 0})

	// Цикл разорван: оба узла видимы, проекция детерминирована
	got := paths(forward.Project())
	require.Len(t, got, 2)
	assert.Equal(t, got, paths(backward.Project()))
}

func TestTree_NameCollisionOneWinner(t *testing.T) {
	// Две реплики конкурентно создают "notes.txt" под корнем
	tree := NewTree()
	fromA := models.LocalID("a", 1)
	fromB := models.LocalID("b", 1)
	tree.Apply(createOp("a", 1, 1, fromA, false, "notes.txt", models.RootID))
	tree.Apply(createOp("b", 1, 1, fromB, false, "notes.txt", models.RootID))

	proj := tree.Project()
	require.Len(t, proj.Entries(), 1, "at most one visible child per (parent, name)")

	// Победитель детерминирован: наименьшая реплика в метке имени
	id, ok := proj.IDAt("notes.txt")
	require.True(t, ok)
	assert.Equal(t, fromA, id)

	// Проигравший остается в CRDT
	_, ok = tree.Get(fromB)
	assert.True(t, ok)
}

func TestTree_CollisionResolvedByRename(t *testing.T) {
	tree := NewTree()
	fromA := models.LocalID("a", 1)
	fromB := models.LocalID("b", 1)
	tree.Apply(createOp("a", 1, 1, fromA, false, "notes.txt", models.RootID))
	tree.Apply(createOp("b", 1, 1, fromB, false, "notes.txt", models.RootID))

	// Переименование проигравшего устраняет коллизию
	tree.Apply(&models.Operation{Origin: "b", Seq: 2, Time: 2, Type: models.OpSetName, Node: fromB, Name: "notes-2.txt"})

	assert.Equal(t, []string{"notes-2.txt", "notes.txt"}, paths(tree.Project()))
}

func TestTree_MergeStates(t *testing.T) {
	left := NewTree()
	right := NewTree()
	id := models.LocalID("a", 1)

	left.Apply(createOp("a", 1, 1, id, false, "f.txt", models.RootID))
	right.Apply(createOp("a", 1, 1, id, false, "f.txt", models.RootID))
	right.Apply(&models.Operation{Origin: "b", Seq: 1, Time: 5, Type: models.OpSetName, Node: id, Name: "g.txt"})

	left.Merge(right.Nodes())

	node, _ := left.Get(id)
	assert.Equal(t, "g.txt", node.Name.Value)

	// Повторное слияние идемпотентно
	left.Merge(right.Nodes())
	assert.Equal(t, []string{"g.txt"}, paths(left.Project()))
}

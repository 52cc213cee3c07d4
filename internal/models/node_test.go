package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeID_String(t *testing.T) {
	assert.Equal(t, "root", RootID.String())
	assert.Equal(t, "local:replica-a:7", LocalID("replica-a", 7).String())
	assert.Equal(t, "hist:abc123:docs/readme.md", HistoricalID("abc123", "docs/readme.md").String())
	assert.Equal(t, "", NodeID{}.String())
}

func TestNodeID_IsZeroIsRoot(t *testing.T) {
	assert.True(t, NodeID{}.IsZero())
	assert.False(t, RootID.IsZero())
	assert.True(t, RootID.IsRoot())
	assert.False(t, LocalID("a", 1).IsRoot())
}

func TestNodeID_LessTotalOrder(t *testing.T) {
	a := LocalID("a", 1)
	b := LocalID("b", 1)
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.False(t, a.Less(a))
}

func TestStamp_After(t *testing.T) {
	assert.True(t, Stamp{Time: 2, Replica: "a"}.After(Stamp{Time: 1, Replica: "z"}))
	assert.False(t, Stamp{Time: 1, Replica: "z"}.After(Stamp{Time: 2, Replica: "a"}))

	// при равном времени побеждает больший replica id
	assert.True(t, Stamp{Time: 1, Replica: "z"}.After(Stamp{Time: 1, Replica: "a"}))
	assert.False(t, Stamp{Time: 1, Replica: "a"}.After(Stamp{Time: 1, Replica: "a"}))
}

func TestStringRegister_LWW(t *testing.T) {
	var r StringRegister

	// первая запись всегда принимается
	assert.True(t, r.Set("old", Stamp{Time: 5, Replica: "a"}))
	assert.Equal(t, "old", r.Value)

	// более старая метка отбрасывается
	assert.False(t, r.Set("stale", Stamp{Time: 3, Replica: "z"}))
	assert.Equal(t, "old", r.Value)

	assert.True(t, r.Set("new", Stamp{Time: 7, Replica: "a"}))
	assert.Equal(t, "new", r.Value)
}

func TestBoolRegister_TombstoneRoundtrip(t *testing.T) {
	var r BoolRegister
	assert.True(t, r.Set(true, Stamp{Time: 1, Replica: "a"}))
	assert.True(t, r.Value)

	// восстановление более поздней записью
	assert.True(t, r.Set(false, Stamp{Time: 2, Replica: "a"}))
	assert.False(t, r.Value)
}

func TestNode_MaterializedVisible(t *testing.T) {
	n := &Node{ID: LocalID("a", 1)}
	assert.False(t, n.Materialized())
	assert.False(t, n.Visible())

	n.Name.Set("file.txt", Stamp{Time: 1, Replica: "a"})
	assert.True(t, n.Materialized())
	assert.True(t, n.Visible())

	n.Deleted.Set(true, Stamp{Time: 2, Replica: "a"})
	assert.True(t, n.Materialized())
	assert.False(t, n.Visible())
}

func TestNode_CloneIndependent(t *testing.T) {
	n := &Node{ID: LocalID("a", 1)}
	n.Name.Set("a.txt", Stamp{Time: 1, Replica: "a"})

	clone := n.Clone()
	clone.Name.Set("b.txt", Stamp{Time: 2, Replica: "a"})

	assert.Equal(t, "a.txt", n.Name.Value)
	assert.Equal(t, "b.txt", clone.Name.Value)
}

package crdt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeqSet_AddHas(t *testing.T) {
	set := make(SeqSet)

	assert.True(t, set.Add(1))
	assert.True(t, set.Add(64))
	assert.True(t, set.Add(65))
	assert.True(t, set.Add(1000))

	assert.True(t, set.Has(1))
	assert.True(t, set.Has(64))
	assert.True(t, set.Has(65))
	assert.True(t, set.Has(1000))
	assert.False(t, set.Has(2))
	assert.False(t, set.Has(999))

	// Повторное добавление - дубликат
	assert.False(t, set.Add(64))

	// Нулевой номер не существует: нумерация с 1
	assert.False(t, set.Add(0))
	assert.False(t, set.Has(0))
}

func TestSeqSet_MaxAndNextContiguous(t *testing.T) {
	set := make(SeqSet)
	assert.Equal(t, uint64(0), set.Max())
	assert.Equal(t, uint64(1), set.NextContiguous())

	set.Add(1)
	set.Add(2)
	set.Add(5)

	assert.Equal(t, uint64(5), set.Max())
	// Первый пропуск - 3, несмотря на примененную 5
	assert.Equal(t, uint64(3), set.NextContiguous())

	set.Add(3)
	set.Add(4)
	assert.Equal(t, uint64(6), set.NextContiguous())
}

func TestSeqSet_Missing(t *testing.T) {
	local := make(SeqSet)
	remote := make(SeqSet)
	for _, seq := range []uint64{1, 2, 3, 4, 5, 6, 7, 8} {
		remote.Add(seq)
	}
	local.Add(1)
	local.Add(2)
	local.Add(5)

	ranges := local.Missing(remote)
	assert.Equal(t, []SeqRange{
		{From: 3, To: 4},
		{From: 6, To: 8},
	}, ranges)

	// Симметричный случай: у remote нет ничего нового
	assert.Empty(t, remote.Missing(local))
}

func TestStateVector_RecordDuplicates(t *testing.T) {
	v := NewStateVector()

	assert.True(t, v.Record("replica-a", 1))
	assert.False(t, v.Record("replica-a", 1), "duplicate must be rejected")
	assert.True(t, v.Record("replica-a", 2))
	assert.True(t, v.Record("replica-b", 1))

	assert.True(t, v.Has("replica-a", 1))
	assert.True(t, v.Has("replica-b", 1))
	assert.False(t, v.Has("replica-b", 2))
	assert.False(t, v.Has("replica-c", 1))
}

func TestStateVector_OutOfOrderDelivery(t *testing.T) {
	// Битовая карта переживает доставку не по порядку:
	// high-water-mark потерял бы пропущенную 2
	v := NewStateVector()
	v.Record("replica-a", 1)
	v.Record("replica-a", 3)

	assert.False(t, v.Has("replica-a", 2))
	assert.True(t, v.Record("replica-a", 2))
	assert.False(t, v.Record("replica-a", 3), "seq 3 already recorded")
}

func TestStateVector_Merge(t *testing.T) {
	a := NewStateVector()
	a.Record("replica-a", 1)
	a.Record("replica-a", 2)

	b := NewStateVector()
	b.Record("replica-a", 2)
	b.Record("replica-a", 3)
	b.Record("replica-b", 1)

	a.Merge(b)

	for _, seq := range []uint64{1, 2, 3} {
		assert.True(t, a.Has("replica-a", seq))
	}
	assert.True(t, a.Has("replica-b", 1))
}

func TestStateVector_Missing(t *testing.T) {
	local := NewStateVector()
	local.Record("replica-a", 1)

	peer := NewStateVector()
	peer.Record("replica-a", 1)
	peer.Record("replica-a", 2)
	peer.Record("replica-b", 1)
	peer.Record("replica-b", 2)

	missing := local.Missing(peer)
	require.Len(t, missing, 2)

	// Результат отсортирован по origin
	assert.Equal(t, "replica-a", missing[0].Origin)
	assert.Equal(t, []SeqRange{{From: 2, To: 2}}, missing[0].Ranges)
	assert.Equal(t, "replica-b", missing[1].Origin)
	assert.Equal(t, []SeqRange{{From: 1, To: 2}}, missing[1].Ranges)
}

func TestStateVector_CloneIndependent(t *testing.T) {
	v := NewStateVector()
	v.Record("replica-a", 1)

	clone := v.Clone()
	clone.Record("replica-a", 2)
	clone.Record("replica-b", 1)

	assert.False(t, v.Has("replica-a", 2))
	assert.False(t, v.Has("replica-b", 1))
	assert.True(t, clone.Has("replica-a", 1))
}

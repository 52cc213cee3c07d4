package crdt

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock_TickMonotonic(t *testing.T) {
	clock := NewClockWithReplica("replica-a")

	s1 := clock.Tick()
	s2 := clock.Tick()

	assert.Equal(t, "replica-a", s1.Replica)
	assert.True(t, s2.After(s1), "each tick must produce a strictly newer stamp")
}

func TestClock_ObserveAdvancesTime(t *testing.T) {
	clock := NewClockWithReplica("replica-a")
	clock.Tick() // time = 1

	clock.Observe(100)
	stamp := clock.Tick()
	assert.Equal(t, int64(101), stamp.Time)

	// Меньшее удаленное значение не откатывает время назад
	clock.Observe(5)
	stamp = clock.Tick()
	assert.Equal(t, int64(102), stamp.Time)
}

func TestClock_OpSeqNoGaps(t *testing.T) {
	clock := NewClockWithReplica("replica-a")

	for want := uint64(1); want <= 5; want++ {
		assert.Equal(t, want, clock.NextOpSeq())
	}
}

func TestClock_NextIDsAllocatesBlock(t *testing.T) {
	clock := NewClockWithReplica("replica-a")

	first := clock.NextIDs(5)
	assert.Equal(t, uint64(1), first)

	// Следующий id идет сразу за выделенным блоком
	assert.Equal(t, uint64(6), clock.NextID())
	assert.Equal(t, uint64(7), clock.NextIDs(3))
}

func TestClock_StateRestore(t *testing.T) {
	clock := NewClockWithReplica("replica-a")
	clock.Tick()
	clock.Tick()
	clock.NextOpSeq()
	clock.NextIDs(10)

	state := clock.State()
	require.Equal(t, "replica-a", state.Replica)

	restored := NewClock()
	restored.Restore(state)

	// Счетчики продолжают с того же места
	assert.Equal(t, "replica-a", restored.Replica())
	assert.Equal(t, int64(3), restored.Tick().Time)
	assert.Equal(t, uint64(2), restored.NextOpSeq())
	assert.Equal(t, uint64(11), restored.NextID())
}

func TestClock_ConcurrentTicksUnique(t *testing.T) {
	clock := NewClockWithReplica("replica-a")

	const goroutines = 8
	const ticks = 100

	var wg sync.WaitGroup
	seen := make([][]int64, goroutines)
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < ticks; i++ {
				seen[g] = append(seen[g], clock.Tick().Time)
			}
		}(g)
	}
	wg.Wait()

	unique := make(map[int64]bool)
	for _, times := range seen {
		for _, ts := range times {
			assert.False(t, unique[ts], "timestamp %d allocated twice", ts)
			unique[ts] = true
		}
	}
	assert.Len(t, unique, goroutines*ticks)
}

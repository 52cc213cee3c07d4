package crdt

import (
	"sync"

	"github.com/google/uuid"

	"github.com/iudanet/treesync/internal/models"
)

// Clock контекст реплики: идентификатор реплики и набор монотонных
// счетчиков, из которых конструируются все операции. Никакого
// глобального состояния - каждый открытый репозиторий владеет
// ровно одним экземпляром Clock.
//
// Счетчики:
//   - time: Lamport timestamp для LWW регистров
//   - opSeq: порядковый номер операции в причинном логе реплики
//     (растет без пропусков, отслеживается state vector'ом)
//   - idSeq: выделение уникальных id для узлов и текстовых элементов
type Clock struct {
	mu      sync.Mutex
	replica string
	time    int64
	opSeq   uint64
	idSeq   uint64
}

// NewClock создает контекст реплики с новым UUID
func NewClock() *Clock {
	return &Clock{replica: uuid.New().String()}
}

// NewClockWithReplica создает контекст реплики с заданным идентификатором.
// Используется в тестах и при восстановлении состояния после перезапуска.
func NewClockWithReplica(replica string) *Clock {
	return &Clock{replica: replica}
}

// Replica возвращает идентификатор реплики
func (c *Clock) Replica() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.replica
}

// Tick увеличивает Lamport timestamp и возвращает новую LWW метку
func (c *Clock) Tick() models.Stamp {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.time++
	return models.Stamp{Time: c.time, Replica: c.replica}
}

// Observe обновляет Lamport timestamp по полученному удаленному значению:
// time = max(time, remote)
func (c *Clock) Observe(remote int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if remote > c.time {
		c.time = remote
	}
}

// NextOpSeq выделяет следующий порядковый номер операции
func (c *Clock) NextOpSeq() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opSeq++
	return c.opSeq
}

// NextID выделяет один уникальный id (для узла дерева)
func (c *Clock) NextID() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.idSeq++
	return c.idSeq
}

// NextIDs выделяет n последовательных id (для текстовых элементов)
// и возвращает первый из них
func (c *Clock) NextIDs(n int) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	first := c.idSeq + 1
	c.idSeq += uint64(n)
	return first
}

// State возвращает снимок счетчиков для персистентности
func (c *Clock) State() ClockState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ClockState{
		Replica: c.replica,
		Time:    c.time,
		OpSeq:   c.opSeq,
		IDSeq:   c.idSeq,
	}
}

// Restore восстанавливает счетчики после перезапуска
func (c *Clock) Restore(state ClockState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replica = state.Replica
	c.time = state.Time
	c.opSeq = state.OpSeq
	c.idSeq = state.IDSeq
}

// ClockState сериализуемый снимок счетчиков реплики
type ClockState struct {
	Replica string `json:"replica"`
	Time    int64  `json:"time"`
	OpSeq   uint64 `json:"op_seq"`
	IDSeq   uint64 `json:"id_seq"`
}

package crdt

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/iudanet/treesync/internal/models"
)

// ApplyResult результат приема операции движком
type ApplyResult int

const (
	// ResultApplied операция применена к состоянию
	ResultApplied ApplyResult = iota
	// ResultDuplicate операция уже была применена ранее (no-op)
	ResultDuplicate
	// ResultDeferred операция буферизована до заполнения причинного пропуска
	ResultDeferred
)

func (r ApplyResult) String() string {
	switch r {
	case ResultApplied:
		return "applied"
	case ResultDuplicate:
		return "duplicate"
	case ResultDeferred:
		return "deferred"
	default:
		return "unknown"
	}
}

// DefaultGapTimeout время ожидания недостающих предшественников,
// после которого пропуск считается застрявшим (не фатально,
// выводится как предупреждение)
const DefaultGapTimeout = 30 * time.Second

// Engine движок слияния: применяет входящие удаленные операции к
// локальному CRDT состоянию и порождает локальные операции для
// рассылки. Все мутации - маленькие коммутативные операции под
// единым мьютексом хранилища: битовая карта причинности и
// содержимое дерева/текстов обновляются атомарно вместе, чтобы
// вектор состояния не убегал вперед видимых изменений.
type Engine struct {
	mu     sync.Mutex
	logger *slog.Logger
	clock  *Clock
	tree   *Tree
	texts  map[models.NodeID]*Text
	vector StateVector
	log    []*models.Operation

	// операции, ожидающие недостающих причинных предшественников
	pending      map[string][]*models.Operation
	pendingSince map[string]time.Time
	gapTimeout   time.Duration
}

// NewEngine создает движок для реплики clock
func NewEngine(clock *Clock, logger *slog.Logger) *Engine {
	return &Engine{
		logger:       logger.With("component", "engine"),
		clock:        clock,
		tree:         NewTree(),
		texts:        make(map[models.NodeID]*Text),
		vector:       NewStateVector(),
		pending:      make(map[string][]*models.Operation),
		pendingSince: make(map[string]time.Time),
		gapTimeout:   DefaultGapTimeout,
	}
}

// SetGapTimeout настраивает таймаут застрявшего причинного пропуска
func (e *Engine) SetGapTimeout(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gapTimeout = d
}

// Clock возвращает контекст реплики
func (e *Engine) Clock() *Clock {
	return e.clock
}

// Receive принимает удаленную операцию. Дубликаты определяются по
// битовой карте вектора состояния и игнорируются; операции с
// незаполненным причинным пропуском (предыдущая операция той же
// реплики еще не применена) буферизуются до его заполнения.
// Операции разных реплик могут свободно чередоваться: слияние
// коммутативно по построению.
func (e *Engine) Receive(op *models.Operation) ApplyResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.receiveLocked(op)
}

func (e *Engine) receiveLocked(op *models.Operation) ApplyResult {
	if e.vector.Has(op.Origin, op.Seq) {
		return ResultDuplicate
	}

	if op.Seq != e.nextSeq(op.Origin) || !e.textDepsSatisfied(op) {
		e.bufferOp(op)
		return ResultDeferred
	}

	e.applyLocked(op)
	e.drain()
	return ResultApplied
}

// textDepsSatisfied проверяет, что все элементы, на которые ссылается
// текстовая операция, уже доставлены. Вставка ссылается на левого
// соседа, удаление на свои цели; элементы могли быть созданы другой
// репликой, поэтому порядковый номер origin такой пропуск не ловит.
func (e *Engine) textDepsSatisfied(op *models.Operation) bool {
	switch op.Type {
	case models.OpTextInsert:
		if op.Left.IsZero() {
			return true
		}
		doc, ok := e.texts[op.Node]
		return ok && doc.Contains(op.Left)
	case models.OpTextDelete:
		doc, ok := e.texts[op.Node]
		if !ok {
			return false
		}
		for _, target := range op.Targets {
			if !doc.Contains(target) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// BatchResult итог приема пакета операций
type BatchResult struct {
	Applied    int
	Duplicates int
	Deferred   int
}

// ReceiveBatch принимает пакет операций. Пакет предварительно
// сортируется по (origin, seq), чтобы внутрипакетные пропуски
// не приводили к лишней буферизации.
func (e *Engine) ReceiveBatch(ops []*models.Operation) BatchResult {
	sorted := make([]*models.Operation, len(ops))
	copy(sorted, ops)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Origin != sorted[j].Origin {
			return sorted[i].Origin < sorted[j].Origin
		}
		return sorted[i].Seq < sorted[j].Seq
	})

	e.mu.Lock()
	defer e.mu.Unlock()

	var result BatchResult
	var deferred []*models.Operation
	for _, op := range sorted {
		switch e.receiveLocked(op) {
		case ResultApplied:
			result.Applied++
		case ResultDuplicate:
			result.Duplicates++
		case ResultDeferred:
			deferred = append(deferred, op)
		}
	}
	// отложенная операция могла примениться позже в том же пакете,
	// когда drain закрыл ее зависимость
	for _, op := range deferred {
		if e.vector.Has(op.Origin, op.Seq) {
			result.Applied++
		} else {
			result.Deferred++
		}
	}
	return result
}

// nextSeq следующий ожидаемый порядковый номер реплики origin
func (e *Engine) nextSeq(origin string) uint64 {
	set, ok := e.vector[origin]
	if !ok {
		return 1
	}
	return set.NextContiguous()
}

// bufferOp буферизует операцию до заполнения причинного пропуска
func (e *Engine) bufferOp(op *models.Operation) {
	queue := e.pending[op.Origin]
	for _, buffered := range queue {
		if buffered.Seq == op.Seq {
			return
		}
	}
	queue = append(queue, op.Clone())
	sort.Slice(queue, func(i, j int) bool { return queue[i].Seq < queue[j].Seq })
	e.pending[op.Origin] = queue
	if _, ok := e.pendingSince[op.Origin]; !ok {
		e.pendingSince[op.Origin] = time.Now()
	}
	e.logger.Debug("operation deferred: unmet causal dependency",
		"origin", op.Origin,
		"seq", op.Seq,
		"expected", e.nextSeq(op.Origin))
}

// drain применяет буферизованные операции, ставшие применимыми.
// Применение операции одной реплики может закрыть зависимость
// операции другой (вставка после чужого элемента), поэтому проход
// повторяется по всем очередям до неподвижной точки.
func (e *Engine) drain() {
	for progress := true; progress; {
		progress = false
		for origin, queue := range e.pending {
			applied := 0
			for len(queue) > 0 && queue[0].Seq == e.nextSeq(origin) && e.textDepsSatisfied(queue[0]) {
				e.applyLocked(queue[0])
				queue = queue[1:]
				applied++
			}
			if applied == 0 {
				continue
			}
			progress = true
			if len(queue) == 0 {
				delete(e.pending, origin)
				delete(e.pendingSince, origin)
			} else {
				e.pending[origin] = queue
				e.pendingSince[origin] = time.Now()
			}
		}
	}
}

// applyLocked применяет операцию к хранилищу и атомарно отмечает
// ее в векторе состояния. Вызывается под e.mu.
func (e *Engine) applyLocked(op *models.Operation) {
	e.clock.Observe(op.Time)

	switch op.Type {
	case models.OpTextInsert, models.OpTextDelete:
		doc, ok := e.texts[op.Node]
		if !ok {
			doc = NewText()
			e.texts[op.Node] = doc
		}
		doc.Apply(op)
	default:
		changed := e.tree.Apply(op)
		if !changed {
			// проигравшая LWW запись: конфликт разрешен
			// детерминированно, наблюдаемость через лог
			e.logger.Debug("merge conflict resolved",
				"origin", op.Origin,
				"seq", op.Seq,
				"type", string(op.Type),
				"node", op.Node.String())
		}
	}

	e.vector.Record(op.Origin, op.Seq)
	e.log = append(e.log, op.Clone())
}

// record регистрирует локально созданную операцию
func (e *Engine) record(op *models.Operation) *models.Operation {
	e.vector.Record(op.Origin, op.Seq)
	e.log = append(e.log, op.Clone())
	return op
}

// CreateNode создает узел и возвращает операцию для рассылки
func (e *Engine) CreateNode(id models.NodeID, isDir bool, name string, parent models.NodeID) *models.Operation {
	e.mu.Lock()
	defer e.mu.Unlock()
	stamp := e.clock.Tick()
	op := &models.Operation{
		Origin: stamp.Replica,
		Seq:    e.clock.NextOpSeq(),
		Time:   stamp.Time,
		Type:   models.OpCreateNode,
		Node:   id,
		IsDir:  isDir,
		Name:   name,
		Parent: parent,
	}
	e.tree.Apply(op)
	return e.record(op)
}

// SetName переименовывает узел
func (e *Engine) SetName(id models.NodeID, name string) *models.Operation {
	e.mu.Lock()
	defer e.mu.Unlock()
	stamp := e.clock.Tick()
	op := &models.Operation{
		Origin: stamp.Replica,
		Seq:    e.clock.NextOpSeq(),
		Time:   stamp.Time,
		Type:   models.OpSetName,
		Node:   id,
		Name:   name,
	}
	e.tree.Apply(op)
	return e.record(op)
}

// SetParent перемещает узел под другого родителя
func (e *Engine) SetParent(id, parent models.NodeID) *models.Operation {
	e.mu.Lock()
	defer e.mu.Unlock()
	stamp := e.clock.Tick()
	op := &models.Operation{
		Origin: stamp.Replica,
		Seq:    e.clock.NextOpSeq(),
		Time:   stamp.Time,
		Type:   models.OpSetParent,
		Node:   id,
		Parent: parent,
	}
	e.tree.Apply(op)
	return e.record(op)
}

// SetDeleted записывает tombstone регистр узла
func (e *Engine) SetDeleted(id models.NodeID, deleted bool) *models.Operation {
	e.mu.Lock()
	defer e.mu.Unlock()
	stamp := e.clock.Tick()
	op := &models.Operation{
		Origin:  stamp.Replica,
		Seq:     e.clock.NextOpSeq(),
		Time:    stamp.Time,
		Type:    models.OpSetDeleted,
		Node:    id,
		Deleted: deleted,
	}
	e.tree.Apply(op)
	return e.record(op)
}

// InsertText вставляет текст в видимое смещение документа узла
func (e *Engine) InsertText(id models.NodeID, offset int, text string) *models.Operation {
	e.mu.Lock()
	defer e.mu.Unlock()
	doc, ok := e.texts[id]
	if !ok {
		doc = NewText()
		e.texts[id] = doc
	}
	op := doc.InsertAt(id, offset, text, e.clock)
	if op == nil {
		return nil
	}
	return e.record(op)
}

// InsertTextAt вставляет текст по якорю
func (e *Engine) InsertTextAt(id models.NodeID, a Anchor, text string) *models.Operation {
	e.mu.Lock()
	defer e.mu.Unlock()
	doc, ok := e.texts[id]
	if !ok {
		doc = NewText()
		e.texts[id] = doc
	}
	op := doc.Insert(id, a, text, e.clock)
	if op == nil {
		return nil
	}
	return e.record(op)
}

// DeleteText удаляет видимый диапазон [start, end) документа узла
func (e *Engine) DeleteText(id models.NodeID, start, end int) *models.Operation {
	e.mu.Lock()
	defer e.mu.Unlock()
	doc, ok := e.texts[id]
	if !ok {
		return nil
	}
	op := doc.DeleteRange(id, start, end, e.clock)
	if op == nil {
		return nil
	}
	return e.record(op)
}

// Project проецирует текущее дерево в видимые пути
func (e *Engine) Project() *Projection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tree.Project()
}

// Node возвращает копию узла
func (e *Engine) Node(id models.NodeID) (*models.Node, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tree.Get(id)
}

// Content возвращает видимое содержимое документа узла
func (e *Engine) Content(id models.NodeID) (string, bool) {
	e.mu.Lock()
	doc, ok := e.texts[id]
	e.mu.Unlock()
	if !ok {
		return "", false
	}
	return doc.String(), true
}

// TextDoc возвращает документ узла (для якорей)
func (e *Engine) TextDoc(id models.NodeID) (*Text, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	doc, ok := e.texts[id]
	return doc, ok
}

// Vector возвращает копию вектора состояния
func (e *Engine) Vector() StateVector {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.vector.Clone()
}

// OpsMissingFrom возвращает операции причинного лога, которые peer
// еще не видел согласно его вектору состояния. Минимальный догон
// вместо полной передачи лога.
func (e *Engine) OpsMissingFrom(peer StateVector) []*models.Operation {
	e.mu.Lock()
	defer e.mu.Unlock()
	var ops []*models.Operation
	for _, op := range e.log {
		if !peer.Has(op.Origin, op.Seq) {
			ops = append(ops, op.Clone())
		}
	}
	return ops
}

// Log возвращает копию причинного лога в порядке применения
func (e *Engine) Log() []*models.Operation {
	e.mu.Lock()
	defer e.mu.Unlock()
	ops := make([]*models.Operation, len(e.log))
	for i, op := range e.log {
		ops[i] = op.Clone()
	}
	return ops
}

// GapWarning застрявший причинный пропуск: операции origin
// буферизованы дольше gapTimeout в ожидании предшественников
type GapWarning struct {
	Origin   string
	Expected uint64
	Buffered int
	Waiting  time.Duration
}

// StalledGaps возвращает пропуски, ожидающие дольше gapTimeout.
// Не фатально: выводится как предупреждение о застрявшей синхронизации.
func (e *Engine) StalledGaps(now time.Time) []GapWarning {
	e.mu.Lock()
	defer e.mu.Unlock()

	origins := make([]string, 0, len(e.pendingSince))
	for origin := range e.pendingSince {
		origins = append(origins, origin)
	}
	sort.Strings(origins)

	var warnings []GapWarning
	for _, origin := range origins {
		since := e.pendingSince[origin]
		if waiting := now.Sub(since); waiting >= e.gapTimeout {
			warnings = append(warnings, GapWarning{
				Origin:   origin,
				Expected: e.nextSeq(origin),
				Buffered: len(e.pending[origin]),
				Waiting:  waiting,
			})
		}
	}
	return warnings
}

// TextState сериализуемое состояние одного документа
type TextState struct {
	Node     models.NodeID `json:"node"`
	Elements []TextElement `json:"elements"`
}

// State сериализуемый снимок движка. Достаточен для возобновления
// после перезапуска без повторного вывода идентификаторов.
// Буферизованные (deferred) операции не сохраняются: они будут
// получены заново при следующей синхронизации.
type State struct {
	Clock  ClockState          `json:"clock"`
	Nodes  []*models.Node      `json:"nodes"`
	Texts  []TextState         `json:"texts"`
	Vector StateVector         `json:"vector"`
	Log    []*models.Operation `json:"log"`
}

// State возвращает снимок движка
func (e *Engine) State() *State {
	e.mu.Lock()
	defer e.mu.Unlock()

	texts := make([]TextState, 0, len(e.texts))
	ids := make([]models.NodeID, 0, len(e.texts))
	for id := range e.texts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
	for _, id := range ids {
		texts = append(texts, TextState{Node: id, Elements: e.texts[id].Elements()})
	}

	log := make([]*models.Operation, len(e.log))
	for i, op := range e.log {
		log[i] = op.Clone()
	}

	return &State{
		Clock:  e.clock.State(),
		Nodes:  e.tree.Nodes(),
		Texts:  texts,
		Vector: e.vector.Clone(),
		Log:    log,
	}
}

// Restore восстанавливает движок из снимка
func (e *Engine) Restore(state *State) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.clock.Restore(state.Clock)
	e.tree.Restore(state.Nodes)
	e.texts = make(map[models.NodeID]*Text, len(state.Texts))
	for _, ts := range state.Texts {
		doc := NewText()
		doc.RestoreElements(ts.Elements)
		e.texts[ts.Node] = doc
	}
	e.vector = state.Vector.Clone()
	e.log = make([]*models.Operation, len(state.Log))
	for i, op := range state.Log {
		e.log[i] = op.Clone()
	}
	e.pending = make(map[string][]*models.Operation)
	e.pendingSince = make(map[string]time.Time)
}

package crdt

import (
	"strings"
	"sync"

	"github.com/iudanet/treesync/internal/models"
)

// TextElement один символ текстового CRDT. Каждый элемент несет
// глобально уникальный id и Lamport timestamp вставки; удаление -
// это tombstone, а не физическое удаление, чтобы якоря на удаленный
// текст оставались разрешимыми.
type TextElement struct {
	ID      models.ElementID `json:"id"`
	Time    int64            `json:"time"`
	Rune    rune             `json:"rune"`
	Deleted bool             `json:"deleted"`
}

// before детерминированный порядок конкурентных вставок в одну
// позицию: больший (Time, Replica, Seq) размещается левее. Порядок
// выводится только из id элементов, никогда из настенного времени,
// что гарантирует байт-в-байт сходимость на любой паре реплик,
// применивших один и тот же набор операций.
func (e TextElement) before(other TextElement) bool {
	if e.Time != other.Time {
		return e.Time > other.Time
	}
	if e.ID.Replica != other.ID.Replica {
		return e.ID.Replica > other.ID.Replica
	}
	return e.ID.Seq > other.ID.Seq
}

// Bias сторона привязки якоря к элементу
type Bias int

const (
	// BiasLeft якорь привязан к левой границе элемента
	BiasLeft Bias = iota
	// BiasRight якорь привязан к правой границе элемента
	BiasRight
)

// Anchor стабильная ссылка на логическую позицию в тексте:
// id элемента (возможно, tombstone) плюс сторона привязки.
// Разрешается в живое смещение на любом последующем состоянии CRDT;
// конкурентные правки вокруг якоря не меняют то место, на которое
// он указывает, пока жив сам привязанный элемент.
type Anchor struct {
	Element models.ElementID `json:"element"`
	Bias    Bias             `json:"bias"`
}

// AnchorStart якорь начала документа
var AnchorStart = Anchor{Bias: BiasRight}

// Text последовательностный CRDT для содержимого одного текстового
// файла. Поддерживает конкурентные вставки и удаления без
// координации между репликами.
type Text struct {
	mu    sync.RWMutex
	elems []TextElement
}

// NewText создает пустой документ
func NewText() *Text {
	return &Text{}
}

// String возвращает видимое содержимое документа
func (d *Text) String() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var b strings.Builder
	for _, e := range d.elems {
		if !e.Deleted {
			b.WriteRune(e.Rune)
		}
	}
	return b.String()
}

// Len возвращает длину видимого содержимого в рунах
func (d *Text) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	n := 0
	for _, e := range d.elems {
		if !e.Deleted {
			n++
		}
	}
	return n
}

// indexOf возвращает позицию элемента в последовательности, -1 если нет
func (d *Text) indexOf(id models.ElementID) int {
	for i, e := range d.elems {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Contains сообщает, доставлен ли элемент с данным id.
// Tombstone считается доставленным.
func (d *Text) Contains(id models.ElementID) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.indexOf(id) >= 0
}

// Apply применяет операцию text_insert или text_delete.
// Идемпотентно: повторное применение не меняет состояние.
func (d *Text) Apply(op *models.Operation) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch op.Type {
	case models.OpTextInsert:
		return d.applyInsert(op)
	case models.OpTextDelete:
		return d.applyDelete(op)
	default:
		return false
	}
}

func (d *Text) applyInsert(op *models.Operation) bool {
	if d.indexOf(op.Element) >= 0 {
		// дубликат
		return false
	}

	runes := []rune(op.Text)
	if len(runes) == 0 {
		return false
	}

	first := TextElement{
		ID:   op.Element,
		Time: op.Time,
		Rune: runes[0],
	}

	// позиция вставки: сразу после левого соседа, затем пропускаем
	// конкурентные вставки с большим приоритетом, чтобы все реплики
	// сошлись на одном порядке
	pos := 0
	if !op.Left.IsZero() {
		left := d.indexOf(op.Left)
		if left < 0 {
			// левый сосед еще не доставлен; движок буферизует
			// операцию до доставки соседа, так что сюда мы
			// попадаем только при нарушении контракта
			return false
		}
		pos = left + 1
	}
	for pos < len(d.elems) && d.elems[pos].before(first) {
		pos++
	}

	block := make([]TextElement, len(runes))
	for i, r := range runes {
		block[i] = TextElement{
			ID:   models.ElementID{Replica: op.Element.Replica, Seq: op.Element.Seq + uint64(i)},
			Time: op.Time,
			Rune: r,
		}
	}

	merged := make([]TextElement, 0, len(d.elems)+len(block))
	merged = append(merged, d.elems[:pos]...)
	merged = append(merged, block...)
	merged = append(merged, d.elems[pos:]...)
	d.elems = merged
	return true
}

func (d *Text) applyDelete(op *models.Operation) bool {
	changed := false
	for _, target := range op.Targets {
		if i := d.indexOf(target); i >= 0 && !d.elems[i].Deleted {
			d.elems[i].Deleted = true
			changed = true
		}
	}
	return changed
}

// Insert строит операцию вставки текста после якоря.
// Операция уже применена к документу при возврате.
func (d *Text) Insert(node models.NodeID, a Anchor, text string, clock *Clock) *models.Operation {
	d.mu.Lock()
	left := d.anchorElement(a)
	d.mu.Unlock()
	return d.insertAfter(node, left, text, clock)
}

// InsertAt строит операцию вставки текста в видимое смещение.
// Используется реконсилером при синтезе fixup операций.
func (d *Text) InsertAt(node models.NodeID, offset int, text string, clock *Clock) *models.Operation {
	d.mu.Lock()
	left := d.elementBeforeOffset(offset)
	d.mu.Unlock()
	return d.insertAfter(node, left, text, clock)
}

func (d *Text) insertAfter(node models.NodeID, left models.ElementID, text string, clock *Clock) *models.Operation {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	stamp := clock.Tick()
	op := &models.Operation{
		Origin:  stamp.Replica,
		Seq:     clock.NextOpSeq(),
		Time:    stamp.Time,
		Type:    models.OpTextInsert,
		Node:    node,
		Element: models.ElementID{Replica: stamp.Replica, Seq: clock.NextIDs(len(runes))},
		Left:    left,
		Text:    text,
	}
	d.Apply(op)
	return op
}

// DeleteRange строит операцию удаления видимого диапазона [start, end).
// Операция уже применена к документу при возврате.
func (d *Text) DeleteRange(node models.NodeID, start, end int, clock *Clock) *models.Operation {
	d.mu.Lock()
	var targets []models.ElementID
	visible := 0
	for _, e := range d.elems {
		if e.Deleted {
			continue
		}
		if visible >= start && visible < end {
			targets = append(targets, e.ID)
		}
		visible++
	}
	d.mu.Unlock()

	if len(targets) == 0 {
		return nil
	}
	stamp := clock.Tick()
	op := &models.Operation{
		Origin:  stamp.Replica,
		Seq:     clock.NextOpSeq(),
		Time:    stamp.Time,
		Type:    models.OpTextDelete,
		Node:    node,
		Targets: targets,
	}
	d.Apply(op)
	return op
}

// AnchorAt создает якорь на видимое смещение.
// Якорь с BiasLeft привязывается к элементу справа от позиции,
// с BiasRight - к элементу слева.
func (d *Text) AnchorAt(offset int, bias Bias) Anchor {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if bias == BiasRight {
		if left := d.elementBeforeOffset(offset); !left.IsZero() {
			return Anchor{Element: left, Bias: BiasRight}
		}
		return AnchorStart
	}

	// BiasLeft: элемент, начинающийся на offset
	visible := 0
	for _, e := range d.elems {
		if e.Deleted {
			continue
		}
		if visible == offset {
			return Anchor{Element: e.ID, Bias: BiasLeft}
		}
		visible++
	}
	// за концом документа
	if left := d.elementBeforeOffset(offset); !left.IsZero() {
		return Anchor{Element: left, Bias: BiasRight}
	}
	return AnchorStart
}

// Resolve разрешает якорь в живое смещение на текущем состоянии.
// Если привязанный элемент tombstone, якорь разрешается к ближайшей
// выжившей границе согласно своему bias.
func (d *Text) Resolve(a Anchor) int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if a.Element.IsZero() {
		return 0
	}

	idx := d.indexOf(a.Element)
	if idx < 0 {
		return 0
	}

	// количество видимых элементов строго перед привязанным
	before := 0
	for i := 0; i < idx; i++ {
		if !d.elems[i].Deleted {
			before++
		}
	}

	if a.Bias == BiasLeft {
		return before
	}
	// правая граница: после элемента, если он жив
	if !d.elems[idx].Deleted {
		return before + 1
	}
	return before
}

// anchorElement возвращает элемент, после которого должна произойти
// вставка по якорю (нулевой id - начало документа)
func (d *Text) anchorElement(a Anchor) models.ElementID {
	if a.Element.IsZero() {
		return models.ElementID{}
	}
	idx := d.indexOf(a.Element)
	if idx < 0 {
		return models.ElementID{}
	}
	if a.Bias == BiasRight {
		return d.elems[idx].ID
	}
	// BiasLeft: вставка перед элементом - берем предыдущий
	if idx > 0 {
		return d.elems[idx-1].ID
	}
	return models.ElementID{}
}

// elementBeforeOffset возвращает id последнего элемента перед видимым
// смещением offset (нулевой id, если offset == 0).
// Tombstone элементы непосредственно перед позицией пропускаются влево,
// чтобы конкурентная вставка в одну позицию не зависела от того,
// видела ли реплика удаление.
func (d *Text) elementBeforeOffset(offset int) models.ElementID {
	if offset <= 0 {
		return models.ElementID{}
	}
	visible := 0
	var last models.ElementID
	for _, e := range d.elems {
		if e.Deleted {
			continue
		}
		visible++
		last = e.ID
		if visible == offset {
			return last
		}
	}
	return last
}

// Elements возвращает сериализуемый снимок элементов (для персистентности)
func (d *Text) Elements() []TextElement {
	d.mu.RLock()
	defer d.mu.RUnlock()
	elems := make([]TextElement, len(d.elems))
	copy(elems, d.elems)
	return elems
}

// RestoreElements загружает элементы как есть (после перезапуска)
func (d *Text) RestoreElements(elems []TextElement) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elems = make([]TextElement, len(elems))
	copy(d.elems, elems)
}

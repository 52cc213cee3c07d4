package models

// OpType тип операции над реплицированным состоянием
type OpType string

const (
	// OpCreateNode создание нового узла дерева
	OpCreateNode OpType = "create_node"
	// OpSetName запись в регистр имени узла
	OpSetName OpType = "set_name"
	// OpSetParent запись в регистр родителя узла (перемещение)
	OpSetParent OpType = "set_parent"
	// OpSetDeleted запись в tombstone регистр узла
	OpSetDeleted OpType = "set_deleted"
	// OpTextInsert вставка текста в документ узла
	OpTextInsert OpType = "text_insert"
	// OpTextDelete удаление (tombstone) элементов текста
	OpTextDelete OpType = "text_delete"
)

// ElementID уникальный идентификатор элемента текстового CRDT.
// Каждый вставленный символ получает id (replica, seq); порядок
// конкурентных вставок определяется сравнением id, а не временем
// прихода, что гарантирует сходимость.
type ElementID struct {
	Replica string `json:"replica"`
	Seq     uint64 `json:"seq"`
}

// IsZero проверяет, что идентификатор не установлен.
// Нулевой ElementID обозначает начало документа.
func (id ElementID) IsZero() bool {
	return id.Replica == "" && id.Seq == 0
}

// Operation единица изменения реплицированного состояния.
// Операции неизменяемы после создания и образуют append-only
// причинный лог каждой реплики: (Origin, Seq) уникальны, Seq
// монотонно растет без пропусков в рамках одной реплики.
type Operation struct {
	Origin string `json:"origin"` // реплика, создавшая операцию
	Seq    uint64 `json:"seq"`    // порядковый номер в логе реплики
	Time   int64  `json:"time"`   // Lamport timestamp

	Type OpType `json:"type"`
	Node NodeID `json:"node"` // узел, к которому относится операция

	// Поля create_node
	IsDir bool `json:"is_dir,omitempty"`

	// Поля set_name / create_node
	Name string `json:"name,omitempty"`

	// Поля set_parent / create_node
	Parent NodeID `json:"parent,omitempty"`

	// Поля set_deleted
	Deleted bool `json:"deleted,omitempty"`

	// Поля text_insert: Element - id первого вставленного элемента,
	// последующие символы Text получают id (Origin, Element.Seq+i).
	// Left - элемент, после которого выполняется вставка
	// (нулевой Left - вставка в начало документа).
	Element ElementID `json:"element,omitempty"`
	Left    ElementID `json:"left,omitempty"`
	Text    string    `json:"text,omitempty"`

	// Поля text_delete
	Targets []ElementID `json:"targets,omitempty"`
}

// Stamp возвращает LWW метку операции
func (op *Operation) Stamp() Stamp {
	return Stamp{Time: op.Time, Replica: op.Origin}
}

// Clone создает глубокую копию операции
func (op *Operation) Clone() *Operation {
	clone := *op
	if op.Targets != nil {
		clone.Targets = make([]ElementID, len(op.Targets))
		copy(clone.Targets, op.Targets)
	}
	return &clone
}

package models

import "fmt"

// NodeIDKind определяет вариант идентификатора узла
type NodeIDKind string

const (
	// NodeIDRoot сентинельный корень дерева
	NodeIDRoot NodeIDKind = "root"
	// NodeIDLocal идентификатор, созданный локально (replica + seq)
	NodeIDLocal NodeIDKind = "local"
	// NodeIDHistorical идентификатор, производный от истории (commit + path)
	NodeIDHistorical NodeIDKind = "historical"
)

// NodeID уникальный идентификатор узла дерева.
// Local идентификаторы чеканятся репликой при живом редактировании.
// Historical идентификаторы детерминированно выводятся из (commit, path),
// поэтому независимые реплики с общей историей получают одинаковые id
// без координации. После первого редактирования узел сохраняет свой id
// навсегда - id никогда не перечеканивается.
type NodeID struct {
	Kind    NodeIDKind `json:"kind"`
	Replica string     `json:"replica,omitempty"`
	Seq     uint64     `json:"seq,omitempty"`
	Commit  string     `json:"commit,omitempty"`
	Path    string     `json:"path,omitempty"`
}

// RootID сентинельный корень, общий для всех реплик
var RootID = NodeID{Kind: NodeIDRoot}

// LocalID создает локальный идентификатор узла
func LocalID(replica string, seq uint64) NodeID {
	return NodeID{Kind: NodeIDLocal, Replica: replica, Seq: seq}
}

// HistoricalID создает идентификатор узла, производный от истории
func HistoricalID(commit, path string) NodeID {
	return NodeID{Kind: NodeIDHistorical, Commit: commit, Path: path}
}

// IsZero проверяет, что идентификатор не установлен
func (id NodeID) IsZero() bool {
	return id.Kind == ""
}

// IsRoot проверяет, что идентификатор является корнем
func (id NodeID) IsRoot() bool {
	return id.Kind == NodeIDRoot
}

// String возвращает каноническое строковое представление.
// Используется для детерминированного упорядочивания узлов.
func (id NodeID) String() string {
	switch id.Kind {
	case NodeIDRoot:
		return "root"
	case NodeIDLocal:
		return fmt.Sprintf("local:%s:%d", id.Replica, id.Seq)
	case NodeIDHistorical:
		return fmt.Sprintf("hist:%s:%s", id.Commit, id.Path)
	default:
		return ""
	}
}

// Less детерминированный тотальный порядок идентификаторов.
// Не зависит от реплики и порядка доставки операций.
func (id NodeID) Less(other NodeID) bool {
	return id.String() < other.String()
}

// Stamp метка (timestamp, replica) для LWW регистров.
// Больший timestamp выигрывает; при равных timestamp выигрывает
// лексикографически больший replica id. Две разные реплики никогда
// не производят равные метки, поэтому ничьи невозможны.
type Stamp struct {
	Time    int64  `json:"time"`
	Replica string `json:"replica"`
}

// After возвращает true, если s строго новее other
func (s Stamp) After(other Stamp) bool {
	if s.Time != other.Time {
		return s.Time > other.Time
	}
	return s.Replica > other.Replica
}

// IsZero проверяет, что метка не установлена
func (s Stamp) IsZero() bool {
	return s.Time == 0 && s.Replica == ""
}

// StringRegister LWW регистр строкового значения
type StringRegister struct {
	Value string `json:"value"`
	Stamp Stamp  `json:"stamp"`
}

// Set применяет запись по правилу LWW.
// Возвращает true, если значение было обновлено.
func (r *StringRegister) Set(value string, stamp Stamp) bool {
	if !r.Stamp.IsZero() && !stamp.After(r.Stamp) {
		return false
	}
	r.Value = value
	r.Stamp = stamp
	return true
}

// NodeIDRegister LWW регистр значения NodeID
type NodeIDRegister struct {
	Value NodeID `json:"value"`
	Stamp Stamp  `json:"stamp"`
}

// Set применяет запись по правилу LWW
func (r *NodeIDRegister) Set(value NodeID, stamp Stamp) bool {
	if !r.Stamp.IsZero() && !stamp.After(r.Stamp) {
		return false
	}
	r.Value = value
	r.Stamp = stamp
	return true
}

// BoolRegister LWW регистр булевого значения (tombstone флаг)
type BoolRegister struct {
	Value bool  `json:"value"`
	Stamp Stamp `json:"stamp"`
}

// Set применяет запись по правилу LWW
func (r *BoolRegister) Set(value bool, stamp Stamp) bool {
	if !r.Stamp.IsZero() && !stamp.After(r.Stamp) {
		return false
	}
	r.Value = value
	r.Stamp = stamp
	return true
}

// Node узел реплицированного дерева (файл или директория).
// ID неизменен на протяжении всей жизни узла; мутируют только
// регистры Name, Parent и Deleted. Узлы никогда не удаляются
// физически - только помечаются tombstone флагом, что необходимо
// для корректного слияния и потенциального undo.
type Node struct {
	ID      NodeID         `json:"id"`
	IsDir   bool           `json:"is_dir"`
	Name    StringRegister `json:"name"`
	Parent  NodeIDRegister `json:"parent"`
	Deleted BoolRegister   `json:"deleted"`
}

// Materialized проверяет, что узел был создан явно (получил имя),
// а не является плейсхолдером, созданным при опережающей доставке
// операции от другой реплики.
func (n *Node) Materialized() bool {
	return !n.Name.Stamp.IsZero()
}

// Visible проверяет, что узел жив (не tombstone)
func (n *Node) Visible() bool {
	return n.Materialized() && !n.Deleted.Value
}

// Clone создает глубокую копию узла
func (n *Node) Clone() *Node {
	clone := *n
	return &clone
}

package crdt

import (
	"sort"
	"sync"

	"github.com/iudanet/treesync/internal/models"
)

// Tree реплицированное дерево файлов и директорий.
// Хранится как плоская арена map[NodeID]*Node; связи parent/child -
// это значения LWW регистров, а не вложенное владение, поэтому
// циклы, возникающие при конкурентных переименованиях, представимы
// и разрешаются на этапе проекции, а не приводят к падению.
type Tree struct {
	mu    sync.RWMutex
	nodes map[models.NodeID]*models.Node
}

// NewTree создает пустое дерево
func NewTree() *Tree {
	return &Tree{nodes: make(map[models.NodeID]*models.Node)}
}

// ensure возвращает узел по id, при необходимости создавая
// плейсхолдер. Плейсхолдеры возникают, когда операция над узлом
// приходит раньше его create_node (межрепличная доставка не
// упорядочена), и материализуются при получении create_node.
func (t *Tree) ensure(id models.NodeID) *models.Node {
	node, ok := t.nodes[id]
	if !ok {
		node = &models.Node{ID: id}
		t.nodes[id] = node
	}
	return node
}

// Apply применяет операцию к дереву. Каждое поле - независимый
// LWW регистр, поэтому применение коммутативно и идемпотентно.
// Возвращает true, если состояние изменилось.
func (t *Tree) Apply(op *models.Operation) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.ensure(op.Node)
	stamp := op.Stamp()

	switch op.Type {
	case models.OpCreateNode:
		// IsDir неизменяем после создания
		node.IsDir = op.IsDir
		changed := node.Name.Set(op.Name, stamp)
		if node.Parent.Set(op.Parent, stamp) {
			changed = true
		}
		return changed
	case models.OpSetName:
		return node.Name.Set(op.Name, stamp)
	case models.OpSetParent:
		return node.Parent.Set(op.Parent, stamp)
	case models.OpSetDeleted:
		return node.Deleted.Set(op.Deleted, stamp)
	default:
		return false
	}
}

// Get возвращает копию узла по id
func (t *Tree) Get(id models.NodeID) (*models.Node, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	node, ok := t.nodes[id]
	if !ok {
		return nil, false
	}
	return node.Clone(), true
}

// Nodes возвращает копии всех узлов (включая tombstone),
// отсортированные по id для детерминизма
func (t *Tree) Nodes() []*models.Node {
	t.mu.RLock()
	defer t.mu.RUnlock()
	nodes := make([]*models.Node, 0, len(t.nodes))
	for _, node := range t.nodes {
		nodes = append(nodes, node.Clone())
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID.Less(nodes[j].ID) })
	return nodes
}

// Merge сливает удаленное состояние узлов: для каждого входящего
// регистра локальное значение заменяется тогда и только тогда,
// когда входящая метка строго больше. Коммутативно и идемпотентно.
func (t *Tree) Merge(remote []*models.Node) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, rn := range remote {
		node := t.ensure(rn.ID)
		if !node.Materialized() && rn.Materialized() {
			node.IsDir = rn.IsDir
		}
		node.Name.Set(rn.Name.Value, rn.Name.Stamp)
		node.Parent.Set(rn.Parent.Value, rn.Parent.Stamp)
		node.Deleted.Set(rn.Deleted.Value, rn.Deleted.Stamp)
	}
}

// Restore загружает состояние узлов как есть (после перезапуска)
func (t *Tree) Restore(nodes []*models.Node) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nodes = make(map[models.NodeID]*models.Node, len(nodes))
	for _, node := range nodes {
		t.nodes[node.ID] = node.Clone()
	}
}

// ProjectedEntry видимый элемент спроецированного дерева
type ProjectedEntry struct {
	ID    models.NodeID
	Path  string
	IsDir bool
}

// Projection внешнее представление дерева: лес, сведенный к
// видимым путям. Проекция чистая и повторяемая: на одном и том же
// CRDT состоянии все реплики получают байт-в-байт одинаковый результат.
type Projection struct {
	entries []ProjectedEntry
	byPath  map[string]models.NodeID
	byID    map[models.NodeID]string
}

// Entries возвращает видимые элементы, отсортированные по пути
func (p *Projection) Entries() []ProjectedEntry {
	return p.entries
}

// IDAt возвращает id узла по видимому пути
func (p *Projection) IDAt(path string) (models.NodeID, bool) {
	id, ok := p.byPath[path]
	return id, ok
}

// PathOf возвращает видимый путь узла
func (p *Projection) PathOf(id models.NodeID) (string, bool) {
	path, ok := p.byID[id]
	return path, ok
}

// Len возвращает количество видимых элементов
func (p *Projection) Len() int {
	return len(p.entries)
}

// резолюция достижимости корня при обходе цепочки родителей
const (
	reachUnknown = iota
	reachOnPath
	reachRoot
	reachHidden
)

// Project проецирует лес от корня, применяя правила видимости:
// tombstone узлы и проигравшие коллизию имен исключаются, циклы
// разрываются детерминированно.
func (t *Tree) Project() *Projection {
	t.mu.RLock()
	defer t.mu.RUnlock()

	state := make(map[models.NodeID]int, len(t.nodes))
	// override родителя для узлов, исключенных из цикла
	reattached := make(map[models.NodeID]models.NodeID)

	parentOf := func(id models.NodeID) models.NodeID {
		if p, ok := reattached[id]; ok {
			return p
		}
		return t.nodes[id].Parent.Value
	}

	visible := func(id models.NodeID) bool {
		node, ok := t.nodes[id]
		return ok && node.Visible()
	}

	// resolve прослеживает цепочку родителей узла до корня.
	// Обнаруженный цикл разрывается исключением участника с
	// наименьшим id: его ребро родителя игнорируется и узел
	// подвешивается под корень, пока какая-нибудь операция
	// не устранит цикл.
	var resolve func(id models.NodeID)
	resolve = func(id models.NodeID) {
		var path []models.NodeID
		cur := id
		for {
			if cur.IsRoot() {
				for _, n := range path {
					state[n] = reachRoot
				}
				return
			}
			if !visible(cur) {
				for _, n := range path {
					state[n] = reachHidden
				}
				return
			}
			switch state[cur] {
			case reachRoot:
				for _, n := range path {
					state[n] = reachRoot
				}
				return
			case reachHidden:
				for _, n := range path {
					state[n] = reachHidden
				}
				return
			case reachOnPath:
				// цикл: участники - суффикс path начиная с cur
				start := 0
				for i, n := range path {
					if n == cur {
						start = i
						break
					}
				}
				lowest := path[start]
				for _, n := range path[start+1:] {
					if n.Less(lowest) {
						lowest = n
					}
				}
				reattached[lowest] = models.RootID
				for _, n := range path {
					state[n] = reachUnknown
				}
				resolve(id)
				return
			}
			state[cur] = reachOnPath
			path = append(path, cur)
			cur = parentOf(cur)
		}
	}

	ids := make([]models.NodeID, 0, len(t.nodes))
	for id := range t.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
	for _, id := range ids {
		if state[id] == reachUnknown {
			resolve(id)
		}
	}

	// собираем видимых детей каждого родителя
	children := make(map[models.NodeID][]*models.Node)
	for _, id := range ids {
		if state[id] != reachRoot {
			continue
		}
		parent := parentOf(id)
		children[parent] = append(children[parent], t.nodes[id])
	}

	proj := &Projection{
		byPath: make(map[string]models.NodeID),
		byID:   make(map[models.NodeID]string),
	}

	var walk func(parent models.NodeID, prefix string)
	walk = func(parent models.NodeID, prefix string) {
		winners := resolveNameCollisions(children[parent])
		for _, node := range winners {
			path := node.Name.Value
			if prefix != "" {
				path = prefix + "/" + path
			}
			proj.entries = append(proj.entries, ProjectedEntry{
				ID:    node.ID,
				Path:  path,
				IsDir: node.IsDir,
			})
			proj.byPath[path] = node.ID
			proj.byID[node.ID] = path
			if node.IsDir {
				walk(node.ID, path)
			}
		}
	}
	walk(models.RootID, "")

	sort.Slice(proj.entries, func(i, j int) bool {
		return proj.entries[i].Path < proj.entries[j].Path
	})
	return proj
}

// resolveNameCollisions применяет инвариант коллизии имен: не более
// одного видимого ребенка на пару (parent, name). Из конкурирующих
// живых узлов отображается тот, чью позицию последней записала
// реплика с наименьшим id; остальные присутствуют в CRDT, но
// скрыты из проекции. Чистая функция от явного списка кандидатов,
// не зависит от порядка обхода.
func resolveNameCollisions(candidates []*models.Node) []*models.Node {
	byName := make(map[string][]*models.Node)
	for _, node := range candidates {
		byName[node.Name.Value] = append(byName[node.Name.Value], node)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	winners := make([]*models.Node, 0, len(names))
	for _, name := range names {
		group := byName[name]
		sort.Slice(group, func(i, j int) bool {
			a, b := group[i], group[j]
			if a.Name.Stamp.Replica != b.Name.Stamp.Replica {
				return a.Name.Stamp.Replica < b.Name.Stamp.Replica
			}
			return a.ID.Less(b.ID)
		})
		winners = append(winners, group[0])
	}
	return winners
}

package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	gopath "path"
	"sync"

	"github.com/iudanet/treesync/internal/crdt"
	"github.com/iudanet/treesync/internal/history"
	"github.com/iudanet/treesync/internal/identity"
	"github.com/iudanet/treesync/internal/models"
	"github.com/iudanet/treesync/internal/snapshot"
)

// State состояние согласователя
type State int

const (
	// StateSynced реплика согласована с рабочей копией и историей
	StateSynced State = iota
	// StateSyncing идет согласование
	StateSyncing
	// StateDisconnected история недоступна, ждем повтора
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateSynced:
		return "synced"
	case StateSyncing:
		return "syncing"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Config настройки согласователя
type Config struct {
	// SimilarityThreshold минимальная схожесть содержимого,
	// при которой пара удаление+создание считается переименованием
	SimilarityThreshold float64
}

// DefaultSimilarityThreshold порог схожести по умолчанию
const DefaultSimilarityThreshold = 0.5

// DefaultConfig возвращает настройки по умолчанию
func DefaultConfig() Config {
	return Config{SimilarityThreshold: DefaultSimilarityThreshold}
}

// Reconciler приводит CRDT-состояние в соответствие с рабочей копией
// и внешней историей коммитов. Все расхождения выражаются операциями
// над движком, поэтому результат согласования реплицируется так же,
// как обычные правки.
type Reconciler struct {
	mu       sync.Mutex
	state    State
	engine   *crdt.Engine
	assigner *identity.Assigner
	oracle   history.Oracle
	logger   *slog.Logger
	cfg      Config

	// lastHead SHA коммита, с которым состояние согласовано
	lastHead string
	// lastSnap последний виденный снимок рабочей копии
	lastSnap *snapshot.Snapshot
	// lastCoverage битовая карта операций, покрытых lastHead
	lastCoverage crdt.StateVector
}

// NewReconciler создает согласователь. lastHead и lastSnap
// восстанавливаются отдельно через Restore.
func NewReconciler(engine *crdt.Engine, assigner *identity.Assigner, oracle history.Oracle, logger *slog.Logger, cfg Config) *Reconciler {
	if cfg.SimilarityThreshold <= 0 {
		cfg.SimilarityThreshold = DefaultSimilarityThreshold
	}
	return &Reconciler{
		state:    StateSynced,
		engine:   engine,
		assigner: assigner,
		oracle:   oracle,
		logger:   logger,
		cfg:      cfg,
		lastSnap: snapshot.New(),
	}
}

// State текущее состояние согласователя
func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Head SHA коммита, с которым состояние согласовано
func (r *Reconciler) Head() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastHead
}

// Coverage битовая карта операций, эффект которых покрыт текущим HEAD
func (r *Reconciler) Coverage() crdt.StateVector {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lastCoverage == nil {
		return crdt.NewStateVector()
	}
	return r.lastCoverage.Clone()
}

// Restore восстанавливает сохраненное между запусками положение
func (r *Reconciler) Restore(head string, snap *snapshot.Snapshot, coverage crdt.StateVector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastHead = head
	if snap != nil {
		r.lastSnap = snap
	}
	if len(coverage) > 0 {
		r.lastCoverage = coverage
	}
}

// SetLastSnapshot фиксирует снимок рабочей копии после записи
// спроецированного состояния на диск
func (r *Reconciler) SetLastSnapshot(snap *snapshot.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastSnap = snap
}

// Sync согласует состояние: сначала с историей (новый HEAD), затем
// с рабочей копией (локальные правки на диске). Возвращает операции,
// порожденные согласованием, для отправки другим репликам.
//
// При недоступности истории переходит в disconnected; повторный вызов
// Sync и есть ретрай.
func (r *Reconciler) Sync(ctx context.Context, fs *snapshot.Snapshot) ([]*models.Operation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.setState(StateSyncing)

	headOps, err := r.syncHead(ctx)
	if err != nil {
		r.failState(err)
		return nil, err
	}

	fsOps, err := r.syncWorkingCopy(ctx, fs)
	if err != nil {
		r.failState(err)
		return nil, err
	}

	r.setState(StateSynced)
	return append(headOps, fsOps...), nil
}

// failState переводит состояние по типу ошибки: сетевые проблемы
// означают disconnected, остальное оставляет syncing до повтора
func (r *Reconciler) failState(err error) {
	if errors.Is(err, models.ErrNetworkUnreachable) {
		r.setState(StateDisconnected)
	}
}

func (r *Reconciler) setState(next State) {
	if r.state == next {
		return
	}
	r.logger.Debug("reconciler state change",
		"from", r.state.String(),
		"to", next.String(),
	)
	r.state = next
}

// syncHead обрабатывает сдвиг HEAD внешней истории. Движение на
// прямого потомка - это обычный коммит поверх известного состояния;
// любое другое движение - checkout, и идентичности пересчитываются
// от нового HEAD.
func (r *Reconciler) syncHead(ctx context.Context) ([]*models.Operation, error) {
	head, err := r.oracle.CurrentHead(ctx)
	if err != nil {
		return nil, fmt.Errorf("current head: %w", err)
	}
	if head == r.lastHead {
		return nil, nil
	}

	tree, err := r.oracle.Resolve(ctx, head)
	if err != nil {
		if errors.Is(err, models.ErrCommitNotFound) {
			// HEAD указывает на неизвестный коммит: история
			// переписана извне
			return nil, fmt.Errorf("head %s: %w", head, models.ErrHistoryDivergence)
		}
		return nil, fmt.Errorf("resolve head %s: %w", head, err)
	}

	parent, err := r.oracle.ParentOf(ctx, head)
	if err != nil {
		return nil, fmt.Errorf("parent of %s: %w", head, err)
	}

	forward := r.lastHead == "" || parent == r.lastHead
	if forward {
		r.logger.Info("history advanced", "head", head, "parent", parent)
	} else {
		r.logger.Info("history reset", "head", head, "previous", r.lastHead)
	}

	ops, err := r.convergeToCommit(ctx, head, tree)
	if err != nil {
		return nil, err
	}

	r.lastHead = head
	r.lastCoverage = r.coverage(tree)
	r.logger.Info("head reconciled",
		"head", head,
		"fixups", len(ops),
		"forward", forward,
	)
	return ops, nil
}

// syncWorkingCopy обрабатывает правки рабочей копии при неизменном
// HEAD: вычисляет разницу со старым снимком и выражает ее операциями
func (r *Reconciler) syncWorkingCopy(ctx context.Context, fs *snapshot.Snapshot) ([]*models.Operation, error) {
	if fs == nil {
		return nil, nil
	}
	changes := Diff(r.lastSnap, fs, r.cfg.SimilarityThreshold)
	if len(changes) == 0 {
		r.lastSnap = fs
		return nil, nil
	}

	ops, err := r.applyChanges(ctx, changes, contentGetter(fs), r.lastHead)
	if err != nil {
		return nil, err
	}

	r.lastSnap = fs
	r.logger.Info("working copy reconciled", "changes", len(changes), "ops", len(ops))
	return ops, nil
}

// convergeToCommit синтезирует минимальный набор операций, приводящий
// проекцию к дереву коммита. Разница считается тем же алгоритмом, что
// и для рабочей копии, так что переименования сворачиваются и здесь.
//
// Диф ограничен путями, на которых проекция и коммит расходятся:
// совпавшие пути не порождают изменений, а их блобы не запрашиваются
// у истории вовсе.
func (r *Reconciler) convergeToCommit(ctx context.Context, head string, tree history.Tree) ([]*models.Operation, error) {
	current := r.ProjectionSnapshot()
	agreed := agreedPaths(current, tree)

	desired, err := r.commitSnapshot(ctx, tree, agreed)
	if err != nil {
		return nil, err
	}

	disputed := snapshot.New()
	for path, entry := range current.Entries {
		if !agreed[path] {
			disputed.Add(path, entry.IsDir, entry.Content)
		}
	}

	changes := Diff(disputed, desired, r.cfg.SimilarityThreshold)
	return r.applyChanges(ctx, changes, contentGetter(desired), head)
}

// commitSnapshot материализует дерево коммита в снимок с содержимым.
// Пути из skip не включаются, их блобы не загружаются.
func (r *Reconciler) commitSnapshot(ctx context.Context, tree history.Tree, skip map[string]bool) (*snapshot.Snapshot, error) {
	snap := snapshot.New()
	for path, info := range tree {
		if skip[path] {
			continue
		}
		if info.IsDir {
			snap.Add(path, true, nil)
			continue
		}
		content, err := r.oracle.Blob(ctx, info.Hash)
		if err != nil {
			return nil, fmt.Errorf("blob %s for %s: %w", info.Hash, path, err)
		}
		snap.Add(path, false, content)
	}
	return snap, nil
}

// ProjectionSnapshot материализует текущую проекцию движка в снимок.
// Используется для обратной записи рабочей копии после согласования.
func (r *Reconciler) ProjectionSnapshot() *snapshot.Snapshot {
	snap := snapshot.New()
	for _, entry := range r.engine.Project().Entries() {
		if entry.IsDir {
			snap.Add(entry.Path, true, nil)
			continue
		}
		content, _ := r.engine.Content(entry.ID)
		snap.Add(entry.Path, false, []byte(content))
	}
	return snap
}

func contentGetter(snap *snapshot.Snapshot) func(path string) []byte {
	return func(path string) []byte {
		return snap.Entries[path].Content
	}
}

// applyChanges выражает изменения операциями над движком.
// Новые узлы получают идентичность через assigner: пути, известные
// переданному head, получают стабильный исторический идентификатор.
func (r *Reconciler) applyChanges(ctx context.Context, changes []Change, content func(string) []byte, head string) ([]*models.Operation, error) {
	proj := r.engine.Project()
	// created накапливает узлы, созданные в этом же проходе
	// и еще не видимые в proj
	created := make(map[string]models.NodeID)

	resolve := func(path string) (models.NodeID, bool) {
		if id, ok := created[path]; ok {
			return id, true
		}
		return proj.IDAt(path)
	}

	var ops []*models.Operation

	ensureDir := func(dir string) (models.NodeID, error) {
		var walk func(dir string) (models.NodeID, error)
		walk = func(dir string) (models.NodeID, error) {
			if dir == "" || dir == "." {
				return models.RootID, nil
			}
			if id, ok := resolve(dir); ok {
				return id, nil
			}
			parentID, err := walk(gopath.Dir(dir))
			if err != nil {
				return models.NodeID{}, err
			}
			id, err := r.assigner.Assign(ctx, dir, proj, head)
			if err != nil {
				return models.NodeID{}, fmt.Errorf("assign id for %s: %w", dir, err)
			}
			ops = append(ops, r.engine.CreateNode(id, true, gopath.Base(dir), parentID))
			created[dir] = id
			return id, nil
		}
		return walk(dir)
	}

	for _, change := range changes {
		switch change.Type {
		case ChangeRenamed:
			id, ok := resolve(change.From)
			if !ok {
				return nil, fmt.Errorf("rename %s: %w", change.From, models.ErrNodeNotFound)
			}
			node, _ := r.engine.Node(id)
			if newName := gopath.Base(change.Path); node == nil || node.Name.Value != newName {
				ops = append(ops, r.engine.SetName(id, newName))
			}
			if gopath.Dir(change.From) != gopath.Dir(change.Path) {
				parentID, err := ensureDir(gopath.Dir(change.Path))
				if err != nil {
					return nil, err
				}
				ops = append(ops, r.engine.SetParent(id, parentID))
			}
			created[change.Path] = id
			if !change.Entry.IsDir {
				old, _ := r.engine.Content(id)
				ops = append(ops, r.patchText(id, old, string(content(change.Path)))...)
			}

		case ChangeRemoved:
			if id, ok := resolve(change.Path); ok {
				ops = append(ops, r.engine.SetDeleted(id, true))
			}

		case ChangeAdded:
			if change.Entry.IsDir {
				if _, err := ensureDir(change.Path); err != nil {
					return nil, err
				}
				continue
			}
			parentID, err := ensureDir(gopath.Dir(change.Path))
			if err != nil {
				return nil, err
			}
			id, err := r.assigner.Assign(ctx, change.Path, proj, head)
			if err != nil {
				return nil, fmt.Errorf("assign id for %s: %w", change.Path, err)
			}
			ops = append(ops, r.engine.CreateNode(id, false, gopath.Base(change.Path), parentID))
			created[change.Path] = id
			if text := string(content(change.Path)); text != "" {
				ops = append(ops, r.engine.InsertText(id, 0, text))
			}

		case ChangeModified:
			id, ok := resolve(change.Path)
			if !ok {
				return nil, fmt.Errorf("modify %s: %w", change.Path, models.ErrNodeNotFound)
			}
			old, _ := r.engine.Content(id)
			ops = append(ops, r.patchText(id, old, string(content(change.Path)))...)
		}
	}

	return ops, nil
}

// patchText выражает разницу содержимого минимальной парой операций:
// удаление измененной середины и вставка новой, общие префикс и
// суффикс не трогаются
func (r *Reconciler) patchText(id models.NodeID, old, new string) []*models.Operation {
	if old == new {
		return nil
	}
	oldRunes := []rune(old)
	newRunes := []rune(new)

	prefix := 0
	for prefix < len(oldRunes) && prefix < len(newRunes) && oldRunes[prefix] == newRunes[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(oldRunes)-prefix && suffix < len(newRunes)-prefix &&
		oldRunes[len(oldRunes)-1-suffix] == newRunes[len(newRunes)-1-suffix] {
		suffix++
	}

	var ops []*models.Operation
	if end := len(oldRunes) - suffix; end > prefix {
		ops = append(ops, r.engine.DeleteText(id, prefix, end))
	}
	if mid := string(newRunes[prefix : len(newRunes)-suffix]); mid != "" {
		ops = append(ops, r.engine.InsertText(id, prefix, mid))
	}
	return ops
}

// Publish фиксирует текущую проекцию как новый коммит поверх HEAD
func (r *Reconciler) Publish(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.ProjectionSnapshot()
	for path, entry := range snap.Entries {
		if entry.IsDir {
			continue
		}
		if _, err := r.oracle.PutBlob(ctx, entry.Content); err != nil {
			return "", fmt.Errorf("put blob for %s: %w", path, err)
		}
	}

	sha, err := r.oracle.Commit(ctx, snap.Tree(), r.lastHead)
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	r.lastHead = sha
	r.lastCoverage = r.coverage(snap.Tree())
	r.logger.Info("published", "commit", sha, "entries", len(snap.Entries))
	return sha, nil
}

// Checkout передвигает HEAD на существующий коммит; само приведение
// состояния выполняет следующий Sync
func (r *Reconciler) Checkout(ctx context.Context, sha string) error {
	if _, err := r.oracle.Resolve(ctx, sha); err != nil {
		return fmt.Errorf("resolve %s: %w", sha, err)
	}
	if err := r.oracle.SetHead(ctx, sha); err != nil {
		return fmt.Errorf("set head: %w", err)
	}
	return nil
}

// coverage вычисляет битовую карту операций, эффект которых
// согласуется с деревом коммита: операции над узлами, чей проецируемый
// путь и содержимое совпадают с коммитом, и операции над скрытыми
// узлами, отсутствие которых коммит подтверждает
func (r *Reconciler) coverage(tree history.Tree) crdt.StateVector {
	proj := r.engine.Project()
	agreed := agreedPaths(r.ProjectionSnapshot(), tree)

	covered := crdt.NewStateVector()
	for _, op := range r.engine.Log() {
		path, visible := proj.PathOf(op.Node)
		if !visible || agreed[path] {
			covered.Record(op.Origin, op.Seq)
		}
	}
	return covered
}

// agreedPaths перечисляет пути, на которых снимок проекции и дерево
// коммита совпадают по типу и содержимому
func agreedPaths(current *snapshot.Snapshot, tree history.Tree) map[string]bool {
	agreed := make(map[string]bool)
	for path, entry := range current.Entries {
		info, ok := tree[path]
		if !ok || info.IsDir != entry.IsDir {
			continue
		}
		if entry.IsDir || history.HashContent(entry.Content) == info.Hash {
			agreed[path] = true
		}
	}
	return agreed
}

// Package workspace связывает рабочую копию на диске, CRDT движок
// и историю коммитов в один клиентский сервис. CLI команды работают
// только через него.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/treesync/internal/client/storage"
	"github.com/iudanet/treesync/internal/crdt"
	"github.com/iudanet/treesync/internal/reconcile"
	"github.com/iudanet/treesync/internal/search"
	"github.com/iudanet/treesync/internal/snapshot"
)

//go:generate moq -out service_mock.go . Service

// Service определяет интерфейс рабочей копии для CLI
type Service interface {
	// Status возвращает состояние рабочей копии без ее изменения
	Status(ctx context.Context) (*Status, error)

	// Sync согласует рабочую копию с движком и историей коммитов
	// и записывает спроецированное состояние обратно на диск
	Sync(ctx context.Context) (*SyncReport, error)

	// Publish фиксирует текущую проекцию новым коммитом истории
	Publish(ctx context.Context) (string, error)

	// Checkout переводит рабочую копию на указанный коммит
	Checkout(ctx context.Context, sha string) error

	// Search ищет видимые файлы по нечеткому запросу
	Search(ctx context.Context, query string, maxResults int) ([]search.Result, error)
}

// Status состояние рабочей копии
type Status struct {
	Head    string             // последний согласованный коммит
	State   reconcile.State    // состояние согласователя
	Files   int                // количество видимых файлов и директорий
	Changes []reconcile.Change // локальные изменения с момента последнего Sync
}

// SyncReport результат локального согласования
type SyncReport struct {
	Head     string // коммит после согласования
	LocalOps int    // количество порожденных операций
}

// service implements Service on top of engine, reconciler and state storage
type service struct {
	root         string
	engine       *crdt.Engine
	rec          *reconcile.Reconciler
	stateStorage storage.StateStorage
	logger       *slog.Logger
}

// NewService создает сервис рабочей копии и восстанавливает
// сохраненное состояние движка и согласователя, если оно есть
func NewService(ctx context.Context, root string, engine *crdt.Engine, rec *reconcile.Reconciler, stateStorage storage.StateStorage, logger *slog.Logger) (Service, error) {
	state, err := stateStorage.GetEngineState(ctx)
	switch {
	case err == nil:
		engine.Restore(state)
	case errors.Is(err, storage.ErrStateNotFound):
		// Первый запуск, движок остается пустым
	default:
		return nil, fmt.Errorf("failed to load engine state: %w", err)
	}

	meta, err := stateStorage.GetSyncMeta(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sync meta: %w", err)
	}
	rec.Restore(meta.Head, meta.LastSnapshot, crdt.VectorFromWire(meta.HeadCoverage))

	return &service{
		root:         root,
		engine:       engine,
		rec:          rec,
		stateStorage: stateStorage,
		logger:       logger,
	}, nil
}

// Status returns the current workspace status
func (s *service) Status(ctx context.Context) (*Status, error) {
	fs, err := snapshot.Read(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read working copy: %w", err)
	}

	changes := reconcile.Diff(s.rec.ProjectionSnapshot(), fs, reconcile.DefaultSimilarityThreshold)

	return &Status{
		Head:    s.rec.Head(),
		State:   s.rec.State(),
		Files:   s.engine.Project().Len(),
		Changes: changes,
	}, nil
}

// Sync reconciles the working copy with the engine and commit history
func (s *service) Sync(ctx context.Context) (*SyncReport, error) {
	fs, err := snapshot.Read(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read working copy: %w", err)
	}

	ops, err := s.rec.Sync(ctx, fs)
	if err != nil {
		return nil, fmt.Errorf("reconcile failed: %w", err)
	}

	if err := s.writeBack(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("Workspace synchronized",
		"head", s.rec.Head(),
		"local_ops", len(ops))

	return &SyncReport{
		Head:     s.rec.Head(),
		LocalOps: len(ops),
	}, nil
}

// Publish commits the current projection to history
func (s *service) Publish(ctx context.Context) (string, error) {
	sha, err := s.rec.Publish(ctx)
	if err != nil {
		return "", fmt.Errorf("publish failed: %w", err)
	}

	if err := s.persist(ctx); err != nil {
		return "", err
	}

	s.logger.Info("Published commit", "sha", sha)
	return sha, nil
}

// Checkout moves the working copy to the given commit
func (s *service) Checkout(ctx context.Context, sha string) error {
	if err := s.rec.Checkout(ctx, sha); err != nil {
		return fmt.Errorf("checkout failed: %w", err)
	}

	// Согласование подтянет дерево коммита в движок,
	// обратная запись материализует его на диске
	fs, err := snapshot.Read(s.root)
	if err != nil {
		return fmt.Errorf("failed to read working copy: %w", err)
	}

	if _, err := s.rec.Sync(ctx, fs); err != nil {
		return fmt.Errorf("reconcile failed: %w", err)
	}

	if err := s.writeBack(ctx); err != nil {
		return err
	}

	s.logger.Info("Checked out commit", "sha", sha)
	return nil
}

// Search finds visible files matching the fuzzy query
func (s *service) Search(ctx context.Context, query string, maxResults int) ([]search.Result, error) {
	return search.Paths(s.engine.Project(), query, maxResults), nil
}

// writeBack материализует проекцию на диске и сохраняет состояние
func (s *service) writeBack(ctx context.Context) error {
	desired := s.rec.ProjectionSnapshot()

	if err := snapshot.Write(s.root, desired); err != nil {
		return fmt.Errorf("failed to write working copy: %w", err)
	}
	s.rec.SetLastSnapshot(desired)

	return s.persist(ctx)
}

// persist сохраняет состояние движка и метаданные согласования
func (s *service) persist(ctx context.Context) error {
	if err := s.stateStorage.SaveEngineState(ctx, s.engine.State()); err != nil {
		return fmt.Errorf("failed to save engine state: %w", err)
	}

	meta, err := s.stateStorage.GetSyncMeta(ctx)
	if err != nil {
		return fmt.Errorf("failed to get sync meta: %w", err)
	}

	meta.Head = s.rec.Head()
	meta.LastSnapshot = s.rec.ProjectionSnapshot()
	meta.HeadCoverage = crdt.VectorToWire(s.rec.Coverage())

	if err := s.stateStorage.SaveSyncMeta(ctx, meta); err != nil {
		return fmt.Errorf("failed to save sync meta: %w", err)
	}

	return nil
}

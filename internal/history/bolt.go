package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/treesync/internal/models"
)

var (
	// BoltDB bucket names
	bucketCommits = []byte("commits")
	bucketBlobs   = []byte("blobs")
	bucketMeta    = []byte("meta")

	keyHead = []byte("head")
)

// commitRecord запись коммита в хранилище
type commitRecord struct {
	Tree      Tree      `json:"tree"`
	Parent    string    `json:"parent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store контентно-адресуемое хранилище истории поверх BoltDB.
// Реализует Oracle для локальной работы и для тестов; в смешанных
// установках та же схема служит локальным кешем внешней истории.
type Store struct {
	db *bbolt.DB
}

// NewStore создает хранилище истории поверх открытой BoltDB
func NewStore(db *bbolt.DB) (*Store, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketCommits, bucketBlobs, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize history buckets: %w", err)
	}
	return &Store{db: db}, nil
}

// Open открывает файл BoltDB и создает хранилище истории
func Open(path string) (*Store, *bbolt.DB, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history db: %w", err)
	}
	store, err := NewStore(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return store, db, nil
}

// Resolve возвращает снимок дерева коммита
func (s *Store) Resolve(ctx context.Context, sha string) (Tree, error) {
	var record commitRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketCommits).Get([]byte(sha))
		if data == nil {
			return fmt.Errorf("commit %s: %w", sha, models.ErrCommitNotFound)
		}
		if err := json.Unmarshal(data, &record); err != nil {
			return fmt.Errorf("failed to unmarshal commit: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record.Tree, nil
}

// ParentOf возвращает SHA родителя коммита
func (s *Store) ParentOf(ctx context.Context, sha string) (string, error) {
	var record commitRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketCommits).Get([]byte(sha))
		if data == nil {
			return fmt.Errorf("commit %s: %w", sha, models.ErrCommitNotFound)
		}
		if err := json.Unmarshal(data, &record); err != nil {
			return fmt.Errorf("failed to unmarshal commit: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return record.Parent, nil
}

// CurrentHead возвращает SHA текущего HEAD (пустая строка для пустой истории)
func (s *Store) CurrentHead(ctx context.Context) (string, error) {
	var head string
	err := s.db.View(func(tx *bbolt.Tx) error {
		if data := tx.Bucket(bucketMeta).Get(keyHead); data != nil {
			head = string(data)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to read head: %w", err)
	}
	return head, nil
}

// Commit записывает новый коммит и передвигает HEAD
func (s *Store) Commit(ctx context.Context, tree Tree, parent string) (string, error) {
	sha := CommitSHA(tree, parent)
	record := commitRecord{
		Tree:      tree.Clone(),
		Parent:    parent,
		CreatedAt: time.Now(),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to marshal commit: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketCommits).Put([]byte(sha), data); err != nil {
			return fmt.Errorf("failed to save commit: %w", err)
		}
		if err := tx.Bucket(bucketMeta).Put(keyHead, []byte(sha)); err != nil {
			return fmt.Errorf("failed to update head: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return sha, nil
}

// SetHead передвигает HEAD на существующий коммит
func (s *Store) SetHead(ctx context.Context, sha string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketCommits).Get([]byte(sha)) == nil {
			return fmt.Errorf("commit %s: %w", sha, models.ErrCommitNotFound)
		}
		if err := tx.Bucket(bucketMeta).Put(keyHead, []byte(sha)); err != nil {
			return fmt.Errorf("failed to update head: %w", err)
		}
		return nil
	})
}

// Blob возвращает содержимое по контентному хешу
func (s *Store) Blob(ctx context.Context, hash string) ([]byte, error) {
	var content []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketBlobs).Get([]byte(hash))
		if data == nil {
			return fmt.Errorf("blob %s: %w", hash, models.ErrCommitNotFound)
		}
		content = make([]byte, len(data))
		copy(content, data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return content, nil
}

// PutBlob сохраняет содержимое и возвращает его контентный хеш
func (s *Store) PutBlob(ctx context.Context, content []byte) (string, error) {
	hash := HashContent(content)
	err := s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketBlobs).Put([]byte(hash), content); err != nil {
			return fmt.Errorf("failed to save blob: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return hash, nil
}

package securestore

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/casedesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/casedesk/internal/common"
	"github.com/dmitrijs2005/casedesk/internal/cryptox"
	"github.com/dmitrijs2005/casedesk/internal/logging"
)

// SealedStore seals every value with AES-GCM before handing it to the
// underlying repository. All operations are serialised by one mutex.
type SealedStore struct {
	mu     sync.Mutex
	repo   metadata.Repository
	key    []byte
	closer io.Closer
	log    logging.Logger
}

// NewSealed wraps repo. key must be cryptox.KeySize bytes long.
func NewSealed(repo metadata.Repository, key []byte, log logging.Logger) *SealedStore {
	if log == nil {
		log = logging.Nop()
	}
	return &SealedStore{repo: repo, key: key, log: log.With("component", "securestore")}
}

// NewMemory returns a SealedStore over process memory with a throwaway key.
func NewMemory() *SealedStore {
	return NewSealed(metadata.NewMemoryRepository(), common.GenerateRandByteArray(cryptox.KeySize), nil)
}

func (s *SealedStore) Save(ctx context.Context, key string, value any) error {
	doc, err := encode(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	sealed, err := cryptox.Seal(s.key, doc)
	if err != nil {
		return common.Storage("seal "+key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Set(ctx, key, sealed); err != nil {
		s.log.Error(ctx, "save failed", "key", key, "error", err)
		return common.Storage("save "+key, err)
	}
	return nil
}

func (s *SealedStore) ReadRaw(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	sealed, err := s.repo.Get(ctx, key)
	s.mu.Unlock()

	if err != nil {
		s.log.Error(ctx, "read failed", "key", key, "error", err)
		return nil, common.Storage("read "+key, err)
	}
	if sealed == nil {
		return nil, nil
	}

	doc, err := cryptox.Open(s.key, sealed)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", key, ErrCorrupt, err)
	}
	return doc, nil
}

func (s *SealedStore) Read(ctx context.Context, key string, dst any) (bool, error) {
	doc, err := s.ReadRaw(ctx, key)
	if err != nil || doc == nil {
		return false, err
	}
	if err := decode(doc, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *SealedStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, key); err != nil {
		return common.Storage("delete "+key, err)
	}
	return nil
}

// Close releases the database handle when the store owns one.
func (s *SealedStore) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Package manifest tracks the durable state of a dataset: its merged
// schema and the data and embedding shards written so far.
//
// Every Save writes a fresh numbered manifest file and then repoints the
// CURRENT file at it, so readers always observe a complete manifest even
// when a writer dies mid-update.
package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/fieldline-ai/fieldline/blobstore"
	"github.com/fieldline-ai/fieldline/schema"
)

const (
	ManifestFileName = "MANIFEST"
	CurrentFileName  = "CURRENT"
	CurrentVersion   = 1
)

// Manifest describes the state of a dataset at a specific point in time.
type Manifest struct {
	Version         int            `json:"version"`
	ID              uint64         `json:"id"`
	Schema          *schema.Schema `json:"schema"`
	DataShards      []ShardInfo    `json:"data_shards"`
	EmbeddingShards []ShardInfo    `json:"embedding_shards"`
}

// ShardInfo describes a single shard file.
type ShardInfo struct {
	Filename string `json:"filename"`
	NumItems int    `json:"num_items"`
}

// Store manages the manifest file and atomic updates.
type Store struct {
	store blobstore.BlobStore
	mu    sync.Mutex
}

// NewStore creates a new manifest store on top of a blob store.
func NewStore(bs blobstore.BlobStore) *Store {
	return &Store{store: bs}
}

// Load loads the current manifest. A dataset that has never been saved
// yields an empty manifest with an empty schema.
func (s *Store) Load(ctx context.Context) (*Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.readFile(ctx, CurrentFileName)
	if errors.Is(err, blobstore.ErrNotFound) {
		return &Manifest{Version: CurrentVersion, Schema: schema.New(nil)}, nil
	}
	if err != nil {
		return nil, err
	}

	data, err := s.readFile(ctx, string(current))
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	if m.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported manifest version: %d (expected %d)", m.Version, CurrentVersion)
	}
	if m.Schema == nil {
		m.Schema = schema.New(nil)
	}

	return &m, nil
}

// Save atomically saves a new manifest.
func (s *Store) Save(ctx context.Context, m *Manifest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.Version = CurrentVersion
	m.ID++

	filename := fmt.Sprintf("%s-%06d.json", ManifestFileName, m.ID)

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}

	// Put is all-or-nothing, so the new manifest file is complete on
	// disk before CURRENT points at it.
	if err := s.store.Put(ctx, filename, data); err != nil {
		return err
	}

	return s.store.Put(ctx, CurrentFileName, []byte(filename))
}

func (s *Store) readFile(ctx context.Context, name string) ([]byte, error) {
	blob, err := s.store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	return blobstore.ReadAll(blob)
}

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/schema"
)

var (
	// ErrEmptyDefinition is returned when a definition has no blocks.
	ErrEmptyDefinition = errors.New("storage: definition has no blocks")
	// ErrNotFound is returned when a form id is unknown.
	ErrNotFound = errors.New("storage: form not found")
)

// Definition is a finished form handed to the forms-storage collaborator.
type Definition struct {
	Title  string          `json:"title"`
	Blocks []model.Block   `json:"blocks"`
	Schema json.RawMessage `json:"schema,omitempty"`
}

// NewDefinition captures form together with its submission schema.
func NewDefinition(form model.Form) (Definition, error) {
	sub, err := schema.Build(form)
	if err != nil {
		return Definition{}, fmt.Errorf("storage: build schema: %w", err)
	}
	raw, err := json.Marshal(sub)
	if err != nil {
		return Definition{}, fmt.Errorf("storage: encode schema: %w", err)
	}
	clone := form.Clone()
	return Definition{Title: form.Title(), Blocks: clone.Blocks, Schema: raw}, nil
}

// Form rebuilds the form the definition was captured from.
func (d Definition) Form() model.Form {
	form := model.NewForm()
	for _, block := range d.Blocks {
		form.Blocks = append(form.Blocks, block.Clone())
	}
	return form
}

// Submitter accepts finished form definitions and returns their identifier.
type Submitter interface {
	SubmitForm(ctx context.Context, def Definition) (string, error)
}

// Getter looks up stored definitions by id.
type Getter interface {
	Get(ctx context.Context, id string) (Record, error)
}

// Record is a stored definition.
type Record struct {
	ID         string     `json:"id"`
	Definition Definition `json:"definition"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// MemoryStore keeps definitions in process. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	now     func() time.Time
	newID   func() string
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock overrides the time source.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the id generator.
func WithIDGenerator(fn func() string) MemoryOption {
	return func(s *MemoryStore) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewMemoryStore returns an empty store issuing UUIDv4 ids.
func NewMemoryStore(options ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		records: make(map[string]Record),
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

var (
	_ Submitter = (*MemoryStore)(nil)
	_ Getter    = (*MemoryStore)(nil)
)

// SubmitForm stores def and returns its id.
func (s *MemoryStore) SubmitForm(ctx context.Context, def Definition) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(def.Blocks) == 0 {
		return "", ErrEmptyDefinition
	}

	id := strings.TrimSpace(s.newID())
	if id == "" {
		return "", errors.New("storage: id generator returned an empty id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[id]; exists {
		return "", fmt.Errorf("storage: duplicate id %q", id)
	}
	s.records[id] = Record{
		ID:         id,
		Definition: cloneDefinition(def),
		CreatedAt:  s.now(),
	}
	return id, nil
}

// Get returns the record stored under id.
func (s *MemoryStore) Get(_ context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	record.Definition = cloneDefinition(record.Definition)
	return record, nil
}

// List returns every record ordered by creation time, then id.
func (s *MemoryStore) List(_ context.Context) []Record {
	s.mu.RLock()
	out := make([]Record, 0, len(s.records))
	for _, record := range s.records {
		record.Definition = cloneDefinition(record.Definition)
		out = append(out, record)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func cloneDefinition(def Definition) Definition {
	out := Definition{Title: def.Title}
	if def.Blocks != nil {
		out.Blocks = make([]model.Block, len(def.Blocks))
		for i, block := range def.Blocks {
			out.Blocks[i] = block.Clone()
		}
	}
	if def.Schema != nil {
		out.Schema = append(json.RawMessage(nil), def.Schema...)
	}
	return out
}

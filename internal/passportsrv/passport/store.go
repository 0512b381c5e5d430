package passport

import (
	"context"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"

	"github.com/openpassport/dppsrv/internal/common/apperrors"
)

// id alphabet omits ambiguous characters, like airline booking references
const idAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
const idLength = 10

// NewID generates a fresh passport identifier.
func NewID() (string, error) {
	code, err := gonanoid.Generate(idAlphabet, idLength)
	if err != nil {
		return "", err
	}
	return "DPP-" + code, nil
}

// Store is the in-memory keyed collection of passport records. All state is
// process-lifetime; nothing is persisted. Mutations are read-modify-write and
// run under the write lock, so concurrent partial updates of the same record
// never lose fields. Reads return deep copies, so callers always observe a
// consistent snapshot.
type Store struct {
	mu      sync.RWMutex
	records map[string]*DigitalProductPassport
	nowFn   func() time.Time
}

type StoreOption func(*Store)

// WithClock overrides the time source used for last_updated stamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowFn = now
	}
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		records: make(map[string]*DigitalProductPassport),
		nowFn:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create inserts a new record. An empty id gets a generated one; a supplied
// id must be unique across the store, archived records included.
func (s *Store) Create(ctx context.Context, p *DigitalProductPassport) (*DigitalProductPassport, apperrors.Error) {
	rec := p.Clone()
	if rec.ID == "" {
		id, err := NewID()
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("unable to generate passport id")
			return nil, ErrPassport.New("unable to generate passport id").Err(err)
		}
		rec.ID = id
	}
	rec.Metadata.IsArchived = false
	rec.Metadata.LastUpdated = s.nowFn()
	if rec.ProductDetails.CustomAttributes == nil {
		rec.ProductDetails.CustomAttributes = []CustomAttribute{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[rec.ID]; ok {
		return nil, ErrAlreadyExists.New("passport already exists: " + rec.ID)
	}
	s.records[rec.ID] = rec
	return rec.Clone(), nil
}

// Get returns the record only if it exists and is not archived.
func (s *Store) Get(id string) (*DigitalProductPassport, apperrors.Error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok || rec.Metadata.IsArchived {
		return nil, ErrPassportNotFound.New("passport not found: " + id)
	}
	return rec.Clone(), nil
}

// Update applies a partial-update payload to an active record and returns the
// merged result. The payload is validated before the merge engine runs, so a
// structurally valid payload never fails mid-merge.
func (s *Store) Update(ctx context.Context, id string, payload []byte) (*DigitalProductPassport, apperrors.Error) {
	req, err := ParseUpdateRequest(payload)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("passport_id", id).Msg("rejected update payload")
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok || rec.Metadata.IsArchived {
		return nil, ErrPassportNotFound.New("passport not found: " + id)
	}
	merged := mergePassport(rec, req, s.nowFn())
	s.records[id] = merged
	return merged.Clone(), nil
}

// Apply runs fn against an active record under the write lock and refreshes
// last_updated. Used by the ledger facade to attach blockchain identifiers.
func (s *Store) Apply(id string, fn func(*DigitalProductPassport) apperrors.Error) (*DigitalProductPassport, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok || rec.Metadata.IsArchived {
		return nil, ErrPassportNotFound.New("passport not found: " + id)
	}
	updated := rec.Clone()
	if err := fn(updated); err != nil {
		return nil, err
	}
	updated.Metadata.LastUpdated = s.nowFn()
	s.records[id] = updated
	return updated.Clone(), nil
}

// Archive soft-deletes a record. The record stays addressable, so archiving
// an already-archived record succeeds again; the flag is never cleared.
func (s *Store) Archive(id string) (*DigitalProductPassport, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, ErrPassportNotFound.New("passport not found: " + id)
	}
	rec.Metadata.IsArchived = true
	rec.Metadata.LastUpdated = s.nowFn()
	return rec.Clone(), nil
}

// All returns a snapshot of every record, archived ones included.
func (s *Store) All() []DigitalProductPassport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]DigitalProductPassport, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, *rec.Clone())
	}
	return out
}

// Active returns a snapshot of the records visible to normal reads.
func (s *Store) Active() []DigitalProductPassport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]DigitalProductPassport, 0, len(s.records))
	for _, rec := range s.records {
		if rec.Metadata.IsArchived {
			continue
		}
		out = append(out, *rec.Clone())
	}
	return out
}

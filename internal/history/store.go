// Package history persists AnalysisEntry records as a bounded, newest-first collection.
//
// The whole collection lives under one storage key. Every mutation reads it,
// changes it in memory and writes it back. A mutex serializes writers inside
// one process; separate processes sharing a slot are last-writer-wins.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonathan/placement-readiness/internal/entry"
	"github.com/jonathan/placement-readiness/internal/metrics"
	"github.com/jonathan/placement-readiness/internal/scoring"
	"github.com/jonathan/placement-readiness/internal/storage"
	"github.com/jonathan/placement-readiness/internal/types"
	"github.com/rs/zerolog"
)

const (
	// DefaultKey is the storage key holding the history collection.
	DefaultKey = "placement_readiness_history"
	// DefaultLimit is the maximum number of entries kept.
	DefaultLimit = 50

	opSave   = "save"
	opUpdate = "update"
	opRemove = "remove"
	opClear  = "clear"
	opHeal   = "heal"
)

// ListResult is the cleaned collection plus a summary of what had to be fixed.
type ListResult struct {
	Entries        []types.AnalysisEntry `json:"entries"`
	CorruptedCount int                   `json:"corrupted_count"`
	Advisory       string                `json:"advisory,omitempty"`
}

// Patch lists the mutable fields of an entry.
type Patch struct {
	SkillConfidenceMap map[string]types.Confidence
}

// Store is the history collection over a storage backend.
type Store struct {
	backend storage.Backend
	key     string
	limit   int
	now     func() time.Time
	log     zerolog.Logger

	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage key. An empty key keeps the default.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLimit overrides the maximum number of kept entries.
func WithLimit(limit int) Option {
	return func(s *Store) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New creates a Store over backend.
func New(backend storage.Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		key:     DefaultKey,
		limit:   DefaultLimit,
		now:     func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the stored entries, repairing or dropping corrupt records.
// When anything was repaired the cleaned collection is written back.
func (s *Store) List(ctx context.Context) ListResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(ctx)
}

func (s *Store) list(ctx context.Context) ListResult {
	entries, corrupted, err := s.load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("history unreadable, treating as empty")
		return ListResult{Entries: []types.AnalysisEntry{}}
	}
	res := ListResult{Entries: entries, CorruptedCount: corrupted}
	if corrupted > 0 {
		res.Advisory = fmt.Sprintf("%d corrupted entries were repaired or removed", corrupted)
		if err := s.persist(ctx, entries); err != nil {
			metrics.StorageFailures.WithLabelValues(opHeal).Inc()
			s.log.Warn().Err(err).Msg("failed to write back repaired history")
		}
	}
	return res
}

// load reads and cleans the collection without writing.
// A missing slot is an empty collection; any other read failure is returned.
func (s *Store) load(ctx context.Context) ([]types.AnalysisEntry, int, error) {
	entries := []types.AnalysisEntry{}

	raw, err := s.backend.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return entries, 0, nil
		}
		return nil, 0, fmt.Errorf("failed to read history: %w", err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("history is not a list, treating as empty")
		return entries, 0, nil
	}

	corrupted := 0
	seen := make(map[string]bool, len(records))
	for i, rec := range records {
		e, ok, repaired := s.clean(rec)
		if !ok {
			corrupted++
			metrics.EntriesDropped.Inc()
			s.log.Warn().Int("index", i).Msg("dropped unrecoverable history entry")
			continue
		}
		if repaired {
			corrupted++
			metrics.EntriesRepaired.Inc()
			s.log.Info().Int("index", i).Str("entry_id", e.ID).Msg("repaired history entry")
		}
		if seen[e.ID] {
			if !repaired {
				corrupted++
			}
			s.log.Warn().Str("entry_id", e.ID).Msg("dropped duplicate history entry")
			continue
		}
		seen[e.ID] = true
		entries = append(entries, e)
	}

	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}
	return entries, corrupted, nil
}

// loadForWrite is load for mutating callers. A read failure is reported as a
// *StorageError for op so the slot is never overwritten with a partial view.
func (s *Store) loadForWrite(ctx context.Context, op string) ([]types.AnalysisEntry, int, error) {
	entries, corrupted, err := s.load(ctx)
	if err != nil {
		metrics.StorageFailures.WithLabelValues(op).Inc()
		s.log.Error().Err(err).Str("key", s.key).Str("op", op).Msg("history unreadable, refusing to write")
		return nil, 0, newReadError(op, err)
	}
	return entries, corrupted, nil
}

// clean returns the entry for one record and whether it had to be repaired.
func (s *Store) clean(rec json.RawMessage) (types.AnalysisEntry, bool, bool) {
	var doc interface{}
	if err := json.Unmarshal(rec, &doc); err != nil {
		return types.AnalysisEntry{}, false, false
	}

	if entry.Validate(doc).IsValid {
		if e, err := entry.Decode(rec); err == nil {
			return e, true, false
		}
	}

	repaired := entry.Repair(doc, s.now())
	if repaired == nil {
		return types.AnalysisEntry{}, false, false
	}
	return *repaired, true, true
}

func (s *Store) persist(ctx context.Context, entries []types.AnalysisEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	return s.backend.Set(ctx, s.key, raw)
}

// Save standardizes d, prepends it and truncates the collection to the limit.
// A read or write failure returns a *StorageError and leaves the stored
// collection unchanged.
func (s *Store) Save(ctx context.Context, d entry.Draft) (types.AnalysisEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry.Standardize(d, s.now())
	current, _, err := s.loadForWrite(ctx, opSave)
	if err != nil {
		return types.AnalysisEntry{}, err
	}

	next := make([]types.AnalysisEntry, 0, min(len(current)+1, s.limit))
	next = append(next, e)
	for _, existing := range current {
		if len(next) == s.limit {
			break
		}
		if existing.ID == e.ID {
			continue
		}
		next = append(next, existing)
	}

	if err := s.persist(ctx, next); err != nil {
		metrics.StorageFailures.WithLabelValues(opSave).Inc()
		s.log.Error().Err(err).Str("entry_id", e.ID).Msg("failed to save analysis")
		return types.AnalysisEntry{}, newStorageError(opSave, err)
	}

	metrics.AnalysesSaved.Inc()
	s.log.Info().Str("entry_id", e.ID).Int("base_score", e.BaseScore).Int("entries", len(next)).Msg("analysis saved")
	return e, nil
}

// Get returns the entry with id, or nil.
func (s *Store) Get(ctx context.Context, id string) *types.AnalysisEntry {
	for _, e := range s.List(ctx).Entries {
		if e.ID == id {
			found := e
			return &found
		}
	}
	return nil
}

// Update applies p to the entry with id and recomputes its final score from the
// unchanged base score. It returns nil, nil when id is unknown.
// Confidence is accepted for extracted skills and for skills already present in
// the entry's confidence map; anything else is ignored.
func (s *Store) Update(ctx context.Context, id string, p Patch) (*types.AnalysisEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, _, err := s.loadForWrite(ctx, opUpdate)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range entries {
		if entries[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}

	e := entries[idx]
	known := make(map[string]bool)
	for _, skill := range e.ExtractedSkills.All() {
		known[skill] = true
	}
	for skill := range e.SkillConfidenceMap {
		known[skill] = true
	}

	confidence := e.SkillConfidenceMap.Clone()
	for skill, c := range p.SkillConfidenceMap {
		if !known[skill] {
			s.log.Debug().Str("entry_id", id).Str("skill", skill).Msg("ignoring confidence for unknown skill")
			continue
		}
		if c != types.ConfidenceKnow {
			c = types.ConfidencePractice
		}
		confidence[skill] = c
	}

	e.SkillConfidenceMap = confidence
	e.FinalScore = scoring.ComputeFinalScore(e.BaseScore, confidence)
	e.UpdatedAt = s.now()
	if !e.UpdatedAt.After(entries[idx].UpdatedAt) {
		e.UpdatedAt = entries[idx].UpdatedAt.Add(time.Millisecond)
	}
	entries[idx] = e

	if err := s.persist(ctx, entries); err != nil {
		metrics.StorageFailures.WithLabelValues(opUpdate).Inc()
		s.log.Error().Err(err).Str("entry_id", id).Msg("failed to update analysis")
		return nil, newStorageError(opUpdate, err)
	}

	metrics.ConfidenceUpdates.Inc()
	s.log.Info().Str("entry_id", id).Int("final_score", e.FinalScore).Msg("confidence updated")
	return &e, nil
}

// Remove deletes the entry with id. Removing an unknown id succeeds.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, corrupted, err := s.loadForWrite(ctx, opRemove)
	if err != nil {
		return err
	}
	kept := make([]types.AnalysisEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) && corrupted == 0 {
		return nil
	}

	if err := s.persist(ctx, kept); err != nil {
		metrics.StorageFailures.WithLabelValues(opRemove).Inc()
		return newStorageError(opRemove, err)
	}
	s.log.Info().Str("entry_id", id).Msg("analysis removed")
	return nil
}

// Clear removes the whole collection.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Delete(ctx, s.key); err != nil {
		metrics.StorageFailures.WithLabelValues(opClear).Inc()
		return newStorageError(opClear, err)
	}
	s.log.Info().Msg("history cleared")
	return nil
}

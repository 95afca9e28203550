// Package checklist tracks the manual verification checklist for a release.
//
// State is an id -> passed mapping stored under its own key, independent of
// the analysis history.
package checklist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jonathan/placement-readiness/internal/schemas"
	"github.com/jonathan/placement-readiness/internal/storage"
	rootschemas "github.com/jonathan/placement-readiness/schemas"
	"github.com/rs/zerolog"
)

// DefaultKey is the storage key of the checklist state.
const DefaultKey = "placement_readiness_test_checklist"

// ErrUnknownItem is returned when toggling an id that is not a checklist item.
var ErrUnknownItem = errors.New("unknown checklist item")

// Item is one manual check.
type Item struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Hint  string `json:"hint"`
	Area  string `json:"area"`
}

// Items is the fixed checklist, in display order.
var Items = []Item{
	{"jd-required", "JD required validation works", "Run analyze with an empty --jd-text. It should be rejected before anything is saved.", "analyze"},
	{"short-jd-warning", "Short JD warning shows for <200 chars", "Analyze a JD shorter than 200 characters. A warning should be printed.", "analyze"},
	{"skills-extraction", "Skills extraction groups correctly", "Analyze a JD with React, Node.js and SQL. Verify the categories in the result.", "analyze"},
	{"round-mapping", "Round mapping changes based on company + skills", "Try \"Google\" (enterprise) vs \"StartupXYZ\" (startup). The rounds should differ.", "analyze"},
	{"score-deterministic", "Score calculation is deterministic", "Analyze the same JD twice. The base score should be identical.", "analyze"},
	{"skill-toggles", "Skill toggles update score live", "Mark skills as know or practice. The final score should change immediately.", "confidence"},
	{"persist-after-refresh", "Changes persist after restart", "Update confidence, restart the server and fetch the entry again.", "confidence"},
	{"history-save-load", "History saves and loads correctly", "Create an analysis, then list history. The entry should appear first.", "history"},
	{"export-buttons", "Export writes the correct content", "Run analyze with --out and compare the file with history show.", "analyze"},
	{"no-console-errors", "No errors in the logs", "Run through analyze, history and confidence with --log-level debug. Check for error lines.", "all"},
}

// State maps item id to whether it passed.
type State map[string]bool

// PassedCount counts passed items.
func (s State) PassedCount() int {
	n := 0
	for _, item := range Items {
		if s[item.ID] {
			n++
		}
	}
	return n
}

// AllPassed reports whether every item passed.
func (s State) AllPassed() bool {
	return s.PassedCount() == len(Items)
}

// Lookup returns the item with id.
func Lookup(id string) (Item, bool) {
	for _, item := range Items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

func initialState() State {
	s := make(State, len(Items))
	for _, item := range Items {
		s[item.ID] = false
	}
	return s
}

// Store persists checklist state.
type Store struct {
	backend storage.Backend
	key     string
	log     zerolog.Logger
	mu      sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithKey stores the state under key instead of DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used for read and validation warnings.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// New creates a Store over backend.
func New(backend storage.Backend, opts ...Option) *Store {
	s := &Store{backend: backend, key: DefaultKey, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the stored state. Missing or unreadable state reads as all unchecked.
func (s *Store) State(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("test checklist unreadable")
		return initialState()
	}
	return state
}

// load returns an error only when the backend read fails. Missing or invalid
// documents read as all unchecked.
func (s *Store) load(ctx context.Context) (State, error) {
	state := initialState()

	raw, err := s.backend.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return state, nil
		}
		return nil, fmt.Errorf("failed to read test checklist: %w", err)
	}
	if err := schemas.ValidateBytes(rootschemas.TestChecklist, raw); err != nil {
		s.log.Warn().Err(err).Msg("test checklist invalid, resetting view")
		return state, nil
	}

	var stored map[string]bool
	if err := json.Unmarshal(raw, &stored); err != nil {
		return state, nil
	}
	for id := range state {
		state[id] = stored[id]
	}
	return state, nil
}

func (s *Store) save(ctx context.Context, state State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal test checklist: %w", err)
	}
	if err := s.backend.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("failed to save test checklist: %w", err)
	}
	return nil
}

// Toggle flips the item and returns the new state.
// Nothing is written when the stored state cannot be read.
func (s *Store) Toggle(ctx context.Context, id string) (State, error) {
	if _, ok := Lookup(id); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	state[id] = !state[id]
	if err := s.save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Reset unchecks every item.
func (s *Store) Reset(ctx context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := initialState()
	if err := s.save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

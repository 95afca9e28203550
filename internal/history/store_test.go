package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/placement-readiness/internal/entry"
	"github.com/jonathan/placement-readiness/internal/skills"
	"github.com/jonathan/placement-readiness/internal/storage"
	"github.com/jonathan/placement-readiness/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tickingClock advances one second per call.
func tickingClock() func() time.Time {
	t := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newTestStore(t *testing.T, backend storage.Backend) *Store {
	t.Helper()
	if backend == nil {
		backend = storage.NewMemory(0)
	}
	return New(backend, WithClock(tickingClock()))
}

func draftFor(jd, company, role string) entry.Draft {
	return entry.Draft{
		Company:         company,
		Role:            role,
		JDText:          jd,
		ExtractedSkills: entry.SkillsDraft(skills.Extract(jd)),
	}
}

// failingBackend fails every write with err.
type failingBackend struct {
	*storage.Memory
	err error
}

func (f *failingBackend) Set(context.Context, string, []byte) error { return f.err }
func (f *failingBackend) Delete(context.Context, string) error      { return f.err }

// readFailingBackend fails every read with err while err is set.
type readFailingBackend struct {
	*storage.Memory
	err error
}

func (r *readFailingBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.Memory.Get(ctx, key)
}

func TestList_EmptyStore(t *testing.T) {
	s := newTestStore(t, nil)

	res := s.List(context.Background())
	assert.NotNil(t, res.Entries)
	assert.Empty(t, res.Entries)
	assert.Zero(t, res.CorruptedCount)
	assert.Empty(t, res.Advisory)
}

func TestList_UnreadableSlot(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{{{"},
		{"object instead of list", `{"id": "x"}`},
		{"string", `"history"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := storage.NewMemory(0)
			require.NoError(t, mem.Set(context.Background(), DefaultKey, []byte(tt.raw)))

			res := newTestStore(t, mem).List(context.Background())
			assert.Empty(t, res.Entries)
			assert.Zero(t, res.CorruptedCount)
			assert.Empty(t, res.Advisory)
		})
	}
}

func TestSave_GetRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)

	saved, err := s.Save(ctx, draftFor("Go, Docker and PostgreSQL", "Acme", "Backend"))
	require.NoError(t, err)

	got := s.Get(ctx, saved.ID)
	require.NotNil(t, got)
	assert.Equal(t, saved, *got)
}

func TestSave_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)

	first, err := s.Save(ctx, draftFor("React", "A", ""))
	require.NoError(t, err)
	second, err := s.Save(ctx, draftFor("SQL", "B", ""))
	require.NoError(t, err)

	res := s.List(ctx)
	require.Len(t, res.Entries, 2)
	assert.Equal(t, second.ID, res.Entries[0].ID)
	assert.Equal(t, first.ID, res.Entries[1].ID)
}

func TestSave_EvictsOldest(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)

	var ids []string
	for i := 0; i < 51; i++ {
		e, err := s.Save(ctx, draftFor(fmt.Sprintf("Python job %d", i), "Acme", "SDE"))
		require.NoError(t, err)
		ids = append(ids, e.ID)
	}

	res := s.List(ctx)
	require.Len(t, res.Entries, DefaultLimit)
	assert.Equal(t, ids[50], res.Entries[0].ID)
	assert.Nil(t, s.Get(ctx, ids[0]), "oldest entry is evicted")
	assert.NotNil(t, s.Get(ctx, ids[1]))
}

func TestSave_ReplacesSameID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)

	d := draftFor("React", "A", "")
	d.ID = "fixed"
	_, err := s.Save(ctx, d)
	require.NoError(t, err)
	_, err = s.Save(ctx, d)
	require.NoError(t, err)

	assert.Len(t, s.List(ctx).Entries, 1)
}

func TestSave_StorageFailure(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory(0)
	s := newTestStore(t, &failingBackend{Memory: mem, err: storage.ErrQuotaExceeded})

	_, err := s.Save(ctx, draftFor("React", "A", ""))
	require.Error(t, err)

	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "failed to save analysis: storage may be full", se.Message)
	assert.ErrorIs(t, err, storage.ErrQuotaExceeded)

	_, getErr := mem.Get(ctx, DefaultKey)
	assert.ErrorIs(t, getErr, storage.ErrNotFound, "nothing was written")
}

func TestSave_QuotaOnMemoryBackend(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, storage.NewMemory(2048))

	var err error
	for i := 0; i < 20 && err == nil; i++ {
		_, err = s.Save(ctx, draftFor(strings.Repeat("Kubernetes ", 20), "Acme", "SRE"))
	}
	require.Error(t, err)
	var se *StorageError
	assert.ErrorAs(t, err, &se)
	assert.NotEmpty(t, s.List(ctx).Entries, "earlier saves survive")
}

func TestUpdate_AllKnow(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)

	saved, err := s.Save(ctx, draftFor("Java, React, SQL, AWS and Jest", "Acme", "SDE"))
	require.NoError(t, err)

	all := saved.ExtractedSkills.All()
	patch := Patch{SkillConfidenceMap: map[string]types.Confidence{}}
	for _, skill := range all {
		patch.SkillConfidenceMap[skill] = types.ConfidenceKnow
	}

	updated, err := s.Update(ctx, saved.ID, patch)
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, min(100, saved.BaseScore+2*len(all)), updated.FinalScore)
	assert.Equal(t, saved.BaseScore, updated.BaseScore)
	assert.True(t, updated.UpdatedAt.After(saved.UpdatedAt))
	assert.Equal(t, saved.CreatedAt, updated.CreatedAt)

	stored := s.Get(ctx, saved.ID)
	require.NotNil(t, stored)
	assert.Equal(t, *updated, *stored)
}

func TestUpdate_IgnoresUnknownSkillsAndNormalizes(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)

	saved, err := s.Save(ctx, draftFor("Python", "", ""))
	require.NoError(t, err)

	updated, err := s.Update(ctx, saved.ID, Patch{SkillConfidenceMap: map[string]types.Confidence{
		"Python":   "know",
		"Haskell":  "know",
		"Python ": "practice",
	}})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, types.ConfidenceKnow, updated.SkillConfidenceMap["Python"])
	assert.NotContains(t, updated.SkillConfidenceMap, "Haskell")
	assert.Equal(t, saved.BaseScore+2, updated.FinalScore)
}

func TestUpdate_UnknownID(t *testing.T) {
	s := newTestStore(t, nil)

	got, err := s.Update(context.Background(), "missing", Patch{})
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)

	a, err := s.Save(ctx, draftFor("React", "A", ""))
	require.NoError(t, err)
	b, err := s.Save(ctx, draftFor("SQL", "B", ""))
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, "does-not-exist"))
	assert.Len(t, s.List(ctx).Entries, 2)

	require.NoError(t, s.Remove(ctx, a.ID))
	require.NoError(t, s.Remove(ctx, a.ID))

	res := s.List(ctx)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, b.ID, res.Entries[0].ID)
}

func TestRemove_StorageFailure(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory(0)
	seed := newTestStore(t, mem)
	saved, err := seed.Save(ctx, draftFor("React", "A", ""))
	require.NoError(t, err)

	s := newTestStore(t, &failingBackend{Memory: mem, err: errors.New("disk on fire")})
	err = s.Remove(ctx, saved.ID)
	var se *StorageError
	assert.ErrorAs(t, err, &se)

	assert.NoError(t, s.Remove(ctx, "unknown"), "no write needed for an unknown id")
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)

	_, err := s.Save(ctx, draftFor("React", "A", ""))
	require.NoError(t, err)

	require.NoError(t, s.Clear(ctx))
	assert.Empty(t, s.List(ctx).Entries)
	require.NoError(t, s.Clear(ctx))
}

func TestList_RepairsAndWritesBack(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory(0)
	s := newTestStore(t, mem)

	good, err := s.Save(ctx, draftFor("React and SQL", "Acme", "SDE"))
	require.NoError(t, err)

	raw, err := mem.Get(ctx, DefaultKey)
	require.NoError(t, err)
	var records []interface{}
	require.NoError(t, json.Unmarshal(raw, &records))

	records = append(records,
		map[string]interface{}{
			"id":              "legacy-1",
			"createdAt":       "2023-01-01T00:00:00.000Z",
			"jdText":          "Docker",
			"extractedSkills": map[string]interface{}{"cloudDevOps": map[string]interface{}{"label": "Cloud", "skills": []interface{}{"Docker"}}},
			"plan":            []interface{}{map[string]interface{}{"day": 1, "title": "Basics"}},
			"readinessScore":  55,
		},
		"not an object",
		42,
	)
	corrupt, err := json.Marshal(records)
	require.NoError(t, err)
	require.NoError(t, mem.Set(ctx, DefaultKey, corrupt))

	res := s.List(ctx)
	assert.Equal(t, 3, res.CorruptedCount)
	assert.Contains(t, res.Advisory, "3 corrupted entries")
	require.Len(t, res.Entries, 2)
	assert.Equal(t, good.ID, res.Entries[0].ID)

	legacy := res.Entries[1]
	assert.Equal(t, "legacy-1", legacy.ID)
	assert.Equal(t, []string{"Docker"}, legacy.ExtractedSkills[types.CategoryCloud])
	assert.Equal(t, 55, legacy.BaseScore)
	assert.Equal(t, 53, legacy.FinalScore)
	require.Len(t, legacy.Plan7Days, 1)
	assert.Equal(t, "Basics", legacy.Plan7Days[0].Focus)

	again := s.List(ctx)
	assert.Zero(t, again.CorruptedCount, "repaired collection was written back")
	assert.Empty(t, again.Advisory)
	assert.Equal(t, res.Entries, again.Entries)
}

func TestList_DropsDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory(0)
	s := newTestStore(t, mem)

	saved, err := s.Save(ctx, draftFor("React", "A", ""))
	require.NoError(t, err)

	dup, err := json.Marshal([]types.AnalysisEntry{saved, saved})
	require.NoError(t, err)
	require.NoError(t, mem.Set(ctx, DefaultKey, dup))

	res := s.List(ctx)
	assert.Len(t, res.Entries, 1)
	assert.Equal(t, 1, res.CorruptedCount)
}

func TestStore_ConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	s := New(storage.NewMemory(0))

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			_, err := s.Save(ctx, draftFor(fmt.Sprintf("Go %d", i), "", ""))
			assert.NoError(t, err)
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	assert.Len(t, s.List(ctx).Entries, 10)
}

func TestStore_CustomKeyAndLimit(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory(0)
	s := New(mem, WithKey("custom"), WithLimit(2), WithClock(tickingClock()))

	for i := 0; i < 3; i++ {
		_, err := s.Save(ctx, draftFor("React", "", ""))
		require.NoError(t, err)
	}

	assert.Len(t, s.List(ctx).Entries, 2)
	_, err := mem.Get(ctx, DefaultKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestWithKey_EmptyKeepsDefault(t *testing.T) {
	mem := storage.NewMemory(0)
	s := New(mem, WithKey(""), WithClock(tickingClock()))

	_, err := s.Save(context.Background(), draftFor("React", "", ""))
	require.NoError(t, err)

	_, err = mem.Get(context.Background(), DefaultKey)
	assert.NoError(t, err)
}

func TestStore_ReadFailure(t *testing.T) {
	outage := errors.New("connection reset")

	tests := []struct {
		name string
		run  func(ctx context.Context, s *Store, seeded []types.AnalysisEntry) error
		op   string
	}{
		{
			name: "save",
			run: func(ctx context.Context, s *Store, _ []types.AnalysisEntry) error {
				_, err := s.Save(ctx, draftFor("Go and Redis", "Late", ""))
				return err
			},
			op: opSave,
		},
		{
			name: "update",
			run: func(ctx context.Context, s *Store, seeded []types.AnalysisEntry) error {
				_, err := s.Update(ctx, seeded[0].ID, Patch{SkillConfidenceMap: map[string]types.Confidence{"React": "know"}})
				return err
			},
			op: opUpdate,
		},
		{
			name: "remove",
			run: func(ctx context.Context, s *Store, seeded []types.AnalysisEntry) error {
				return s.Remove(ctx, seeded[0].ID)
			},
			op: opRemove,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			backend := &readFailingBackend{Memory: storage.NewMemory(0)}
			s := newTestStore(t, backend)

			seeded := make([]types.AnalysisEntry, 0, 5)
			for i := 0; i < 5; i++ {
				e, err := s.Save(ctx, draftFor("React", fmt.Sprintf("Co%d", i), ""))
				require.NoError(t, err)
				seeded = append(seeded, e)
			}
			before, err := backend.Memory.Get(ctx, DefaultKey)
			require.NoError(t, err)

			backend.err = outage
			err = tt.run(ctx, s, seeded)

			var se *StorageError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.op, se.Op)
			assert.Equal(t, "failed to read history: storage unavailable", se.Message)
			assert.ErrorIs(t, err, outage)

			after, err := backend.Memory.Get(ctx, DefaultKey)
			require.NoError(t, err)
			assert.Equal(t, before, after, "slot must not be written during a read outage")

			backend.err = nil
			assert.Len(t, s.List(ctx).Entries, 5)
		})
	}
}

func TestSave_AfterReadOutageKeepsHistory(t *testing.T) {
	ctx := context.Background()
	backend := &readFailingBackend{Memory: storage.NewMemory(0)}
	s := newTestStore(t, backend)

	for i := 0; i < 5; i++ {
		_, err := s.Save(ctx, draftFor("SQL", fmt.Sprintf("Co%d", i), ""))
		require.NoError(t, err)
	}

	backend.err = errors.New("connection reset")
	_, err := s.Save(ctx, draftFor("SQL", "Dropped", ""))
	require.Error(t, err)

	backend.err = nil
	_, err = s.Save(ctx, draftFor("SQL", "Retried", ""))
	require.NoError(t, err)

	res := s.List(ctx)
	require.Len(t, res.Entries, 6)
	assert.Equal(t, "Retried", res.Entries[0].Company)
}

func TestList_ReadFailureDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	backend := &readFailingBackend{Memory: storage.NewMemory(0)}
	s := newTestStore(t, backend)

	_, err := s.Save(ctx, draftFor("React", "A", ""))
	require.NoError(t, err)

	backend.err = errors.New("connection reset")
	res := s.List(ctx)
	assert.NotNil(t, res.Entries)
	assert.Empty(t, res.Entries)
	assert.Zero(t, res.CorruptedCount)
	assert.Nil(t, s.Get(ctx, "anything"))

	backend.err = nil
	assert.Len(t, s.List(ctx).Entries, 1)
}

func TestUpdate_StaleConfidenceKeyCanBeSet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)

	d := draftFor("React and SQL", "Acme", "")
	d.SkillConfidenceMap = map[string]string{"Fortran": "practice"}
	saved, err := s.Save(ctx, d)
	require.NoError(t, err)
	require.Contains(t, saved.SkillConfidenceMap, "Fortran")

	patch := Patch{SkillConfidenceMap: map[string]types.Confidence{}}
	for skill := range saved.SkillConfidenceMap {
		patch.SkillConfidenceMap[skill] = types.ConfidenceKnow
	}

	updated, err := s.Update(ctx, saved.ID, patch)
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, types.ConfidenceKnow, updated.SkillConfidenceMap["Fortran"])
	assert.Equal(t, min(100, saved.BaseScore+2*len(saved.SkillConfidenceMap)), updated.FinalScore)
}

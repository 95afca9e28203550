package entry

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonathan/placement-readiness/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRecord(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	return rec
}

func TestDraftFromRecord_LegacyShapes(t *testing.T) {
	rec := decodeRecord(t, `{
		"id": 1700000000000,
		"createdAt": 1700000000000,
		"company": "Acme",
		"role": 42,
		"jdText": "React",
		"extractedSkills": {
			"web": {"label": "Web Development", "skills": ["React"]},
			"cloudDevOps": ["Docker"],
			"testing": "not a list"
		},
		"roundMapping": [
			{"round": 1, "name": "Aptitude", "focus": "Quant"},
			{"round": 2, "roundTitle": "Technical", "focusAreas": ["DSA"], "duration": "60 minutes"},
			"garbage"
		],
		"checklist": [{"round": 1, "title": "Basics", "items": ["a", 3, "b"]}],
		"plan": [{"day": 1, "title": "Basics", "tasks": ["t1"]}],
		"questions": ["q1", null, "q2"],
		"readinessScore": 62.4,
		"skillConfidenceMap": {"React": "know", "Docker": 1}
	}`)

	d := DraftFromRecord(rec)

	assert.Equal(t, "1700000000000", d.ID)
	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), d.CreatedAt)
	assert.True(t, d.UpdatedAt.IsZero())
	assert.Equal(t, "Acme", d.Company)
	assert.Empty(t, d.Role)
	assert.Equal(t, []string{"React"}, d.ExtractedSkills["web"])
	assert.Equal(t, []string{"Docker"}, d.ExtractedSkills["cloudDevOps"])
	assert.NotContains(t, d.ExtractedSkills, "testing")

	require.Len(t, d.RoundMapping, 2)
	assert.Equal(t, "Aptitude", d.RoundMapping[0].RoundTitle)
	assert.Equal(t, []string{"Quant"}, d.RoundMapping[0].FocusAreas)
	assert.Equal(t, []string{"DSA"}, d.RoundMapping[1].FocusAreas)
	assert.Equal(t, "60 minutes", d.RoundMapping[1].Duration)

	require.Len(t, d.Checklist, 1)
	assert.Equal(t, "Basics", d.Checklist[0].RoundTitle)
	assert.Equal(t, []string{"a", "b"}, d.Checklist[0].Items)

	require.Len(t, d.Plan7Days, 1)
	assert.Equal(t, "Basics", d.Plan7Days[0].Focus)

	assert.Equal(t, []string{"q1", "q2"}, d.Questions)
	assert.Nil(t, d.BaseScore)
	require.NotNil(t, d.ReadinessScore)
	assert.Equal(t, 62, *d.ReadinessScore)
	assert.Equal(t, map[string]string{"React": "know", "Docker": ""}, d.SkillConfidenceMap)
}

func TestDraftFromRecord_PrefersPlan7Days(t *testing.T) {
	rec := decodeRecord(t, `{
		"plan7Days": [{"day": 2, "focus": "New"}],
		"plan": [{"day": 1, "title": "Old"}]
	}`)

	d := DraftFromRecord(rec)
	require.Len(t, d.Plan7Days, 1)
	assert.Equal(t, "New", d.Plan7Days[0].Focus)
}

func TestDraftFromRecord_Timestamps(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want time.Time
	}{
		{"iso millis", "2024-01-02T03:04:05.678Z", time.Date(2024, 1, 2, 3, 4, 5, 678000000, time.UTC)},
		{"rfc3339 offset", "2024-01-02T05:04:05+02:00", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"date only", "2024-01-02", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"epoch string", "1700000000000", time.UnixMilli(1700000000000).UTC()},
		{"garbage", "yesterday", time.Time{}},
		{"bool", true, time.Time{}},
		{"zero", float64(0), time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DraftFromRecord(map[string]interface{}{"createdAt": tt.in})
			assert.True(t, tt.want.Equal(d.CreatedAt), "got %v", d.CreatedAt)
		})
	}
}

func TestDraftFromRecord_EmptyRecord(t *testing.T) {
	e := Standardize(DraftFromRecord(map[string]interface{}{}), testNow)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, types.FallbackExtractedSkills(), e.ExtractedSkills)
}

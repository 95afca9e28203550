package entry

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/placement-readiness/internal/types"
)

// DraftFromRecord builds a draft from a decoded JSON object of unknown vintage.
// It never fails: fields of the wrong type are treated as absent.
func DraftFromRecord(rec map[string]interface{}) Draft {
	d := Draft{
		ID:                 scalarString(rec["id"]),
		CreatedAt:          timestamp(rec["createdAt"]),
		UpdatedAt:          timestamp(rec["updatedAt"]),
		Company:            str(rec["company"]),
		Role:               str(rec["role"]),
		JDText:             str(rec["jdText"]),
		ExtractedSkills:    skillsRecord(rec["extractedSkills"]),
		RoundMapping:       roundsRecord(rec["roundMapping"]),
		Checklist:          checklistRecord(rec["checklist"]),
		Questions:          strList(rec["questions"]),
		BaseScore:          number(rec["baseScore"]),
		ReadinessScore:     number(rec["readinessScore"]),
		SkillConfidenceMap: confidenceRecord(rec["skillConfidenceMap"]),
	}

	if plan, ok := rec["plan7Days"]; ok && isList(plan) {
		d.Plan7Days = planRecord(plan)
	} else {
		d.Plan7Days = planRecord(rec["plan"])
	}
	return d
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}

func scalarString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == 0 || math.IsNaN(t) || math.IsInf(t, 0) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	}
	return ""
}

func number(v interface{}) *int {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	n := int(math.Round(f))
	return &n
}

func integer(v interface{}) int {
	if n := number(v); n != nil {
		return *n
	}
	return 0
}

var timeLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.000Z", "2006-01-02"}

// timestamp accepts ISO strings and epoch milliseconds.
func timestamp(v interface{}) time.Time {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.UTC()
			}
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil && ms > 0 {
			return time.UnixMilli(ms).UTC()
		}
	default:
		if n := number(v); n != nil && *n > 0 {
			return time.UnixMilli(int64(*n)).UTC()
		}
	}
	return time.Time{}
}

func isList(v interface{}) bool {
	_, ok := v.([]interface{})
	return ok
}

func strList(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// skillsRecord accepts both category -> [skills] and category -> {label, skills}.
func skillsRecord(v interface{}) map[string][]string {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}
	out := make(map[string][]string, len(obj))
	for key, raw := range obj {
		switch t := raw.(type) {
		case []interface{}:
			out[key] = strList(t)
		case map[string]interface{}:
			out[key] = strList(t["skills"])
		}
	}
	return out
}

func objects(v interface{}) []map[string]interface{} {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]interface{}); ok {
			out = append(out, obj)
		}
	}
	return out
}

func firstString(obj map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s := str(obj[k]); s != "" {
			return s
		}
	}
	return ""
}

func roundsRecord(v interface{}) []types.Round {
	var out []types.Round
	for _, obj := range objects(v) {
		r := types.Round{
			Round:        integer(obj["round"]),
			RoundTitle:   firstString(obj, "name", "roundTitle"),
			Description:  str(obj["description"]),
			WhyItMatters: str(obj["whyItMatters"]),
			Duration:     str(obj["duration"]),
		}
		switch focus := obj["focus"].(type) {
		case string:
			r.FocusAreas = []string{focus}
		case []interface{}:
			r.FocusAreas = strList(focus)
		default:
			r.FocusAreas = strList(obj["focusAreas"])
		}
		out = append(out, r)
	}
	return out
}

func checklistRecord(v interface{}) []types.ChecklistRound {
	var out []types.ChecklistRound
	for _, obj := range objects(v) {
		out = append(out, types.ChecklistRound{
			Round:       integer(obj["round"]),
			RoundTitle:  firstString(obj, "title", "roundTitle"),
			Description: str(obj["description"]),
			Items:       strList(obj["items"]),
		})
	}
	return out
}

func planRecord(v interface{}) []types.PlanDay {
	var out []types.PlanDay
	for _, obj := range objects(v) {
		out = append(out, types.PlanDay{
			Day:   integer(obj["day"]),
			Focus: firstString(obj, "title", "focus"),
			Tasks: strList(obj["tasks"]),
		})
	}
	return out
}

func confidenceRecord(v interface{}) map[string]string {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}
	out := make(map[string]string, len(obj))
	for k, raw := range obj {
		out[k] = str(raw)
	}
	return out
}

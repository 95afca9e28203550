// Package schemas embeds the JSON Schema documents for persisted artifacts.
package schemas

import "embed"

// Schema file names.
const (
	AnalysisEntry = "analysis_entry.schema.json"
	TestChecklist = "test_checklist.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the raw content of an embedded schema.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// Names lists the embedded schema files.
func Names() []string {
	return []string{AnalysisEntry, TestChecklist}
}

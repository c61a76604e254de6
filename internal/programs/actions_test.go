package programs

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"courseminer/models"
	"courseminer/pkg/pipeline"
)

type fakeExtractor struct {
	reply    string
	err      error
	lastUser string
}

func (f *fakeExtractor) ExtractJSON(_ context.Context, _, user string, out any) error {
	f.lastUser = user
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.reply), out)
}

func writeInventory(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "programs.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadPrograms(t *testing.T) {
	path := writeInventory(t, `[
		{"program_name": "Data Science", "program_type": "Bachelor of Science"},
		{"program_name": "Art History", "program_type": "Bachelor of Arts"}
	]`)

	progs, err := ReadPrograms(path)
	if err != nil {
		t.Fatalf("ReadPrograms() error = %v", err)
	}
	if len(progs) != 2 || progs[0].ProgramName != "Data Science" {
		t.Errorf("progs = %+v", progs)
	}
}

func TestReadProgramsRejectsBadInput(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"invalid json", `{"program_name": "not an array"`},
		{"nameless entry", `[{"program_type": "Minor"}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ReadPrograms(writeInventory(t, tc.content)); err == nil {
				t.Error("ReadPrograms() = nil, want error")
			}
		})
	}
}

func TestProgramsProcessor(t *testing.T) {
	fake := &fakeExtractor{reply: `{
		"is_ai_or_ds_related": true,
		"confidence": "high",
		"reasoning": "Machine learning is named in the program title."
	}`}

	item := pipeline.Item[models.Program]{
		Key:     "Machine Learning",
		Payload: models.Program{ProgramName: "Machine Learning", ProgramType: "Master of Science"},
	}
	got, err := programsProcessor(fake)(context.Background(), item)
	if err != nil {
		t.Fatalf("processor error = %v", err)
	}
	if !got.IsAIOrDSRelated || got.Confidence != "high" || got.ProgramName != "Machine Learning" {
		t.Errorf("classified = %+v", got)
	}
	if !strings.Contains(fake.lastUser, "Machine Learning") {
		t.Errorf("prompt %q does not name the program", fake.lastUser)
	}
}

func TestProgramsProcessorUnknownType(t *testing.T) {
	fake := &fakeExtractor{reply: `{
		"is_ai_or_ds_related": false,
		"confidence": "low",
		"reasoning": "Nothing in the name suggests AI or data science."
	}`}

	item := pipeline.Item[models.Program]{
		Key:     "Art History",
		Payload: models.Program{ProgramName: "Art History"},
	}
	if _, err := programsProcessor(fake)(context.Background(), item); err != nil {
		t.Fatalf("processor error = %v", err)
	}
	if !strings.Contains(fake.lastUser, "not specified") {
		t.Errorf("prompt %q should flag the missing program type", fake.lastUser)
	}
}

func TestProgramsProcessorValidation(t *testing.T) {
	// A confidence outside high/medium/low must be rejected at the boundary.
	fake := &fakeExtractor{reply: `{
		"is_ai_or_ds_related": true,
		"confidence": "certain",
		"reasoning": "r"
	}`}

	item := pipeline.Item[models.Program]{
		Key:     "Statistics",
		Payload: models.Program{ProgramName: "Statistics"},
	}
	if _, err := programsProcessor(fake)(context.Background(), item); err == nil {
		t.Error("processor error = nil, want validation error for unknown confidence")
	}
}

func TestProgramsProcessorExtractorError(t *testing.T) {
	fake := &fakeExtractor{err: errors.New("rate limited")}
	item := pipeline.Item[models.Program]{
		Key:     "Statistics",
		Payload: models.Program{ProgramName: "Statistics"},
	}
	if _, err := programsProcessor(fake)(context.Background(), item); err == nil {
		t.Error("processor error = nil, want extractor error passed through")
	}
}

package extract

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnumerateDocs(t *testing.T) {
	root := t.TempDir()

	write := func(rel, content string) {
		t.Helper()
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	write("Spring 2024/intro.html", "<html><body>x</body></html>")
	write("Fall 2023/ml.pdf", "%PDF-1.4 not a real pdf")
	write("notes.txt", "already text, not a source document")
	write("README.md", "ignored")

	items, err := enumerateDocs(root)
	if err != nil {
		t.Fatalf("enumerateDocs() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2: %+v", len(items), items)
	}
	for _, it := range items {
		if strings.Contains(it.Key, "\\") {
			t.Errorf("key %q not slash-normalized", it.Key)
		}
	}
}

func TestExtractProcessorHTML(t *testing.T) {
	root := t.TempDir()
	outDir := t.TempDir()

	src := filepath.Join(root, "2024", "syllabus.html")
	if err := os.MkdirAll(filepath.Dir(src), 0755); err != nil {
		t.Fatal(err)
	}
	html := `<html><body><article><h1>CSC 438</h1>
		<p>This course covers the theory of computation, automata and formal languages in depth, with weekly problem sets.</p>
	</article></body></html>`
	if err := os.WriteFile(src, []byte(html), 0644); err != nil {
		t.Fatal(err)
	}

	items, err := enumerateDocs(root)
	if err != nil || len(items) != 1 {
		t.Fatalf("enumerateDocs() = %v items, err %v", len(items), err)
	}

	doc, err := extractProcessor(outDir)(context.Background(), items[0])
	if err != nil {
		t.Fatalf("processor error = %v", err)
	}

	wantOut := filepath.Join(outDir, "2024", "syllabus.html.txt")
	if doc.OutputPath != wantOut {
		t.Errorf("OutputPath = %q, want %q", doc.OutputPath, wantOut)
	}
	if doc.Format != "html" || doc.CharCount == 0 {
		t.Errorf("doc = %+v", doc)
	}

	text, err := os.ReadFile(wantOut)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if !strings.Contains(string(text), "theory of computation") {
		t.Errorf("artifact = %q, want extracted body text", text)
	}
}

// Same-stem documents in one directory must each get their own artifact.
func TestExtractProcessorSameStemNoCollision(t *testing.T) {
	root := t.TempDir()
	outDir := t.TempDir()

	page := func(body string) string {
		return `<html><body><article><h1>Course</h1><p>` + body +
			` This syllabus describes weekly topics, grading policy and required readings.</p></article></body></html>`
	}
	for name, body := range map[string]string{
		"a.html": "First rendition of the course overview.",
		"a.htm":  "Second rendition of the course overview.",
	} {
		if err := os.WriteFile(filepath.Join(root, name), []byte(page(body)), 0644); err != nil {
			t.Fatal(err)
		}
	}

	items, err := enumerateDocs(root)
	if err != nil || len(items) != 2 {
		t.Fatalf("enumerateDocs() = %v items, err %v", len(items), err)
	}

	proc := extractProcessor(outDir)
	seen := map[string]bool{}
	for _, it := range items {
		doc, err := proc(context.Background(), it)
		if err != nil {
			t.Fatalf("processor(%s) error = %v", it.Key, err)
		}
		if seen[doc.OutputPath] {
			t.Fatalf("artifact path %q produced twice", doc.OutputPath)
		}
		seen[doc.OutputPath] = true
	}

	for _, want := range []string{"a.html.txt", "a.htm.txt"} {
		if _, err := os.Stat(filepath.Join(outDir, want)); err != nil {
			t.Errorf("artifact %s missing: %v", want, err)
		}
	}
}

func TestExtractProcessorLegacyFormat(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "old.doc")
	if err := os.WriteFile(src, []byte{0xD0, 0xCF, 0x11, 0xE0}, 0644); err != nil {
		t.Fatal(err)
	}

	items, err := enumerateDocs(root)
	if err != nil || len(items) != 1 {
		t.Fatalf("enumerateDocs() = %v items, err %v", len(items), err)
	}

	if _, err := extractProcessor(t.TempDir())(context.Background(), items[0]); err == nil {
		t.Error("processor error = nil for legacy .doc, want conversion error")
	}
}

package crawl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"courseminer/pkg/fetcher"
	"courseminer/pkg/pipeline"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crawl.yaml")
	content := `profile_urls:
  - https://example.edu/people/lovelace
  - https://example.edu/people/chen
store: profiles.json
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if len(cfg.ProfileURLs) != 2 || cfg.Store != "profiles.json" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadConfigEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crawl.yaml")
	if err := os.WriteFile(path, []byte("store: x.json\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() error = nil for config without URLs, want error")
	}
}

func TestCrawlProcessor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/people/lovelace":
			w.Write([]byte(`<html><body>
				<h1 class="page-title">Dr. Ada Lovelace</h1>
				<div id="bio"><p>Pioneer of computing and analytical reasoning.</p></div>
			</body></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	proc := crawlProcessor(fetcher.New())

	profile, err := proc(context.Background(), pipeline.Item[string]{
		Key:     server.URL + "/people/lovelace",
		Payload: server.URL + "/people/lovelace",
	})
	if err != nil {
		t.Fatalf("processor error = %v", err)
	}
	if profile.Name != "Dr. Ada Lovelace" {
		t.Errorf("Name = %q", profile.Name)
	}

	if _, err := proc(context.Background(), pipeline.Item[string]{
		Key:     server.URL + "/missing",
		Payload: server.URL + "/missing",
	}); err == nil {
		t.Error("processor error = nil for 404, want error")
	}
}

func TestCrawlProcessorNamelessPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>Nothing useful here.</p></body></html>"))
	}))
	defer server.Close()

	proc := crawlProcessor(fetcher.New())
	if _, err := proc(context.Background(), pipeline.Item[string]{Key: server.URL, Payload: server.URL}); err == nil {
		t.Error("processor error = nil for page without a name, want error")
	}
}

package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pulselab/linkpulse/pkg/types"
)

func TestParseDate_Valid(t *testing.T) {
	date, err := parseDate("2026-08-30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if date != "2026-08-30" {
		t.Errorf("expected 2026-08-30, got %q", date)
	}
}

func TestParseDate_EmptyDefaultsToToday(t *testing.T) {
	date, err := parseDate("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if date != time.Now().UTC().Format("2006-01-02") {
		t.Errorf("expected today, got %q", date)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, bad := range []string{"30/08/2026", "2026-8-30", "yesterday"} {
		if _, err := parseDate(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestReadRawPosts_JSONArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "posts.json")
	data := []byte(`[{"id": 1, "text": "hello", "likes": "10"}, {"id": 2}]`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	raw, err := readRawPosts(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raw) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(raw))
	}
	if raw[0].ID != 1 || raw[0].Likes == nil || *raw[0].Likes != "10" {
		t.Errorf("first post not parsed: %+v", raw[0])
	}
}

func TestReadRawPosts_JSONL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "posts.jsonl")
	data := []byte(`{"id": 1, "text": "a"}` + "\n\n" + `{"id": 2, "text": "b"}` + "\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	raw, err := readRawPosts(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raw) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(raw))
	}
}

func TestReadRawPosts_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(path, []byte("  \n"), 0o644); err != nil {
		t.Fatal(err)
	}

	raw, err := readRawPosts(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw != nil {
		t.Errorf("expected nil, got %v", raw)
	}
}

func TestReadRawPosts_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{"id": `), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := readRawPosts(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestReadRawPosts_MissingFile(t *testing.T) {
	if _, err := readRawPosts("/nonexistent/posts.json"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFileSinkDir(t *testing.T) {
	cfg := &types.ProjectConfig{
		Reports: []types.ReportSinkConfig{
			{Type: types.SinkConsole},
			{Type: types.SinkFile, Dir: "./reports"},
		},
	}
	if dir := fileSinkDir(cfg); dir != "./reports" {
		t.Errorf("expected ./reports, got %q", dir)
	}

	cfg.Reports = cfg.Reports[:1]
	if dir := fileSinkDir(cfg); dir != "" {
		t.Errorf("expected empty, got %q", dir)
	}
}

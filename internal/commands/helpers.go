// Package commands implements the CLI subcommands for the linkpulse binary.
package commands

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pulselab/linkpulse/internal/config"
	"github.com/pulselab/linkpulse/internal/store"
	"github.com/pulselab/linkpulse/internal/store/postgres"
	"github.com/pulselab/linkpulse/pkg/types"
)

// openStore loads linkpulse.yaml from the working directory and connects
// to the configured Postgres database.
func openStore(ctx context.Context) (store.Store, *types.ProjectConfig, error) {
	cfg, err := config.Load(".")
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	dsn, err := config.ResolveDSN(ctx, cfg.Database, nil)
	if err != nil {
		return nil, nil, err
	}

	st, err := postgres.New(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	return st, cfg, nil
}

// fileSinkDir returns the directory of the first configured file report
// sink, or "" when none is configured.
func fileSinkDir(cfg *types.ProjectConfig) string {
	for _, sink := range cfg.Reports {
		if sink.Type == types.SinkFile {
			return sink.Dir
		}
	}
	return ""
}

// parseDate validates a YYYY-MM-DD argument. An empty argument means
// today (UTC).
func parseDate(arg string) (string, error) {
	if arg == "" {
		return time.Now().UTC().Format("2006-01-02"), nil
	}
	if _, err := time.Parse("2006-01-02", arg); err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", arg)
	}
	return arg, nil
}

// readRawPosts reads a scrape export: either a JSON array of posts or
// one JSON object per line.
func readRawPosts(path string) ([]store.RawPost, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var raw []store.RawPost
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return raw, nil
	}

	var raw []store.RawPost
	scanner := bufio.NewScanner(bytes.NewReader(trimmed))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		b := bytes.TrimSpace(scanner.Bytes())
		if len(b) == 0 {
			continue
		}
		var r store.RawPost
		if err := json.Unmarshal(b, &r); err != nil {
			return nil, fmt.Errorf("parsing %s line %d: %w", path, line, err)
		}
		raw = append(raw, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return raw, nil
}

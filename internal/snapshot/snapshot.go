// Package snapshot persists intermediate stage tables as JSON lines so a
// failed run can be inspected and the transform handoff is explicit.
package snapshot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Writer writes stage tables under a snapshot directory.
type Writer struct {
	dir string
}

// NewWriter creates a snapshot writer rooted at dir.
func NewWriter(dir string) (*Writer, error) {
	if dir == "" {
		return nil, fmt.Errorf("snapshot directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot dir: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// Path returns the file path a stage snapshot is written to.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.dir, name+".jsonl")
}

// Write marshals rows as JSON lines to {dir}/{name}.jsonl. The file is
// written to a temp path and renamed so readers never see a partial
// snapshot.
func Write[T any](w *Writer, name string, rows []T) error {
	tmp, err := os.CreateTemp(w.dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	bw := bufio.NewWriter(tmp)
	enc := json.NewEncoder(bw)
	for i := range rows {
		if err := enc.Encode(rows[i]); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("encoding snapshot row: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), w.Path(name)); err != nil {
		return fmt.Errorf("renaming snapshot: %w", err)
	}
	return nil
}

// Read loads a stage snapshot written by Write.
func Read[T any](w *Writer, name string) ([]T, error) {
	f, err := os.Open(w.Path(name))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var rows []T
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var row T
		if err := json.Unmarshal(line, &row); err != nil {
			return nil, fmt.Errorf("decoding snapshot row: %w", err)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// Package testutil provides shared test utilities for linkpulse.
package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/pulselab/linkpulse/internal/store"
	"github.com/pulselab/linkpulse/pkg/types"
)

// Compile-time interface satisfaction check.
var _ store.Store = (*MockStore)(nil)

// MockStore is an in-memory Store implementation for testing. Errors can
// be injected per method to exercise failure paths.
type MockStore struct {
	mu      sync.Mutex
	posts   map[int64]types.Post
	runLogs map[string]types.RunLogEntry

	FetchErr      error // returned by FetchPosts when set
	FetchFailures int   // when > 0, FetchErr only applies to the first N calls
	InsertErr     error // returned by InsertPosts when set
	UpsertErr     error // returned by UpsertRunLog when set

	fetchCalls int
}

// NewMockStore creates a new in-memory mock store.
func NewMockStore() *MockStore {
	return &MockStore{
		posts:   make(map[int64]types.Post),
		runLogs: make(map[string]types.RunLogEntry),
	}
}

func (m *MockStore) InsertPosts(_ context.Context, posts []types.Post) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertErr != nil {
		return 0, m.InsertErr
	}
	inserted := 0
	for _, p := range posts {
		if _, ok := m.posts[p.ID]; ok {
			continue
		}
		m.posts[p.ID] = p
		inserted++
	}
	return inserted, nil
}

func (m *MockStore) FetchPosts(_ context.Context) ([]types.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchCalls++
	if m.FetchErr != nil && (m.FetchFailures == 0 || m.fetchCalls <= m.FetchFailures) {
		return nil, m.FetchErr
	}
	posts := make([]types.Post, 0, len(m.posts))
	for _, p := range m.posts {
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

func (m *MockStore) UpsertRunLog(_ context.Context, entry types.RunLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertErr != nil {
		return m.UpsertErr
	}
	m.runLogs[entry.Date] = entry
	return nil
}

func (m *MockStore) GetRunLog(_ context.Context, date string) (types.RunLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.runLogs[date]
	if !ok {
		return types.RunLogEntry{}, store.ErrNotFound
	}
	return entry, nil
}

func (m *MockStore) ListRunLogs(_ context.Context, limit int) ([]types.RunLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 {
		limit = 20
	}
	entries := make([]types.RunLogEntry, 0, len(m.runLogs))
	for _, e := range m.runLogs {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (m *MockStore) Migrate(context.Context) error { return nil }
func (m *MockStore) Ping(context.Context) error    { return nil }
func (m *MockStore) Close()                        {}

// FetchCalls returns how many times FetchPosts has been called.
func (m *MockStore) FetchCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetchCalls
}

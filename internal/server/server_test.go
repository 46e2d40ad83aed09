package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pulselab/linkpulse/internal/testutil"
	"github.com/pulselab/linkpulse/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func setupTestServer(t *testing.T) (*httptest.Server, *testutil.MockStore, string) {
	t.Helper()
	return setupTestServerWithKey(t, "")
}

func setupTestServerWithKey(t *testing.T, apiKey string) (*httptest.Server, *testutil.MockStore, string) {
	t.Helper()
	st := testutil.NewMockStore()
	reportsDir := t.TempDir()
	srv := New(types.ServerConfig{Addr: ":0", APIKey: apiKey}, st, reportsDir)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, st, reportsDir
}

func writeReportFile(t *testing.T, dir, name string, content any) {
	t.Helper()
	data, err := json.Marshal(content)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), data, 0o644))
}

func TestHealthEndpoint(t *testing.T) {
	ts, _, _ := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestListReports(t *testing.T) {
	ts, _, dir := setupTestServer(t)
	writeReportFile(t, dir, types.ReportVolumeSummary, map[string]int{"total_posts": 10})

	resp, err := http.Get(ts.URL + "/api/reports")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reports []struct {
		Name      string `json:"name"`
		Available bool   `json:"available"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reports))
	require.Len(t, reports, len(types.ReportNames))

	byName := map[string]bool{}
	for _, r := range reports {
		byName[r.Name] = r.Available
	}
	assert.True(t, byName[types.ReportVolumeSummary])
	assert.False(t, byName[types.ReportHashtagImpact])
}

func TestGetReport(t *testing.T) {
	ts, _, dir := setupTestServer(t)
	writeReportFile(t, dir, types.ReportVolumeSummary, types.Report{
		Name: types.ReportVolumeSummary,
		Rows: types.VolumeSummary{TotalPosts: 42},
	})

	resp, err := http.Get(ts.URL + "/api/reports/" + types.ReportVolumeSummary)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rep types.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rep))
	assert.Equal(t, types.ReportVolumeSummary, rep.Name)
}

func TestGetReport_NotGenerated(t *testing.T) {
	ts, _, _ := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/api/reports/" + types.ReportVolumeSummary)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetReport_UnknownNameRejected(t *testing.T) {
	ts, _, dir := setupTestServer(t)
	// A stray file outside the report list must not be reachable.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "secrets.json"), []byte(`{}`), 0o644))

	for _, name := range []string{"secrets", "..%2Fsecrets", "nope"} {
		resp, err := http.Get(ts.URL + "/api/reports/" + name)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "name %s", name)
		_ = resp.Body.Close()
	}
}

func TestListRuns(t *testing.T) {
	ts, st, _ := setupTestServer(t)

	now := time.Now().UTC()
	for _, date := range []string{"2026-08-28", "2026-08-29", "2026-08-30"} {
		require.NoError(t, st.UpsertRunLog(context.Background(), types.RunLogEntry{
			Date: date, Status: types.RunCompleted, AttemptNumber: 1,
			RunID: "run-" + date, StartedAt: now, UpdatedAt: now,
		}))
	}

	resp, err := http.Get(ts.URL + "/api/runs?limit=2")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []types.RunLogEntry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "2026-08-30", entries[0].Date)
}

func TestListRuns_Empty(t *testing.T) {
	ts, _, _ := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/api/runs")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []types.RunLogEntry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	assert.Empty(t, entries)
}

func TestListRuns_BadLimit(t *testing.T) {
	ts, _, _ := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/api/runs?limit=zero")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetRun(t *testing.T) {
	ts, st, _ := setupTestServer(t)

	now := time.Now().UTC()
	require.NoError(t, st.UpsertRunLog(context.Background(), types.RunLogEntry{
		Date: "2026-08-30", Status: types.RunFailed, AttemptNumber: 2,
		RunID: "run-x", FailureMessage: "extract stage: connection refused",
		FailureCategory: types.FailureTransient,
		StartedAt:       now, UpdatedAt: now,
	}))

	resp, err := http.Get(ts.URL + "/api/runs/2026-08-30")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entry types.RunLogEntry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entry))
	assert.Equal(t, types.RunFailed, entry.Status)
	assert.Equal(t, 2, entry.AttemptNumber)
	assert.Equal(t, types.FailureTransient, entry.FailureCategory)
}

func TestGetRun_NotFound(t *testing.T) {
	ts, _, _ := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/api/runs/1999-01-01")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPIKey_Required(t *testing.T) {
	ts, _, _ := setupTestServerWithKey(t, "sekrit")

	resp, err := http.Get(ts.URL + "/api/runs")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/runs", nil)
	require.NoError(t, err)
	req.Header.Set("X-API-Key", "sekrit")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPIKey_HealthExempt(t *testing.T) {
	ts, _, _ := setupTestServerWithKey(t, "sekrit")

	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequestID_Propagated(t *testing.T) {
	ts, _, _ := setupTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "req-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, "req-123", resp.Header.Get("X-Request-ID"))
}

func TestShutdown(t *testing.T) {
	st := testutil.NewMockStore()
	srv := New(types.ServerConfig{Addr: "127.0.0.1:0"}, st, t.TempDir())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, srv.Stop(ctx))
}

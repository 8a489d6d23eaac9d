package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/migrate"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/platform/sqlite"
	"github.com/stretchr/testify/require"
)

// envelope mirrors the response body for assertions.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

type taskJSON struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Priority *int32 `json:"priority"`
}

func testConfig(databaseURL string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Address:                "127.0.0.1:0",
			LogLevel:               "error",
			ShutdownTimeoutSeconds: 5,
		},
		Database: config.DatabaseConfig{
			URL:                   databaseURL,
			MaxConns:              4,
			ConnectTimeoutSeconds: 5,
		},
	}
}

// newTestApp builds the full application over a migrated in-memory SQLite database.
func newTestApp(t *testing.T) (*application, *httptest.Server) {
	t.Helper()
	ctx := context.Background()

	cfg := testConfig("sqlite://:memory:")
	log := logger.New(io.Discard, cfg.Server.LogLevel)

	db, b, err := setupAppDatabase(ctx, cfg.Database, log)
	require.NoError(t, err)
	require.NoError(t, migrate.Up(ctx, db, migrate.SQLite, log))

	app := newApplication(cfg, log, db, newTaskStore(db, b, log))
	require.IsType(t, &sqlite.TaskStore{}, app.taskStore)

	server := httptest.NewServer(app.setupRouter())
	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return app, server
}

func doRequest(t *testing.T, server *httptest.Server, method, path, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, respBody
}

func decodeEnvelope(t *testing.T, body []byte) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), "body: %s", body)
	return env
}

func createTask(t *testing.T, server *httptest.Server, body string) int64 {
	t.Helper()

	resp, respBody := doRequest(t, server, http.MethodPost, "/api/tasks", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", respBody)

	env := decodeEnvelope(t, respBody)
	require.True(t, env.Success)

	var data struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.ID
}

func listTasks(t *testing.T, server *httptest.Server, path string) []taskJSON {
	t.Helper()

	resp, respBody := doRequest(t, server, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %s", respBody)

	env := decodeEnvelope(t, respBody)
	require.True(t, env.Success)

	var tasks []taskJSON
	require.NoError(t, json.Unmarshal(env.Data, &tasks))
	require.NotNil(t, tasks, "data must be an array, never null")
	return tasks
}

package doctor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliochat/folio/internal/backend"
	"github.com/foliochat/folio/internal/core/config"
)

type pingFunc func(ctx context.Context) (int, error)

func (f pingFunc) Ping(ctx context.Context) (int, error) { return f(ctx) }

func statuses(r Result) []Status {
	out := make([]Status, 0, len(r.Items))
	for _, item := range r.Items {
		out = append(out, item.Status)
	}
	return out
}

func TestBackendCheck(t *testing.T) {
	ok := pingFunc(func(context.Context) (int, error) { return http.StatusNotFound, nil })

	tests := []struct {
		name    string
		baseURL string
		pinger  Pinger
		want    []Status
	}{
		{name: "missing base url", baseURL: "", pinger: ok, want: []Status{StatusFail}},
		{name: "invalid base url", baseURL: "ftp://example.com", pinger: ok, want: []Status{StatusFail}},
		{name: "reachable", baseURL: "http://localhost:8000", pinger: ok, want: []Status{StatusPass, StatusPass}},
		{
			name:    "server error",
			baseURL: "http://localhost:8000",
			pinger:  pingFunc(func(context.Context) (int, error) { return http.StatusBadGateway, nil }),
			want:    []Status{StatusPass, StatusWarn},
		},
		{
			name:    "unreachable",
			baseURL: "http://localhost:8000",
			pinger:  pingFunc(func(context.Context) (int, error) { return 0, errors.New("connection refused") }),
			want:    []Status{StatusPass, StatusFail},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewBackendCheck(tt.baseURL, tt.pinger).Run(context.Background())
			assert.Equal(t, "Backend", result.Name)
			assert.Equal(t, tt.want, statuses(result))
		})
	}
}

func TestBackendCheck_LiveServer(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	client := backend.New(srv.URL)
	results := RunAll(context.Background(), []Check{NewBackendCheck(client.BaseURL(), client)})

	require.Len(t, results, 1)
	assert.True(t, Healthy(results))
	assert.Equal(t, "pass", results[0].Items[1].StatusStr)
	assert.Equal(t, "HTTP 200", results[0].Items[1].Detail)
}

func TestConfigCheck(t *testing.T) {
	t.Run("nil config fails", func(t *testing.T) {
		result := NewConfigCheck(nil, "").Run(context.Background())
		assert.Equal(t, []Status{StatusFail}, statuses(result))
	})

	t.Run("missing file warns", func(t *testing.T) {
		cfg := config.DefaultConfig()
		path := filepath.Join(t.TempDir(), "config.yaml")

		result := NewConfigCheck(&cfg, path).Run(context.Background())
		assert.Equal(t, []Status{StatusWarn, StatusPass}, statuses(result))
	})

	t.Run("invalid values are listed per field", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("base_url: x\n"), 0o600))

		cfg := config.DefaultConfig()
		cfg.BaseURL = "not a url"
		cfg.Chat.Timeout = -1
		cfg.Render.WordWrap = 5

		result := NewConfigCheck(&cfg, path).Run(context.Background())
		require.Len(t, result.Items, 4)
		assert.Equal(t, StatusPass, result.Items[0].Status)
		assert.Equal(t, "base_url", result.Items[1].Label)
		assert.Equal(t, "chat.timeout", result.Items[2].Label)
		assert.Equal(t, "render.word_wrap", result.Items[3].Label)
	})
}

func TestSummary(t *testing.T) {
	results := []Result{
		{Items: []CheckItem{{Status: StatusPass}, {Status: StatusWarn}}},
		{Items: []CheckItem{{Status: StatusFail}, {Status: StatusPass}}},
	}

	passed, warned, failed := Summary(results)
	assert.Equal(t, 2, passed)
	assert.Equal(t, 1, warned)
	assert.Equal(t, 1, failed)
	assert.False(t, Healthy(results))
}

package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
)

const fantasySchema = "name: Fantasy\nslots:\n  - id: hair\n    options: [red, blue]\n"

func fileJSON(path, content string) map[string]any {
	return map[string]any{
		"type":     "file",
		"name":     path,
		"path":     path,
		"encoding": "base64",
		"size":     len(content),
		"content":  base64.StdEncoding.EncodeToString([]byte(content)),
	}
}

func newTestFetcher(t *testing.T, handler http.Handler) *Fetcher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	f, err := NewFetcher(context.Background(), Options{
		BaseURL:           srv.URL,
		HTTPClient:        srv.Client(),
		RequestsPerSecond: 1000,
	})
	require.NoError(t, err)
	return f
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestParseRef(t *testing.T) {
	tests := []struct {
		in   string
		want Ref
	}{
		{"owner/repo", Ref{Owner: "owner", Repo: "repo"}},
		{"owner/repo@main", Ref{Owner: "owner", Repo: "repo", Ref: "main"}},
		{"owner/repo/packs/fantasy.yaml", Ref{Owner: "owner", Repo: "repo", Path: "packs/fantasy.yaml"}},
		{"owner/repo/packs/fantasy/@v1.2", Ref{Owner: "owner", Repo: "repo", Path: "packs/fantasy", Ref: "v1.2"}},
		{"https://github.com/owner/repo/x.json", Ref{Owner: "owner", Repo: "repo", Path: "x.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRef(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRef_Invalid(t *testing.T) {
	for _, in := range []string{"", "owner", "/repo", "owner/repo@"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseRef(in)
			assert.ErrorIs(t, err, ErrInvalidRef)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRef_String(t *testing.T) {
	r := Ref{Owner: "o", Repo: "r", Path: "p/schema.json", Ref: "main"}
	assert.Equal(t, "o/r/p/schema.json@main", r.String())
}

func TestFetch_File(t *testing.T) {
	var gotRef string
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/repo/contents/packs/fantasy.yaml", func(w http.ResponseWriter, r *http.Request) {
		gotRef = r.URL.Query().Get("ref")
		w.Header().Set("X-RateLimit-Remaining", "41")
		w.Header().Set("X-RateLimit-Limit", "60")
		writeJSON(w, fileJSON("packs/fantasy.yaml", fantasySchema))
	})
	f := newTestFetcher(t, mux)

	data, err := f.Fetch(context.Background(), "owner/repo/packs/fantasy.yaml@main")
	require.NoError(t, err)

	assert.Equal(t, fantasySchema, string(data))
	assert.Equal(t, "main", gotRef)
	assert.Equal(t, 41, f.RateLimiter().Remaining())
	assert.Equal(t, 60, f.RateLimiter().Limit())
}

func TestFetch_DirectoryPicksSchemaFile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/repo/contents/packs/fantasy", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, []map[string]any{
			{"type": "file", "name": "README.md", "path": "packs/fantasy/README.md"},
			{"type": "file", "name": "pack.json", "path": "packs/fantasy/pack.json"},
			{"type": "file", "name": "schema.yaml", "path": "packs/fantasy/schema.yaml"},
			{"type": "dir", "name": "wildcards", "path": "packs/fantasy/wildcards"},
		})
	})
	mux.HandleFunc("/repos/owner/repo/contents/packs/fantasy/schema.yaml", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, fileJSON("packs/fantasy/schema.yaml", fantasySchema))
	})
	f := newTestFetcher(t, mux)

	data, err := f.Fetch(context.Background(), "owner/repo/packs/fantasy")
	require.NoError(t, err)
	assert.Equal(t, fantasySchema, string(data))
}

func TestFetch_DirectoryWithoutSchema(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/repo/contents/docs", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, []map[string]any{{"type": "file", "name": "README.md", "path": "docs/README.md"}})
	})
	f := newTestFetcher(t, mux)

	_, err := f.Fetch(context.Background(), "owner/repo/docs")
	assert.ErrorIs(t, err, ErrNoSchema)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFetch_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/repo/contents/missing.json", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		writeJSON(w, map[string]string{"message": "Not Found"})
	})
	f := newTestFetcher(t, mux)

	_, err := f.Fetch(context.Background(), "owner/repo/missing.json")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsUnauthorized(err))
}

func TestFetch_RateLimited(t *testing.T) {
	reset := time.Now().Add(time.Hour).Unix()
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/repo/contents/schema.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-RateLimit-Limit", "60")
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset, 10))
		w.WriteHeader(http.StatusForbidden)
		writeJSON(w, map[string]string{"message": "API rate limit exceeded"})
	})
	f := newTestFetcher(t, mux)

	_, err := f.Fetch(context.Background(), "owner/repo/schema.json")
	require.Error(t, err)

	assert.True(t, IsRateLimited(err))
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Equal(t, reset, f.RateLimiter().ResetTime().Unix())
}

func TestFetch_InvalidRef(t *testing.T) {
	f := newTestFetcher(t, http.NewServeMux())

	_, err := f.Fetch(context.Background(), "justowner")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFetcher_Scheme(t *testing.T) {
	f, err := NewFetcher(context.Background(), Options{Token: "t"})
	require.NoError(t, err)
	assert.Equal(t, "github", f.Scheme())
	assert.Equal(t, AuthenticatedLimit, f.RateLimiter().Limit())

	anon, err := NewFetcher(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, AnonymousLimit, anon.RateLimiter().Limit())
}

func TestRateLimiter_WaitHonoursContext(t *testing.T) {
	r := NewRateLimiter(AnonymousLimit, 1000)
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set("X-RateLimit-Remaining", "0")
	resp.Header.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10))
	r.UpdateFromResponse(resp)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, r.Wait(ctx), context.DeadlineExceeded)
}

func TestRateLimiter_UpdateIgnoresMissingHeaders(t *testing.T) {
	r := NewRateLimiter(AuthenticatedLimit, 1000)
	r.UpdateFromResponse(&http.Response{Header: http.Header{}})
	r.UpdateFromResponse(nil)

	assert.Equal(t, AuthenticatedLimit, r.Remaining())
	assert.True(t, r.ResetTime().IsZero())
}

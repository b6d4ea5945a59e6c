package names

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func geminiServer(t *testing.T, status int, text string, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "key-123", r.Header.Get("x-goog-api-key"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		var req geminiRequest
		assert.NoError(t, json.Unmarshal(body, &req))
		if assert.Len(t, req.Contents, 1) && assert.NotEmpty(t, req.Contents[0].Parts) {
			assert.Contains(t, req.Contents[0].Parts[0].Text, "Thai full names")
		}
		assert.Equal(t, "application/json", req.GenerationConfig["responseMimeType"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{"parts": []any{map[string]any{"text": text}}},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFallback(t *testing.T) {
	assert.Len(t, Fallback{}.Suggest(context.Background(), 3), 5)
	assert.Empty(t, Fallback{}.Suggest(context.Background(), 0))
}

func TestNewSelectsByConfig(t *testing.T) {
	assert.IsType(t, Fallback{}, New(Config{}))
	assert.IsType(t, &Gemini{}, New(Config{APIKey: "k"}))
}

func TestGeminiSuggest(t *testing.T) {
	srv := geminiServer(t, http.StatusOK, `{"names":["สมปอง ดีใจ"," ","อารีย์ สายใจ "]}`, nil)
	g := NewGeminiWithURL(srv.URL, "key-123", "test-model")

	got := g.Suggest(context.Background(), 2)
	assert.Equal(t, []string{"สมปอง ดีใจ", "อารีย์ สายใจ"}, got)
}

func TestGeminiErrorsYieldEmptyList(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		srv := geminiServer(t, http.StatusInternalServerError, `{}`, nil)
		got := NewGeminiWithURL(srv.URL, "key-123", "test-model").Suggest(context.Background(), 2)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("malformed text", func(t *testing.T) {
		srv := geminiServer(t, http.StatusOK, `not json`, nil)
		got := NewGeminiWithURL(srv.URL, "key-123", "test-model").Suggest(context.Background(), 2)
		assert.Empty(t, got)
	})

	t.Run("zero count skips the call", func(t *testing.T) {
		var calls int32
		srv := geminiServer(t, http.StatusOK, `{"names":["x"]}`, &calls)
		got := NewGeminiWithURL(srv.URL, "key-123", "test-model").Suggest(context.Background(), 0)
		assert.Empty(t, got)
		assert.Zero(t, atomic.LoadInt32(&calls))
	})
}

type memCache struct {
	data    map[string][]byte
	ttl     time.Duration
	failGet bool
}

func (m *memCache) Get(_ context.Context, key string, dest any) (bool, error) {
	if m.failGet {
		return false, errors.New("down")
	}
	b, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (m *memCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = b
	m.ttl = ttl
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestCachedServesRepeatCounts(t *testing.T) {
	var calls int32
	srv := geminiServer(t, http.StatusOK, `{"names":["ก ข","ค ง"]}`, &calls)
	cache := &memCache{data: map[string][]byte{}}
	s := NewCached(NewGeminiWithURL(srv.URL, "key-123", "test-model"), cache, 10*time.Minute)

	first := s.Suggest(context.Background(), 2)
	second := s.Suggest(context.Background(), 2)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, 10*time.Minute, cache.ttl)

	cache.failGet = true
	assert.Equal(t, first, s.Suggest(context.Background(), 2))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCachedDoesNotStoreEmpty(t *testing.T) {
	srv := geminiServer(t, http.StatusBadGateway, `{}`, nil)
	cache := &memCache{data: map[string][]byte{}}
	s := NewCached(NewGeminiWithURL(srv.URL, "key-123", "test-model"), cache, time.Minute)

	assert.Empty(t, s.Suggest(context.Background(), 3))
	assert.Empty(t, cache.data)
}

func TestCachedRefreshReplacesEntry(t *testing.T) {
	var calls int32
	srv := geminiServer(t, http.StatusOK, `{"names":["ก ข","ค ง"]}`, &calls)
	cache := &memCache{data: map[string][]byte{"2": []byte(`["old one","old two"]`)}}
	s := NewCached(NewGeminiWithURL(srv.URL, "key-123", "test-model"), cache, time.Minute)

	assert.Equal(t, []string{"old one", "old two"}, s.Suggest(context.Background(), 2))
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))

	assert.Equal(t, []string{"ก ข", "ค ง"}, s.Refresh(context.Background(), 2))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.JSONEq(t, `["ก ข","ค ง"]`, string(cache.data["2"]))

	// Later reads come from the refreshed entry.
	assert.Equal(t, []string{"ก ข", "ค ง"}, s.Suggest(context.Background(), 2))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

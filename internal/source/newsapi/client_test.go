package newsapi

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testClient(baseURL string) *Client {
	return New(Config{
		BaseURL:        baseURL,
		PageSize:       100,
		Timeout:        5 * time.Second,
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	}, testLogger())
}

func TestTopHeadlines_Success(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"totalResults": 1,
			"articles": [{
				"source": {"id": "bbc-news", "name": "BBC News"},
				"title": "Headline",
				"url": "https://example.com/story",
				"publishedAt": "2025-06-01T12:30:00Z"
			}]
		}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL)

	query := url.Values{}
	query.Set("country", "us")
	query.Set("category", "general")

	records, err := client.TopHeadlines(context.Background(), query, "secret-key")
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "Headline", records[0].Title)
	assert.Equal(t, "secret-key", gotQuery.Get("apiKey"))
	assert.Equal(t, "100", gotQuery.Get("pageSize"))
	assert.Equal(t, "us", gotQuery.Get("country"))
}

func TestTopHeadlines_ProviderErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status": "error", "code": "apiKeyInvalid", "message": "Your API key is invalid"}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL)

	_, err := client.TopHeadlines(context.Background(), url.Values{}, "bad-key")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "apiKeyInvalid", statusErr.Code)
	assert.Equal(t, "Your API key is invalid", statusErr.Message)
	assert.Equal(t, int32(1), calls.Load(), "provider rejections must not be retried")
}

func TestTopHeadlines_TransportFailureRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream exploded"))
			return
		}
		_, _ = w.Write([]byte(`{"status": "ok", "articles": []}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL)

	records, err := client.TopHeadlines(context.Background(), url.Values{}, "key")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, int32(3), calls.Load())
}

func TestTopHeadlines_RetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	client := testClient(srv.URL)

	_, err := client.TopHeadlines(context.Background(), url.Values{}, "key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, int32(3), calls.Load())
}

func TestTopHeadlines_ContextCancelledDuringBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := New(Config{
		BaseURL:        srv.URL,
		PageSize:       100,
		Timeout:        5 * time.Second,
		MaxAttempts:    3,
		InitialBackoff: time.Minute,
		MaxBackoff:     time.Minute,
	}, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.TopHeadlines(ctx, url.Values{}, "key")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCalculateBackoff_DoublesAndCaps(t *testing.T) {
	client := New(Config{
		InitialBackoff: time.Second,
		MaxBackoff:     5 * time.Second,
	}, testLogger())

	assert.Equal(t, time.Second, client.calculateBackoff(1))
	assert.Equal(t, 2*time.Second, client.calculateBackoff(2))
	assert.Equal(t, 4*time.Second, client.calculateBackoff(3))
	assert.Equal(t, 5*time.Second, client.calculateBackoff(4))
}

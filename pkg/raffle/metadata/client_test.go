package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/mad-raffle/pkg/rate"
)

func TestClient_Fetch(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		switch r.URL.Path {
		case "/skull.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name":"Mad Skull #1","image":"https://example.com/1.png","symbol":"MAD"}`))
		case "/broken.json":
			_, _ = w.Write([]byte(`not json`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(WithRateLimiter(&rate.NoLimiter{}))
	ctx := context.Background()

	document, err := client.Fetch(ctx, server.URL+"/skull.json")
	require.NoError(t, err)
	assert.Equal(t, "Mad Skull #1", document.Name)
	assert.Equal(t, "https://example.com/1.png", document.Image)
	assert.Empty(t, document.Uri)

	// Served from cache
	_, err = client.Fetch(ctx, server.URL+"/skull.json")
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&requests))

	_, err = client.Fetch(ctx, server.URL+"/missing.json")
	assert.Error(t, err)

	_, err = client.Fetch(ctx, server.URL+"/broken.json")
	assert.Error(t, err)

	// Failures are not cached
	_, err = client.Fetch(ctx, server.URL+"/missing.json")
	assert.Error(t, err)
	assert.EqualValues(t, 4, atomic.LoadInt32(&requests))
}

func TestClient_FetchWithoutCache(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		_, _ = w.Write([]byte(`{"name":"n","image":"i"}`))
	}))
	defer server.Close()

	client := NewClient(WithCacheBudget(0), WithRateLimiter(&rate.NoLimiter{}))
	for i := 0; i < 3; i++ {
		_, err := client.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 3, atomic.LoadInt32(&requests))
}

func TestClient_InvalidUri(t *testing.T) {
	client := NewClient()
	for _, uri := range []string{"", "ipfs://abc", "not a url", "https://"} {
		_, err := client.Fetch(context.Background(), uri)
		assert.Equal(t, ErrInvalidUri, err, uri)
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewClient().Fetch(ctx, server.URL)
	assert.Error(t, err)
}

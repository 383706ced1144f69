package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/reviewhub/reviews-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentimentClientReturnsClassifierResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"label":"positive","score":0.92}`))
	}))
	defer srv.Close()

	client := NewSentimentClient(srv.URL, "", time.Second)
	result := client.Analyze(context.Background(), "Great")

	assert.Equal(t, models.SentimentPositive, result.Label)
	require.NotNil(t, result.Score)
	assert.Equal(t, 0.92, *result.Score)
}

func TestSentimentClientDegradesOnTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"label":"positive","score":0.9}`))
	}))
	defer srv.Close()

	client := NewSentimentClient(srv.URL, "", 20*time.Millisecond)
	result := client.Analyze(context.Background(), "Great")

	assert.Equal(t, models.SentimentUnknown, result.Label)
	assert.Nil(t, result.Score)
}

func TestSentimentClientDegradesOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewSentimentClient(srv.URL, "", time.Second)
	result := client.Analyze(context.Background(), "Great")

	assert.Equal(t, models.SentimentUnknown, result.Label)
}

func TestSentimentClientDegradesOnMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	client := NewSentimentClient(srv.URL, "", time.Second)
	result := client.Analyze(context.Background(), "Great")

	assert.Equal(t, models.SentimentUnknown, result.Label)
}

func TestSentimentClientDegradesOnUnknownLabel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"label":"ecstatic","score":1.5}`))
	}))
	defer srv.Close()

	client := NewSentimentClient(srv.URL, "", time.Second)
	result := client.Analyze(context.Background(), "Great")

	assert.Equal(t, models.SentimentUnknown, result.Label)
	assert.Nil(t, result.Score)
}

func TestSentimentClientDegradesWhenUnreachable(t *testing.T) {
	client := NewSentimentClient("http://127.0.0.1:1", "", 100*time.Millisecond)
	result := client.Analyze(context.Background(), "Great")

	assert.Equal(t, models.SentimentUnknown, result.Label)
}

func TestSentimentClientSendsInternalKey(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Internal-API-Key")
		w.Write([]byte(`{"label":"neutral","score":0.5}`))
	}))
	defer srv.Close()

	client := NewSentimentClient(srv.URL, "sekrit", time.Second)
	client.Analyze(context.Background(), "Great")

	assert.Equal(t, "sekrit", gotKey)
}

package source_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/uvify/uv-monitor/internal/source"
	"github.com/uvify/uv-monitor/internal/uv"
)

func newTestClient(handler http.Handler) (*source.Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := source.NewClient(&http.Client{Timeout: 2 * time.Second}, srv.URL)
	return client, srv
}

func TestFetchHistory(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/history", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"date":"2024-01-01","time":"10:00","uvi":3.2},
			{"date":"2024-01-01","time":"10:30","uvi":"4.1"},
			{"date":"2024-01-01","time":"11:00","uvi":"garbage"}
		]`))
	}))
	defer srv.Close()

	readings, err := client.FetchHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, readings, 3)
	require.Equal(t, uv.UVI(3.2), readings[0].UVI)
	require.Equal(t, uv.UVI(4.1), readings[1].UVI)
	require.Equal(t, uv.UVI(0), readings[2].UVI)
}

func TestFetchHistoryTransportError(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := client.FetchHistory(context.Background())
	require.ErrorIs(t, err, source.ErrTransport)
}

func TestFetchHistoryMalformedPayload(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"this is": "not a list"`))
	}))
	defer srv.Close()

	_, err := client.FetchHistory(context.Background())
	require.ErrorIs(t, err, source.ErrMalformedPayload)
	require.NotErrorIs(t, err, source.ErrTransport)
}

func TestFetchLatest(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/latest", r.URL.Path)
		w.Write([]byte(`{"date":"2024-01-01","time":"12:00:00","uvi":6.5}`))
	}))
	defer srv.Close()

	reading, ok, err := client.FetchLatest(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uv.UVI(6.5), reading.UVI)
	require.Equal(t, "2024-01-01", reading.Date)
}

func TestFetchLatestNoDataSentinel(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"No data yet"}`))
	}))
	defer srv.Close()

	// The sentinel is a legitimate empty state, not an error.
	_, ok, err := client.FetchLatest(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFetchLatestMissingFields(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"uvi":6.5}`))
	}))
	defer srv.Close()

	_, _, err := client.FetchLatest(context.Background())
	require.ErrorIs(t, err, source.ErrMalformedPayload)
}

func TestLogin(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"success":true,"user":{"user_id":7,"email":"sunny@example.com"}}`))
	}))
	defer srv.Close()

	result, err := client.Login(context.Background(), "sunny@example.com", "hunter2")
	require.NoError(t, err)
	require.True(t, result.Success)
	require.NotNil(t, result.User)
	require.Equal(t, "sunny@example.com", result.User.Email)
}

func TestLoginRejectedIsNotAnError(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
	}))
	defer srv.Close()

	result, err := client.Login(context.Background(), "sunny@example.com", "wrong")
	require.NoError(t, err)
	require.False(t, result.Success)
	require.Equal(t, "Invalid credentials", result.Message)
}

func TestSuggest(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/gemini", r.URL.Path)
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  Wear a hat.  "}]}}]}`))
	}))
	defer srv.Close()

	text, err := client.Suggest(context.Background(), 8.13)
	require.NoError(t, err)
	require.Equal(t, "Wear a hat.", text)
}

func TestSuggestEmptyResponse(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	_, err := client.Suggest(context.Background(), 1.0)
	require.ErrorIs(t, err, source.ErrMalformedPayload)
}

func TestUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening any more

	client := source.NewClient(&http.Client{Timeout: time.Second}, srv.URL)
	_, err := client.FetchHistory(context.Background())
	require.ErrorIs(t, err, source.ErrTransport)
}

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() RetryConfig {
	return RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond}
}

func TestWithRetryTransientThenSuccess(t *testing.T) {
	var calls int32
	err := withRetry(context.Background(), fastRetry(), func() error {
		if atomic.AddInt32(&calls, 1) <= 2 {
			return &APIError{StatusCode: http.StatusInternalServerError, Message: "erro interno"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, int32(3), calls, "duas novas tentativas após a primeira falha")
}

func TestWithRetryClientErrorFailsImmediately(t *testing.T) {
	var calls int32
	notFound := &APIError{StatusCode: http.StatusNotFound, Message: "não encontrado"}

	err := withRetry(context.Background(), fastRetry(), func() error {
		atomic.AddInt32(&calls, 1)
		return notFound
	})

	assert.Equal(t, int32(1), calls, "erro de cliente não é transitório")
	assert.NotErrorIs(t, err, ErrRetriesExhausted)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestWithRetryExhaustion(t *testing.T) {
	var calls int32
	err := withRetry(context.Background(), fastRetry(), func() error {
		atomic.AddInt32(&calls, 1)
		return &APIError{StatusCode: http.StatusBadGateway, Message: "gateway"}
	})

	assert.Equal(t, int32(3), calls)
	require.ErrorIs(t, err, ErrRetriesExhausted)

	// A última causa continua inspecionável através do embrulho
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestWithRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := withRetry(ctx, RetryConfig{MaxRetries: 3, BaseDelay: time.Minute}, func() error {
		return &APIError{StatusCode: http.StatusInternalServerError}
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "erro de servidor", err: &APIError{StatusCode: 500}, expected: true},
		{name: "gateway indisponível", err: &APIError{StatusCode: 503}, expected: true},
		{name: "erro de cliente", err: &APIError{StatusCode: 404}, expected: false},
		{name: "conflito", err: &APIError{StatusCode: 409}, expected: false},
		{name: "falha sem status HTTP", err: errors.New("connection refused"), expected: false},
		{name: "sessão expirada", err: ErrSessionExpired, expected: false},
		{name: "sem sessão", err: ErrNoSession, expected: false},
		{name: "contexto cancelado", err: context.Canceled, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, retryable(tt.err))
		})
	}
}

func TestGetRetriesAgainstServer(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "prod-1", "name": "Café Torrado", "status": "ACTIVO"}`))
	}))
	defer server.Close()

	c := New(server.URL,
		WithRetryConfig(fastRetry()),
		WithSession(&Session{AccessToken: "token"}),
	)

	p, err := c.GetProduct(context.Background(), "prod-1")

	require.NoError(t, err)
	assert.Equal(t, int32(3), hits)
	assert.Equal(t, "Café Torrado", p.Name)
}

func TestGetNotFoundDoesNotRetry(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code": 404, "message": "Produto não encontrado"}`))
	}))
	defer server.Close()

	c := New(server.URL,
		WithRetryConfig(fastRetry()),
		WithSession(&Session{AccessToken: "token"}),
	)

	_, err := c.GetProduct(context.Background(), "prod-1")

	assert.Equal(t, int32(1), hits)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRetriesExhausted)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Produto não encontrado", apiErr.Message)
}

func TestWithRetryTransportFailureFailsImmediately(t *testing.T) {
	var calls int32
	transportErr := errors.New("connection reset by peer")

	err := withRetry(context.Background(), fastRetry(), func() error {
		atomic.AddInt32(&calls, 1)
		return transportErr
	})

	assert.Equal(t, int32(1), calls, "falha sem status HTTP não é repetida")
	assert.ErrorIs(t, err, transportErr)
	assert.NotErrorIs(t, err, ErrRetriesExhausted)
}

func TestGetConnectionDropFailsImmediately(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		// Derruba a conexão sem escrever resposta alguma
		hj, ok := w.(http.Hijacker)
		require.True(t, ok)
		conn, _, err := hj.Hijack()
		require.NoError(t, err)
		conn.Close()
	}))
	defer server.Close()

	c := New(server.URL,
		WithRetryConfig(fastRetry()),
		WithSession(&Session{AccessToken: "token"}),
	)

	_, err := c.GetProduct(context.Background(), "prod-1")

	require.Error(t, err)
	assert.Equal(t, int32(1), hits, "uma única tentativa quando não há status HTTP")
	assert.NotErrorIs(t, err, ErrRetriesExhausted)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "falha de transporte não carrega status HTTP")
}

func TestGetExhaustsAgainstServer(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := New(server.URL,
		WithRetryConfig(fastRetry()),
		WithSession(&Session{AccessToken: "token"}),
	)

	_, err := c.GetProduct(context.Background(), "prod-1")

	assert.Equal(t, int32(3), hits)
	assert.ErrorIs(t, err, ErrRetriesExhausted)
}

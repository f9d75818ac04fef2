package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ErrRetriesExhausted indica que todas as tentativas falharam com erros
// transitórios. É distinto do erro de uma falha definitiva.
var ErrRetriesExhausted = errors.New("tentativas esgotadas")

// RetryConfig controla o comportamento das novas tentativas
type RetryConfig struct {
	// MaxRetries é o número de novas tentativas após a primeira chamada
	MaxRetries int
	// BaseDelay é o intervalo antes da primeira nova tentativa. Os
	// intervalos seguintes dobram a cada tentativa, sem aleatoriedade.
	BaseDelay time.Duration
}

// DefaultRetryConfig retorna a configuração padrão de novas tentativas
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  500 * time.Millisecond,
	}
}

// retryable verifica se o erro justifica uma nova tentativa. Apenas erros de
// servidor (5xx) são transitórios; erros de cliente (4xx) e falhas sem status
// HTTP algum falham de imediato.
func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return false
}

// withRetry executa fn com intervalos exponenciais determinísticos.
// A operação roda no máximo 1+MaxRetries vezes; quando todas falham com
// erros transitórios o resultado é ErrRetriesExhausted embrulhando a última
// causa.
func withRetry(ctx context.Context, cfg RetryConfig, fn func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.BaseDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = time.Hour
	b.MaxElapsedTime = 0
	b.Reset()

	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) {
			return lastErr
		}
		if attempt == cfg.MaxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(b.NextBackOff()):
		}
	}

	return fmt.Errorf("%w: %w", ErrRetriesExhausted, lastErr)
}

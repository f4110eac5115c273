package convert_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/docconv"
	"github.com/fwojciec/docconv/convert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ docconv.DomainLimiter = (*convert.DomainLimiter)(nil)

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("spaces requests to the same domain", func(t *testing.T) {
		t.Parallel()

		limiter := convert.NewDomainLimiter(10, 1) // 100ms between requests

		require.NoError(t, limiter.Wait(context.Background(), "img.example.com"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "img.example.com"))
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("allows bursts", func(t *testing.T) {
		t.Parallel()

		limiter := convert.NewDomainLimiter(1, 3)

		start := time.Now()
		for range 3 {
			require.NoError(t, limiter.Wait(context.Background(), "img.example.com"))
		}
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("domains are limited independently", func(t *testing.T) {
		t.Parallel()

		limiter := convert.NewDomainLimiter(1, 1)
		require.NoError(t, limiter.Wait(context.Background(), "a.example.com"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "b.example.com"))
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("returns error when context is canceled", func(t *testing.T) {
		t.Parallel()

		limiter := convert.NewDomainLimiter(0.1, 1)
		require.NoError(t, limiter.Wait(context.Background(), "img.example.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		assert.Error(t, limiter.Wait(ctx, "img.example.com"))
	})
}

package breaker

import (
	"context"
	"errors"
	"testing"
	"time"
)

// BenchmarkExecute_Closed measures the happy path through the breaker.
func BenchmarkExecute_Closed(b *testing.B) {
	br := New("dep", Config{
		FailureThreshold: 100,
		ResetTimeout:     time.Minute,
		MaxRetries:       -1,
	})
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = br.Execute(ctx, func(ctx context.Context) error {
			return nil
		})
	}
}

// BenchmarkExecute_Open measures the fast-fail path.
func BenchmarkExecute_Open(b *testing.B) {
	br := New("dep", Config{
		FailureThreshold: 1,
		ResetTimeout:     time.Hour,
		MaxRetries:       -1,
	})
	ctx := context.Background()

	_ = br.Execute(ctx, func(ctx context.Context) error {
		return errors.New("down")
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = br.Execute(ctx, func(ctx context.Context) error {
			return nil
		})
	}
}

// BenchmarkExecute_Concurrent measures parallel execution through one breaker.
func BenchmarkExecute_Concurrent(b *testing.B) {
	br := New("dep", Config{
		FailureThreshold: 1000000,
		ResetTimeout:     time.Minute,
		MaxRetries:       -1,
	})
	ctx := context.Background()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = br.Execute(ctx, func(ctx context.Context) error {
				return nil
			})
		}
	})
}

// BenchmarkState measures state inspection overhead.
func BenchmarkState(b *testing.B) {
	br := New("dep", Config{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = br.State()
	}
}

// BenchmarkRegistry_Get measures lookup of an existing breaker.
func BenchmarkRegistry_Get(b *testing.B) {
	r := NewRegistry()
	r.Get("dep", Config{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.Get("dep", Config{})
	}
}

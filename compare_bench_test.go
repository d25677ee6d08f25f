package tether_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/baxromumarov/tether"
	"github.com/sourcegraph/conc"
	"golang.org/x/sync/errgroup"
)

// ─────────────────────────────────────────────────────────────────────────────
// 1. Fan-out: spawn N no-op goroutines and wait for all of them
// ─────────────────────────────────────────────────────────────────────────────

func BenchmarkFanOut_Native(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				var wg sync.WaitGroup
				for j := 0; j < n; j++ {
					wg.Add(1)
					go func() { wg.Done() }()
				}
				wg.Wait()
			}
		})
	}
}

func BenchmarkFanOut_Errgroup(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				g, _ := errgroup.WithContext(context.Background())
				for j := 0; j < n; j++ {
					g.Go(func() error { return nil })
				}
				_ = g.Wait()
			}
		})
	}
}

func BenchmarkFanOut_Conc(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				wg := conc.NewWaitGroup()
				for j := 0; j < n; j++ {
					wg.Go(func() {})
				}
				wg.Wait()
			}
		})
	}
}

func BenchmarkFanOut_Tether(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				handles := make([]*tether.Handle[struct{}], n)
				for j := range handles {
					handles[j] = tether.Spawn(func() struct{} { return struct{}{} })
				}
				for _, h := range handles {
					h.Close()
				}
			}
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// 2. Typed result: spawn one goroutine that computes a value, retrieve it
// ─────────────────────────────────────────────────────────────────────────────

func BenchmarkResult_Channel(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ch := make(chan int, 1)
		go func() { ch <- 42 }()
		if v := <-ch; v != 42 {
			b.Fatal("wrong value")
		}
	}
}

func BenchmarkResult_Tether(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		h := tether.Spawn(func() int { return 42 })
		if v := h.Join(); v != 42 {
			b.Fatal("wrong value")
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// 3. Panic safety: spawn a panicking goroutine, observe the failure in the
// parent. Both libraries capture the panic and re-raise it at the join point.
// ─────────────────────────────────────────────────────────────────────────────

func BenchmarkPanicPropagation_Conc(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		func() {
			defer func() { _ = recover() }()
			wg := conc.NewWaitGroup()
			wg.Go(func() { panic("boom") })
			wg.Wait()
		}()
	}
}

func BenchmarkPanicPropagation_Tether(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		func() {
			defer func() { _ = recover() }()
			h := tether.Spawn(func() struct{} { panic("boom") })
			h.Join()
		}()
	}
}

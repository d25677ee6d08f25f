// Command main is a small demo of tether handles: named workers, quota
// enforcement, and panic propagation, with lifecycle logging via zap.
package main

import (
	"time"

	"github.com/baxromumarov/tether"
	"go.uber.org/zap"
)

func main() {
	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	quota := tether.NewQuota(2)
	builder := tether.NewBuilder[int]().Name("crunch").Quota(quota)

	var handles []*tether.Handle[int]
	for i := 0; i < 3; i++ {
		n := i
		h, err := builder.Spawn(func() int {
			time.Sleep(50 * time.Millisecond)
			return n * n
		})
		if err != nil {
			log.Warn("spawn rejected",
				zap.Int("worker", n),
				zap.Error(err),
				zap.Int("slots_free", quota.Available()))
			continue
		}
		log.Info("spawned", zap.Stringer("task", h.Info()))
		handles = append(handles, h)
	}

	for _, h := range handles {
		info := h.Info()
		v := h.Join()
		log.Info("joined", zap.Stringer("task", info), zap.Int("value", v))
	}

	// A panicking task: the failure surfaces at the join point, in the
	// owner's goroutine, instead of killing the process from nowhere.
	func() {
		defer func() {
			if pe, ok := recover().(*tether.PanicError); ok {
				log.Error("worker panicked", zap.Any("value", pe.Value))
			}
		}()
		h := tether.Spawn(func() struct{} {
			panic("demo failure")
		})
		defer h.Close()
	}()

	log.Info("done")
}

package testutil

import (
	"sync"
	"sync/atomic"
)

// ConcurrentResult tallies outcomes of RunConcurrent.
type ConcurrentResult struct {
	Successes int32
	Failures  int32
}

func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.Failures
}

// RunConcurrent runs fn in n goroutines and counts true results as
// successes.
func RunConcurrent(n int, fn func(idx int) bool) *ConcurrentResult {
	var wg sync.WaitGroup
	var ok, failed atomic.Int32
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if fn(idx) {
				ok.Add(1)
			} else {
				failed.Add(1)
			}
		}(i)
	}
	wg.Wait()
	return &ConcurrentResult{Successes: ok.Load(), Failures: failed.Load()}
}

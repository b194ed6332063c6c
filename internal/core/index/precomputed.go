package index

import (
	"runtime"
	"sync"
)

// Source is any index whose neighborhoods can be materialized up front
type Source interface {
	Neighbors(i int) []int
	Len() int
}

// Precomputed wraps another index and materializes every neighborhood
// eagerly with a bounded worker pool. Region queries are pure reads of the
// point set, so computing them concurrently cannot change any result; the
// clustering scan that consumes them stays strictly sequential.
type Precomputed struct {
	neighbors [][]int
}

// Precompute materializes all neighborhoods of src using the given number
// of workers (GOMAXPROCS when workers <= 0).
func Precompute(src Source, workers int) *Precomputed {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	n := src.Len()
	out := make([][]int, n)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = src.Neighbors(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return &Precomputed{neighbors: out}
}

// Neighbors returns the materialized neighborhood of point i
func (p *Precomputed) Neighbors(i int) []int {
	return p.neighbors[i]
}

// Len returns the number of indexed points
func (p *Precomputed) Len() int {
	return len(p.neighbors)
}

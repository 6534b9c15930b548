// Package pool provides a fixed set of workers for verifying many signatures at once,
// and a reader wrapper for sharing one source of randomness between sessions.
package pool

import (
	"io"
	"runtime"
	"sync"
)

// job asks a worker to evaluate f(i) and store it in results[i].
type job struct {
	i       int
	f       func(int) interface{}
	results []interface{}
	done    *sync.WaitGroup
}

func worker(jobs <-chan job) {
	for j := range jobs {
		j.results[j.i] = j.f(j.i)
		j.done.Done()
	}
}

// Pool represents a pool of workers, used for parallelizing functions.
//
// Functions needing a *Pool will work with a nil receiver, doing the equivalent
// work on the current goroutine instead.
type Pool struct {
	jobs        chan job
	workerCount int
	closeOnce   sync.Once
}

// NewPool creates a new pool, with a certain number of workers.
//
// If count <= 0, this will use the number of available CPUs instead.
func NewPool(count int) *Pool {
	if count <= 0 {
		count = runtime.NumCPU()
	}
	p := &Pool{
		jobs:        make(chan job),
		workerCount: count,
	}
	for i := 0; i < count; i++ {
		go worker(p.jobs)
	}
	return p
}

// Workers returns the number of goroutines serving the pool, or 1 for a nil pool.
func (p *Pool) Workers() int {
	if p == nil {
		return 1
	}
	return p.workerCount
}

// TearDown stops the workers. The pool must not be used afterwards.
func (p *Pool) TearDown() {
	if p == nil {
		return
	}
	p.closeOnce.Do(func() { close(p.jobs) })
}

// Parallelize calls a function count times, passing in indices from 0..count-1.
//
// The result will be a slice containing [f(0), f(1), ..., f(count - 1)].
func (p *Pool) Parallelize(count int, f func(int) interface{}) []interface{} {
	results := make([]interface{}, count)
	if p == nil {
		for i := range results {
			results[i] = f(i)
		}
		return results
	}

	var done sync.WaitGroup
	done.Add(count)
	for i := 0; i < count; i++ {
		p.jobs <- job{i: i, f: f, results: results, done: &done}
	}
	done.Wait()
	return results
}

// LockedReader wraps an io.Reader to be safe for concurrent reads.
//
// Concurrent sessions drawing nonces and blinding factors from the same
// source each get distinct bytes, but which session gets which is raced.
type LockedReader struct {
	reader io.Reader
	m      sync.Mutex
}

// NewLockedReader creates a LockedReader by wrapping an underlying value.
func NewLockedReader(r io.Reader) *LockedReader {
	// the zero value of m is ok
	return &LockedReader{reader: r}
}

// Read implements io.Reader for LockedReader.
func (r *LockedReader) Read(p []byte) (int, error) {
	r.m.Lock()
	defer r.m.Unlock()
	return r.reader.Read(p)
}

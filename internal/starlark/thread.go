package starlark

import (
	"sync"

	"go.starlark.net/starlark"
)

// ThreadPool manages a pool of Starlark threads so a script can be called
// for many sentences without allocating a thread per call.
type ThreadPool struct {
	mu      sync.Mutex
	threads []*starlark.Thread
	maxSize int
	print   func(thread *starlark.Thread, msg string)
}

// NewThreadPool creates a new thread pool with the specified maximum size.
// print receives output of the Starlark print builtin; nil discards it.
func NewThreadPool(maxSize int, print func(thread *starlark.Thread, msg string)) *ThreadPool {
	if maxSize <= 0 {
		maxSize = 10 // default pool size
	}
	if print == nil {
		print = func(_ *starlark.Thread, _ string) {}
	}
	return &ThreadPool{
		threads: make([]*starlark.Thread, 0, maxSize),
		maxSize: maxSize,
		print:   print,
	}
}

// Get retrieves a thread from the pool or creates a new one.
// The thread name is used for error reporting.
func (p *ThreadPool) Get(name string) *starlark.Thread {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.threads) > 0 {
		thread := p.threads[len(p.threads)-1]
		p.threads = p.threads[:len(p.threads)-1]
		thread.Name = name
		return thread
	}

	return &starlark.Thread{Name: name, Print: p.print}
}

// Put returns a thread to the pool for reuse.
// If the pool is full, the thread is discarded.
func (p *ThreadPool) Put(thread *starlark.Thread) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.threads) < p.maxSize {
		thread.Name = ""
		p.threads = append(p.threads, thread)
	}
}

// Size returns the current number of threads in the pool.
func (p *ThreadPool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.threads)
}

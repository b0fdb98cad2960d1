package queue

import (
	"context"
	"sync"
)

// Task is one unit of work submitted to the pool.
type Task func(ctx context.Context) error

// Result pairs a task's identifier with its outcome.
type Result struct {
	ID  string
	Err error
}

// Pool runs submitted tasks on a fixed number of workers. Submission blocks
// when the buffer is full, so producers are naturally throttled.
type Pool struct {
	workers int
	tasks   chan taskItem
	results chan Result
	wg      sync.WaitGroup
}

type taskItem struct {
	id   string
	task Task
}

// NewPool creates a pool with the given worker count and buffer size.
func NewPool(workers, buffer int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if buffer < 1 {
		buffer = workers
	}
	return &Pool{
		workers: workers,
		tasks:   make(chan taskItem, buffer),
		results: make(chan Result, buffer),
	}
}

// Start launches the workers. Tasks already submitted begin draining
// immediately; the pool stops pulling new tasks once ctx is done.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case item, ok := <-p.tasks:
			if !ok {
				return
			}
			p.results <- Result{ID: item.id, Err: item.task(ctx)}
		}
	}
}

// Submit enqueues a task. It blocks when the buffer is full and returns the
// context error if ctx is cancelled while waiting.
func (p *Pool) Submit(ctx context.Context, id string, task Task) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case p.tasks <- taskItem{id: id, task: task}:
		return nil
	}
}

// CloseAndWait signals no more submissions, waits for in-flight tasks, and
// closes the results channel.
func (p *Pool) CloseAndWait() {
	close(p.tasks)
	p.wg.Wait()
	close(p.results)
}

// Results returns the channel of task outcomes.
func (p *Pool) Results() <-chan Result {
	return p.results
}

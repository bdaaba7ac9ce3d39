// Package worker runs tasks on a fixed set of goroutines fed by a bounded
// queue.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrQueueFull = errors.New("task queue is full")
	ErrStopped   = errors.New("worker pool is stopped")
)

// Config represents pool configuration
type Config struct {
	MaxWorkers  int           // maximum number of workers
	QueueSize   int           // task queue size
	TaskTimeout time.Duration // timeout for single task, 0 for none
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		MaxWorkers:  4,
		QueueSize:   1000,
		TaskTimeout: 10 * time.Second,
	}
}

// Validate validates configuration
func (cfg *Config) Validate() error {
	if cfg.MaxWorkers < 1 {
		return errors.New("max workers must be greater than 0")
	}
	if cfg.QueueSize < 1 {
		return errors.New("queue size must be greater than 0")
	}
	if cfg.TaskTimeout < 0 {
		return errors.New("task timeout must be greater than or equal to 0")
	}
	return nil
}

// Task is a unit of work. ctx carries the task timeout.
type Task func(ctx context.Context) error

// Stats is a snapshot of pool counters
type Stats struct {
	Active    int64 `json:"active"`
	Pending   int64 `json:"pending"`
	Completed int64 `json:"completed"`
	Failed    int64 `json:"failed"`
}

// Option customizes a Pool
type Option func(*Pool)

// WithErrorHandler is called with every task error, panics included
func WithErrorHandler(fn func(error)) Option {
	return func(p *Pool) { p.onError = fn }
}

// Pool represents a worker pool
type Pool struct {
	timeout time.Duration
	onError func(error)

	mu      sync.RWMutex
	stopped bool
	tasks   chan Task
	wg      sync.WaitGroup

	active    atomic.Int64
	pending   atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
}

// NewPool starts a pool; a nil cfg uses DefaultConfig
func NewPool(cfg *Config, opts ...Option) (*Pool, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pool{
		timeout: cfg.TaskTimeout,
		tasks:   make(chan Task, cfg.QueueSize),
	}
	for _, opt := range opts {
		opt(p)
	}

	for i := 0; i < cfg.MaxWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p, nil
}

// Submit queues task without blocking
func (p *Pool) Submit(task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrStopped
	}

	select {
	case p.tasks <- task:
		p.pending.Add(1)
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop rejects new tasks and waits for queued ones to finish or ctx to end
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.stopped {
		p.stopped = true
		close(p.tasks)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats returns the current counters
func (p *Pool) Stats() Stats {
	return Stats{
		Active:    p.active.Load(),
		Pending:   p.pending.Load(),
		Completed: p.completed.Load(),
		Failed:    p.failed.Load(),
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.pending.Add(-1)
		p.run(task)
	}
}

func (p *Pool) run(task Task) {
	p.active.Add(1)
	defer p.active.Add(-1)

	ctx := context.Background()
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("task panic: %v", r)
			}
		}()
		return task(ctx)
	}()

	if err != nil {
		p.failed.Add(1)
		if p.onError != nil {
			p.onError(err)
		}
		return
	}
	p.completed.Add(1)
}

package scheduler

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type queue[T any] []T

func (wq *queue[T]) Len() int { return len(*wq) }

func (wq *queue[T]) Pop() T {
	old := *wq
	x := old[0]
	*wq = old[1:]
	return x
}

func (wq *queue[T]) Push(t T) {
	*wq = append(*wq, t)
}

// workRequest erases the result type so one pool can run any Work[T].
type workRequest struct {
	run   func()
	abort func()
}

type worker struct {
	done chan struct{}
	wg   *sync.WaitGroup
}

func (w worker) Work(r workRequest) {
	defer func() {
		w.done <- struct{}{}
		w.wg.Done()
	}()
	r.run()
}

type Scheduler struct {
	workers    *queue[worker]
	workQueue  *queue[workRequest]
	close      chan struct{}
	closed     chan struct{}
	done       chan struct{}
	work       chan workRequest
	mainCtx    context.Context
	mainCancel context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
}

// New starts a pool of nbWorkers workers. Work beyond that waits in FIFO order.
func New(nbWorkers int) *Scheduler {
	if nbWorkers < 1 {
		nbWorkers = 1
	}
	done := make(chan struct{}, nbWorkers)
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		workers:    &queue[worker]{},
		workQueue:  &queue[workRequest]{},
		close:      make(chan struct{}),
		closed:     make(chan struct{}),
		done:       done,
		work:       make(chan workRequest),
		mainCtx:    ctx,
		mainCancel: cancel,
	}
	for range nbWorkers {
		s.workers.Push(worker{done: done, wg: &s.wg})
	}
	go s.run()
	return s
}

// Submit queues w on s. Work submitted after Close completes with context.Canceled.
func Submit[T any](s *Scheduler, w Work[T]) *Future[T] {
	c := make(chan Result[T], 1)
	ctx, cancel := context.WithCancel(s.mainCtx)

	req := workRequest{run: func() {
		defer cancel()
		defer func() {
			if rec := recover(); rec != nil {
				zap.S().Named("scheduler").Errorw("work panicked", "panic", rec)
				c <- Result[T]{Err: fmt.Errorf("worker panicked: %v", rec)}
			}
		}()
		v, err := w(ctx)
		c <- Result[T]{Data: v, Err: err}
	}}

	req.abort = func() {
		cancel()
		c <- Result[T]{Err: context.Canceled}
	}

	select {
	case <-s.mainCtx.Done():
		req.abort()
	case s.work <- req:
	}

	return newFuture(c, cancel)
}

// Close cancels running work, waits for the workers to return and stops the pool.
func (s *Scheduler) Close() {
	s.once.Do(func() {
		s.mainCancel()
		s.close <- struct{}{}
		<-s.closed
	})
}

func (s *Scheduler) run() {
	defer close(s.closed)
	for {
		select {
		case w := <-s.work:
			s.workQueue.Push(w)
			s.dispatch()
		case <-s.done:
			s.workers.Push(worker{done: s.done, wg: &s.wg})
			s.dispatch()
		case <-s.close:
			for s.workQueue.Len() > 0 {
				s.workQueue.Pop().abort()
			}
			s.wg.Wait()
			return
		}
	}
}

// dispatch drains the workQueue as much as possible
// based on available workers
func (s *Scheduler) dispatch() {
	for s.workers.Len() > 0 && s.workQueue.Len() > 0 {
		r := s.workQueue.Pop()
		w := s.workers.Pop()
		s.wg.Add(1)
		go w.Work(r)
	}
}

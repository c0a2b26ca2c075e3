package vapor

import (
	"runtime"
	"sync/atomic"
)

// A forkQueue runs a recursive divide-and-conquer computation on a bounded
// number of Goroutines.
//
// The root task is started with Run(). Inside a task, Fork() evaluates two
// independent sub-tasks, one of which may be stolen by an idle worker.
type forkQueue[T any] struct {
	tasks chan *forkTask[T]
}

type forkTask[T any] struct {
	claimed int32
	fn      func() T
	done    chan T
}

func newForkQueue[T any](workers int) *forkQueue[T] {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	q := &forkQueue[T]{tasks: make(chan *forkTask[T], workers*64)}
	for i := 0; i < workers; i++ {
		go q.work()
	}
	return q
}

// Run evaluates the root task and shuts down the workers afterwards.
// A queue may only be Run once.
func (q *forkQueue[T]) Run(fn func() T) T {
	defer close(q.tasks)
	return fn()
}

// Fork evaluates first on the calling Goroutine while second is offered to
// the workers. If no worker claims second by the time first is done, it is
// evaluated locally.
func (q *forkQueue[T]) Fork(first, second func() T) (T, T) {
	task := &forkTask[T]{fn: second, done: make(chan T, 1)}
	select {
	case q.tasks <- task:
	default:
		// The queue is full, so nobody will steal this task.
		task.claimed = 1
		return first(), second()
	}
	r1 := first()
	if atomic.CompareAndSwapInt32(&task.claimed, 0, 1) {
		return r1, second()
	}
	return r1, <-task.done
}

func (q *forkQueue[T]) work() {
	for task := range q.tasks {
		if !atomic.CompareAndSwapInt32(&task.claimed, 0, 1) {
			continue
		}
		task.done <- task.fn()
	}
}

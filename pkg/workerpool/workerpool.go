package workerpool

import (
	"context"
)

// Result — результат выполнения задачи
type Result struct {
	Value any
	Err   error
}

type task struct {
	fn      func() (any, error)
	resultC chan Result
}

// Pool — пул воркеров для параллельного выполнения задач.
// fn должен быть безопасен для конкурентного выполнения.
type Pool struct {
	tasks  chan task
	ctx    context.Context
	cancel context.CancelFunc
}

// New создаёт пул с N воркерами
func New(workerCount, queueSize int) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		tasks:  make(chan task, queueSize),
		ctx:    ctx,
		cancel: cancel,
	}
	for i := 0; i < workerCount; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for {
		select {
		case <-p.ctx.Done():
			return
		case t, ok := <-p.tasks:
			if !ok {
				return
			}
			value, err := t.fn()
			t.resultC <- Result{Value: value, Err: err}
		}
	}
}

// Submit отправляет задачу в пул и возвращает канал с её результатом.
// Канал буферизован, результат можно забрать позже (фан-аут/фан-ин).
func (p *Pool) Submit(fn func() (any, error)) <-chan Result {
	resultC := make(chan Result, 1)
	p.tasks <- task{fn: fn, resultC: resultC}
	return resultC
}

// Close завершает работу пула
func (p *Pool) Close() {
	p.cancel()
}

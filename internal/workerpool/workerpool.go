/*
 * Copyright 2022 The Gremlins Authors
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

// Package workerpool is the bounded worker pool shared by the
// discovery/generation stages and the build/test driver: a fixed
// number of goroutines pull Executors off a channel until the caller
// closes it and Waits for the in-flight ones to drain.
package workerpool

import (
	"runtime"
	"sync"
)

// Executor is a unit of work a Worker runs. Implementations that need
// the Worker's identity (for per-worker logging, say) can read it off
// the argument; most don't need it.
type Executor interface {
	Execute(w *Worker)
}

// ExecutorFunc adapts a plain func() to the Executor interface.
type ExecutorFunc func()

// Execute implements Executor.
func (f ExecutorFunc) Execute(*Worker) { f() }

// Worker is one pool goroutine's identity.
type Worker struct {
	ID int
}

// Pool is a bounded set of Workers pulling Executors off a shared
// channel. Name is cosmetic: the pool stores it but never reads it.
type Pool struct {
	name string
	size int

	jobs chan Executor
	wg   sync.WaitGroup

	startOnce sync.Once
}

// New builds a Pool named name with size workers. A size ≤ 0 defaults
// to runtime.NumCPU().
func New(name string, size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}

	return &Pool{
		name: name,
		size: size,
		jobs: make(chan Executor, size*4),
	}
}

// Start spins up the pool's workers. Safe to call once; subsequent
// calls are no-ops.
func (p *Pool) Start() {
	p.startOnce.Do(func() {
		for i := 0; i < p.size; i++ {
			w := &Worker{ID: i}
			p.wg.Add(1)
			go func(w *Worker) {
				defer p.wg.Done()
				for job := range p.jobs {
					job.Execute(w)
				}
			}(w)
		}
	})
}

// AppendExecutor enqueues an Executor. Must be called after Start and
// before Wait.
func (p *Pool) AppendExecutor(e Executor) {
	p.jobs <- e
}

// Submit is a convenience wrapper for a plain func().
func (p *Pool) Submit(f func()) {
	p.AppendExecutor(ExecutorFunc(f))
}

// Wait closes the job channel and blocks until every in-flight
// Executor has completed. Must be called exactly once.
func (p *Pool) Wait() {
	close(p.jobs)
	p.wg.Wait()
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int { return p.size }

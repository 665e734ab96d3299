package resource

import (
	"context"
	"sync"

	"github.com/Pranshu115/tatva/logger"
)

// Operation is an asynchronous data-producing call bound to a Resource.
type Operation[A, T any] func(ctx context.Context, args A) (T, error)

// State is a snapshot of a single-fetch resource.
type State[T any] struct {
	// Data is the last successfully fetched value. HasData is false until
	// the first success.
	Data    T
	HasData bool
	// Loading is true while at least one call is in flight.
	Loading bool
	// Error is the message of the last settled failure, "" otherwise.
	Error  string
	Status Status
}

// Resource tracks the data/loading/error lifecycle of one operation.
//
// Concurrent Execute calls are neither deduplicated nor cancelled: each
// runs to completion and whichever settles last determines the published
// data and error.
type Resource[A, T any] struct {
	op  Operation[A, T]
	log *logger.Logger

	mu       sync.Mutex
	settled  *sync.Cond
	state    State[T]
	inflight int
	lastArgs A
	seq      uint64

	subs listeners[State[T]]
}

// Option configures a Resource or Paginated at construction.
type Option func(*options)

type options struct {
	immediate bool
	pageSize  int
	page      int
	log       *logger.Logger
}

// WithImmediate runs the operation once, with zero arguments, when the
// resource is bound. Without it nothing runs until Execute is called.
func WithImmediate() Option {
	return func(o *options) { o.immediate = true }
}

// WithLogger sets the logger failures are reported to.
func WithLogger(log *logger.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{pageSize: DefaultPageSize, page: 1, log: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	o.log = o.log.WithComponent("resource")
	return o
}

// New binds op to a new Resource. With WithImmediate the first Execute
// starts in the background using ctx, and the resource starts out loading.
func New[A, T any](ctx context.Context, op Operation[A, T], opts ...Option) *Resource[A, T] {
	o := buildOptions(opts)
	r := &Resource[A, T]{op: op, log: o.log}
	r.settled = sync.NewCond(&r.mu)

	if o.immediate {
		var zero A
		r.begin(zero)
		go func() {
			_, _ = r.run(ctx, zero)
		}()
	}
	return r
}

// State returns the current snapshot.
func (r *Resource[A, T]) State() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Subscribe registers fn to receive a snapshot after every transition.
// It returns a function that removes the subscription.
func (r *Resource[A, T]) Subscribe(fn func(State[T])) func() {
	return r.subs.add(fn)
}

// Execute invokes the operation with args. The state moves to loading
// with the previous error cleared and previous data kept; on success the
// data is replaced, on failure only the error is set. The value and the
// original error are also returned to the caller.
func (r *Resource[A, T]) Execute(ctx context.Context, args A) (T, error) {
	r.begin(args)
	return r.run(ctx, args)
}

// Refetch re-runs the operation with the arguments of the last call.
func (r *Resource[A, T]) Refetch(ctx context.Context) (T, error) {
	r.mu.Lock()
	args := r.lastArgs
	r.mu.Unlock()
	return r.Execute(ctx, args)
}

// Reset discards data and error and returns to idle. Calls still in flight
// publish their result when they settle.
func (r *Resource[A, T]) Reset() {
	r.mu.Lock()
	r.state = State[T]{Status: StatusIdle, Loading: r.inflight > 0}
	if r.inflight > 0 {
		r.state.Status = StatusLoading
	}
	seq, snap := r.snapshotLocked()
	r.mu.Unlock()
	r.subs.publish(seq, snap)
}

// Wait blocks until no call is in flight.
func (r *Resource[A, T]) Wait() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for r.inflight > 0 {
		r.settled.Wait()
	}
}

func (r *Resource[A, T]) begin(args A) {
	r.mu.Lock()
	r.inflight++
	r.lastArgs = args
	r.state.Loading = true
	r.state.Error = ""
	r.state.Status = StatusLoading
	seq, snap := r.snapshotLocked()
	r.mu.Unlock()
	r.subs.publish(seq, snap)
}

func (r *Resource[A, T]) run(ctx context.Context, args A) (T, error) {
	v, err := r.op(ctx, args)

	r.mu.Lock()
	r.inflight--
	if err != nil {
		r.state.Error = Message(err)
		r.state.Status = StatusFailed
	} else {
		r.state.Data = v
		r.state.HasData = true
		r.state.Error = ""
		r.state.Status = StatusSucceeded
	}
	r.state.Loading = r.inflight > 0
	if r.state.Loading {
		r.state.Status = StatusLoading
	}
	r.settled.Broadcast()
	seq, snap := r.snapshotLocked()
	r.mu.Unlock()

	if err != nil {
		r.log.WithContext(ctx).Debug("resource call failed", logger.ErrorFields("execute", err))
	}
	r.subs.publish(seq, snap)
	return v, err
}

func (r *Resource[A, T]) snapshotLocked() (uint64, State[T]) {
	r.seq++
	return r.seq, r.state
}

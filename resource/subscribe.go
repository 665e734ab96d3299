package resource

import "sync"

// listeners fans state snapshots out to subscribers. Each snapshot carries
// the sequence number it was taken at; a snapshot older than one already
// delivered is dropped, so subscribers never observe state going backwards.
//
// Listeners run synchronously and may read the machine's state, but must
// not call its mutating methods.
type listeners[S any] struct {
	deliver   sync.Mutex
	delivered uint64

	mu   sync.Mutex
	next int
	fns  map[int]func(S)
}

func (l *listeners[S]) add(fn func(S)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fns == nil {
		l.fns = make(map[int]func(S))
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.fns, id)
	}
}

func (l *listeners[S]) publish(seq uint64, snapshot S) {
	l.deliver.Lock()
	defer l.deliver.Unlock()
	if seq <= l.delivered {
		return
	}
	l.delivered = seq

	l.mu.Lock()
	fns := make([]func(S), 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

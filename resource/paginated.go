package resource

import (
	"context"
	"errors"
	"sync"

	"github.com/Pranshu115/tatva/logger"
)

// DefaultPageSize is the limit sent when no page size is configured.
const DefaultPageSize = 10

// ErrInvalidPage is returned by FetchPage and SetPage for pages below 1.
var ErrInvalidPage = errors.New("resource: page must be >= 1")

// PageParams are the arguments every page fetch receives.
type PageParams struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// PageFunc fetches one page.
type PageFunc[T any] func(ctx context.Context, p PageParams) (Envelope[T], error)

// PageState is a snapshot of a paginated resource.
type PageState[T any] struct {
	// Items holds the items of the most recently settled fetch; pages are
	// never stitched together.
	Items      []T
	Loading    bool
	Error      string
	Status     Status
	Page       int
	TotalPages int
	TotalItems int
}

// Paginated re-fetches a page-indexed operation whenever its page changes.
// Every page change issues exactly one fetch; navigation outside
// [1, TotalPages] is a no-op. Once a fetch has settled Page stays in
// [1, max(TotalPages, 1)].
type Paginated[T any] struct {
	op          PageFunc[T]
	pageSize    int
	initialPage int
	log         *logger.Logger

	mu       sync.Mutex
	settled  *sync.Cond
	state    PageState[T]
	inflight int
	seq      uint64

	subs listeners[PageState[T]]
}

// WithPageSize sets the limit sent with every fetch.
func WithPageSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.pageSize = n
		}
	}
}

// WithInitialPage sets the page the resource starts on.
func WithInitialPage(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.page = n
		}
	}
}

// NewPaginated binds op to a new Paginated resource positioned at the
// initial page (1 unless WithInitialPage is given). With WithImmediate the
// initial page is fetched in the background.
func NewPaginated[T any](ctx context.Context, op PageFunc[T], opts ...Option) *Paginated[T] {
	o := buildOptions(opts)
	p := &Paginated[T]{
		op:          op,
		pageSize:    o.pageSize,
		initialPage: o.page,
		log:         o.log,
		state:       PageState[T]{Page: o.page},
	}
	p.settled = sync.NewCond(&p.mu)

	if o.immediate {
		page, prev := p.begin(o.page, true)
		go func() {
			_, _ = p.run(ctx, page, prev)
		}()
	}
	return p
}

// State returns the current snapshot.
func (p *Paginated[T]) State() PageState[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// PageSize returns the configured limit.
func (p *Paginated[T]) PageSize() int {
	return p.pageSize
}

// Subscribe registers fn to receive a snapshot after every transition.
func (p *Paginated[T]) Subscribe(fn func(PageState[T])) func() {
	return p.subs.add(fn)
}

// FetchPage makes n the current page and fetches it with {page: n, limit: PageSize}.
// When the fetch fails the page moves back to where it was.
func (p *Paginated[T]) FetchPage(ctx context.Context, n int) (Envelope[T], error) {
	if n < 1 {
		return Envelope[T]{}, ErrInvalidPage
	}
	page, prev := p.begin(n, true)
	return p.run(ctx, page, prev)
}

// Refetch re-issues the fetch for the current page without moving it.
func (p *Paginated[T]) Refetch(ctx context.Context) (Envelope[T], error) {
	page, prev := p.begin(0, false)
	return p.run(ctx, page, prev)
}

// SetPage assigns the page directly. A change triggers one fetch; assigning
// the current page does nothing. A page past the end is brought back to the
// last page once the fetch reports the totals, and a failed fetch restores
// the previous page.
func (p *Paginated[T]) SetPage(ctx context.Context, n int) error {
	if n < 1 {
		return ErrInvalidPage
	}
	return p.navigate(ctx, func(s PageState[T]) (int, bool) {
		return n, n != s.Page
	})
}

// NextPage moves forward one page. It is a no-op when Page >= TotalPages.
func (p *Paginated[T]) NextPage(ctx context.Context) error {
	return p.navigate(ctx, func(s PageState[T]) (int, bool) {
		return s.Page + 1, s.Page < s.TotalPages
	})
}

// PrevPage moves back one page. It is a no-op when Page <= 1.
func (p *Paginated[T]) PrevPage(ctx context.Context) error {
	return p.navigate(ctx, func(s PageState[T]) (int, bool) {
		return s.Page - 1, s.Page > 1
	})
}

// GoToPage jumps to page n. It is a no-op when n < 1, n > TotalPages or n
// is already the current page.
func (p *Paginated[T]) GoToPage(ctx context.Context, n int) error {
	return p.navigate(ctx, func(s PageState[T]) (int, bool) {
		return n, n >= 1 && n <= s.TotalPages && n != s.Page
	})
}

// Reset clears items, totals and error and returns to the initial page
// without fetching.
func (p *Paginated[T]) Reset() {
	p.mu.Lock()
	p.state = PageState[T]{Page: p.initialPage, Loading: p.inflight > 0}
	if p.inflight > 0 {
		p.state.Status = StatusLoading
	}
	seq, snap := p.snapshotLocked()
	p.mu.Unlock()
	p.subs.publish(seq, snap)
}

// Wait blocks until no fetch is in flight.
func (p *Paginated[T]) Wait() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.inflight > 0 {
		p.settled.Wait()
	}
}

// navigate decides the target page and moves to it under one lock, so a
// bounds check and the page change it guards cannot interleave with
// another navigation.
func (p *Paginated[T]) navigate(ctx context.Context, target func(PageState[T]) (int, bool)) error {
	p.mu.Lock()
	n, ok := target(p.state)
	if !ok {
		p.mu.Unlock()
		return nil
	}
	prev := p.state.Page
	page := p.beginLocked(n, true)
	seq, snap := p.snapshotLocked()
	p.mu.Unlock()
	p.subs.publish(seq, snap)

	_, err := p.run(ctx, page, prev)
	return err
}

// begin marks a fetch in flight and returns the page to fetch and the page
// current before the call.
func (p *Paginated[T]) begin(n int, move bool) (page, prev int) {
	p.mu.Lock()
	prev = p.state.Page
	page = p.beginLocked(n, move)
	seq, snap := p.snapshotLocked()
	p.mu.Unlock()
	p.subs.publish(seq, snap)
	return page, prev
}

func (p *Paginated[T]) beginLocked(n int, move bool) int {
	if move {
		p.state.Page = n
	}
	p.inflight++
	p.state.Loading = true
	p.state.Error = ""
	p.state.Status = StatusLoading
	return p.state.Page
}

// run fetches page. prev is the page before the call moved to page; a
// failed fetch moves back to it unless another navigation has moved the
// page since.
func (p *Paginated[T]) run(ctx context.Context, page, prev int) (Envelope[T], error) {
	env, err := p.op(ctx, PageParams{Page: page, Limit: p.pageSize})

	p.mu.Lock()
	p.inflight--
	if err != nil {
		p.state.Error = Message(err)
		p.state.Status = StatusFailed
		if p.state.Page == page {
			p.state.Page = prev
		}
	} else {
		p.state.Items = env.Items
		p.state.TotalPages = env.Pages()
		p.state.TotalItems = env.Total()
		p.state.Error = ""
		p.state.Status = StatusSucceeded
	}
	// A page past the end (for example after items were deleted) moves
	// to the last page, which counts as a page change. With no pages at
	// all the empty result already is page 1.
	clamp := false
	if err == nil && p.state.Page > max(p.state.TotalPages, 1) {
		if p.state.TotalPages == 0 {
			p.state.Page = 1
		} else {
			p.beginLocked(p.state.TotalPages, true)
			clamp = true
		}
	}
	p.state.Loading = p.inflight > 0
	if p.state.Loading {
		p.state.Status = StatusLoading
	}
	p.settled.Broadcast()
	last := p.state.Page
	seq, snap := p.snapshotLocked()
	p.mu.Unlock()

	if err != nil {
		p.log.WithContext(ctx).Debug("page fetch failed",
			logger.ErrorFields("fetch_page", err), logger.Fields(logger.FieldPage, page))
	}
	p.subs.publish(seq, snap)

	if clamp {
		return p.run(ctx, last, last)
	}
	return env, err
}

func (p *Paginated[T]) snapshotLocked() (uint64, PageState[T]) {
	p.seq++
	return p.seq, p.state
}

package resource

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type pageRecorder struct {
	mu         sync.Mutex
	calls      []PageParams
	totalPages int
	err        error
}

func (p *pageRecorder) fetch(_ context.Context, params PageParams) (Envelope[string], error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, params)
	if p.err != nil {
		return Envelope[string]{}, p.err
	}
	return NewEnvelope([]string{"item"}, p.totalPages, p.totalPages*10), nil
}

func (p *pageRecorder) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func (p *pageRecorder) last() PageParams {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[len(p.calls)-1]
}

func loadedAt(t *testing.T, page, totalPages int, opts ...Option) (*Paginated[string], *pageRecorder) {
	t.Helper()
	rec := &pageRecorder{totalPages: totalPages}
	p := NewPaginated(context.Background(), rec.fetch, opts...)
	if _, err := p.FetchPage(context.Background(), page); err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	return p, rec
}

func TestPaginated_GoToPageBounds(t *testing.T) {
	p, rec := loadedAt(t, 1, 3, WithPageSize(20))
	before := rec.count()

	if err := p.GoToPage(context.Background(), 5); err != nil {
		t.Fatalf("GoToPage(5): %v", err)
	}
	if rec.count() != before {
		t.Fatalf("GoToPage(5) issued %d fetches, want none", rec.count()-before)
	}
	if p.State().Page != 1 {
		t.Errorf("page = %d, want 1", p.State().Page)
	}

	if err := p.GoToPage(context.Background(), 2); err != nil {
		t.Fatalf("GoToPage(2): %v", err)
	}
	if rec.count() != before+1 {
		t.Fatalf("GoToPage(2) issued %d fetches, want 1", rec.count()-before)
	}
	if got := rec.last(); got != (PageParams{Page: 2, Limit: 20}) {
		t.Errorf("params = %+v", got)
	}
	if p.State().Page != 2 {
		t.Errorf("page = %d, want 2", p.State().Page)
	}

	for _, n := range []int{0, -1, 2} {
		_ = p.GoToPage(context.Background(), n)
	}
	if rec.count() != before+1 {
		t.Errorf("out-of-range or same-page GoToPage issued fetches")
	}
}

func TestPaginated_NextPageAtEnd(t *testing.T) {
	p, rec := loadedAt(t, 3, 3)
	before := rec.count()

	if err := p.NextPage(context.Background()); err != nil {
		t.Fatalf("NextPage: %v", err)
	}
	if rec.count() != before {
		t.Errorf("NextPage at last page issued %d fetches", rec.count()-before)
	}
	if p.State().Page != 3 {
		t.Errorf("page = %d", p.State().Page)
	}
}

func TestPaginated_NextAndPrev(t *testing.T) {
	p, rec := loadedAt(t, 1, 3)

	if err := p.NextPage(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := rec.last(); got.Page != 2 || got.Limit != DefaultPageSize {
		t.Errorf("params = %+v", got)
	}

	if err := p.PrevPage(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := rec.last(); got.Page != 1 {
		t.Errorf("params = %+v", got)
	}

	before := rec.count()
	_ = p.PrevPage(context.Background())
	if rec.count() != before {
		t.Error("PrevPage at page 1 issued a fetch")
	}
}

func TestPaginated_SetPage(t *testing.T) {
	p, rec := loadedAt(t, 1, 3)
	before := rec.count()

	if err := p.SetPage(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if rec.count() != before {
		t.Error("SetPage to the current page issued a fetch")
	}
	if err := p.SetPage(context.Background(), 0); !errors.Is(err, ErrInvalidPage) {
		t.Errorf("SetPage(0) err = %v", err)
	}
	if err := p.SetPage(context.Background(), 2); err != nil {
		t.Fatal(err)
	}
	if rec.count() != before+1 || rec.last().Page != 2 {
		t.Errorf("calls = %v", rec.calls)
	}
}

func TestPaginated_StateAfterFetch(t *testing.T) {
	rec := &pageRecorder{totalPages: 4}
	p := NewPaginated(context.Background(), rec.fetch)

	var mu sync.Mutex
	var loading []bool
	p.Subscribe(func(s PageState[string]) {
		mu.Lock()
		loading = append(loading, s.Loading)
		mu.Unlock()
	})

	if _, err := p.FetchPage(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	st := p.State()
	if len(st.Items) != 1 || st.TotalPages != 4 || st.TotalItems != 40 || st.Loading || st.Status != StatusSucceeded {
		t.Errorf("state = %+v", st)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(loading) != 2 || !loading[0] || loading[1] {
		t.Errorf("loading transitions = %v", loading)
	}
}

func TestPaginated_FailureKeepsItems(t *testing.T) {
	p, rec := loadedAt(t, 1, 2)

	rec.mu.Lock()
	rec.err = errors.New("boom")
	rec.mu.Unlock()

	if err := p.NextPage(context.Background()); err == nil || err.Error() != "boom" {
		t.Fatalf("err = %v", err)
	}
	st := p.State()
	if st.Error != "boom" || st.Status != StatusFailed || st.Loading {
		t.Errorf("state = %+v", st)
	}
	if len(st.Items) != 1 || st.TotalPages != 2 {
		t.Errorf("items and totals should be kept, got %+v", st)
	}
	if st.Page != 1 {
		t.Errorf("page = %d, want 1 after the failed move", st.Page)
	}

	rec.mu.Lock()
	rec.err = nil
	rec.mu.Unlock()
	if _, err := p.Refetch(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := rec.last().Page; got != 1 {
		t.Errorf("Refetch page = %d", got)
	}
	if p.State().Error != "" {
		t.Errorf("error not cleared")
	}
}

func TestPaginated_ClampsPastLastPage(t *testing.T) {
	p, rec := loadedAt(t, 3, 3)

	rec.mu.Lock()
	rec.totalPages = 2
	rec.mu.Unlock()

	if _, err := p.Refetch(context.Background()); err != nil {
		t.Fatal(err)
	}
	st := p.State()
	if st.Page != 2 || st.TotalPages != 2 || st.Loading {
		t.Errorf("state = %+v", st)
	}
	if got := rec.last().Page; got != 2 {
		t.Errorf("corrective fetch page = %d", got)
	}
}

func TestPaginated_EmptyResultMovesToFirstPage(t *testing.T) {
	p, rec := loadedAt(t, 3, 3)
	before := rec.count()

	rec.mu.Lock()
	rec.totalPages = 0
	rec.mu.Unlock()

	if _, err := p.Refetch(context.Background()); err != nil {
		t.Fatal(err)
	}
	st := p.State()
	if st.Page != 1 || st.TotalPages != 0 || st.Loading || st.Status != StatusSucceeded {
		t.Errorf("state = %+v", st)
	}
	if got := rec.count() - before; got != 1 {
		t.Errorf("fetches = %d, want 1", got)
	}
}

func TestPaginated_FailedSetPageRestoresPage(t *testing.T) {
	p, rec := loadedAt(t, 2, 3)

	rec.mu.Lock()
	rec.err = errors.New("boom")
	rec.mu.Unlock()

	if err := p.SetPage(context.Background(), 7); err == nil {
		t.Fatal("expected error")
	}
	if got := rec.last().Page; got != 7 {
		t.Errorf("fetched page = %d, want 7", got)
	}
	st := p.State()
	if st.Page != 2 || st.TotalPages != 3 || st.Error != "boom" {
		t.Errorf("state = %+v", st)
	}
}

func TestPaginated_SetPagePastEndClamps(t *testing.T) {
	p, rec := loadedAt(t, 1, 3)

	if err := p.SetPage(context.Background(), 7); err != nil {
		t.Fatal(err)
	}
	if st := p.State(); st.Page != 3 || st.TotalPages != 3 {
		t.Errorf("state = %+v", st)
	}
	if got := rec.last().Page; got != 3 {
		t.Errorf("corrective fetch page = %d", got)
	}
}

func TestPaginated_FailedFirstFetchKeepsInitialPage(t *testing.T) {
	rec := &pageRecorder{err: errors.New("boom")}
	p := NewPaginated(context.Background(), rec.fetch)

	if _, err := p.FetchPage(context.Background(), 4); err == nil {
		t.Fatal("expected error")
	}
	if st := p.State(); st.Page != 1 || st.Status != StatusFailed {
		t.Errorf("state = %+v", st)
	}
}

func TestPaginated_ImmediateAndNot(t *testing.T) {
	rec := &pageRecorder{totalPages: 1}
	p := NewPaginated(context.Background(), rec.fetch, WithImmediate(), WithPageSize(5))
	p.Wait()
	if rec.count() != 1 || rec.last() != (PageParams{Page: 1, Limit: 5}) {
		t.Errorf("immediate calls = %v", rec.calls)
	}

	lazy := &pageRecorder{totalPages: 1}
	q := NewPaginated(context.Background(), lazy.fetch)
	q.Wait()
	if lazy.count() != 0 {
		t.Errorf("fetched without WithImmediate")
	}
	if st := q.State(); st.Page != 1 || st.Status != StatusIdle {
		t.Errorf("initial state = %+v", st)
	}
}

func TestPaginated_Reset(t *testing.T) {
	p, _ := loadedAt(t, 2, 3)
	p.Reset()
	st := p.State()
	if st.Page != 1 || st.Items != nil || st.TotalPages != 0 || st.Status != StatusIdle {
		t.Errorf("state = %+v", st)
	}
}

func TestPaginated_ResetToInitialPage(t *testing.T) {
	p, _ := loadedAt(t, 2, 5, WithInitialPage(3))
	p.Reset()
	if st := p.State(); st.Page != 3 || st.Status != StatusIdle {
		t.Errorf("state = %+v", st)
	}
}

func TestPaginated_FetchPageInvalid(t *testing.T) {
	rec := &pageRecorder{}
	p := NewPaginated(context.Background(), rec.fetch)
	if _, err := p.FetchPage(context.Background(), 0); !errors.Is(err, ErrInvalidPage) {
		t.Errorf("err = %v", err)
	}
	if rec.count() != 0 {
		t.Error("invalid page was fetched")
	}
}

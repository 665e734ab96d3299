// Package resource provides observable state machines around asynchronous
// data-producing calls.
//
// A Resource wraps one operation and tracks data, loading and error:
//
//	vendor := resource.New(ctx, vendors.Get)
//	v, err := vendor.Execute(ctx, "42")
//	st := vendor.State() // st.Data, st.Loading, st.Error
//
// A Paginated resource wraps a page-indexed list operation and refetches
// whenever its page changes:
//
//	list := resource.NewPaginated(ctx, vendors.Page, resource.WithPageSize(20))
//	_, _ = list.FetchPage(ctx, 1)
//	_ = list.NextPage(ctx)
//
// Both publish snapshots to subscribers after every transition and never
// publish a snapshot older than one already delivered.
package resource

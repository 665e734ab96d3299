// Package app wires the client together: logger, tracing, session store,
// HTTP pipeline, auth flows and service facades.
//
//	a, err := app.New(ctx, cfg)
//	if err != nil { ... }
//	defer a.Close(ctx)
//
//	list := app.Paginate(ctx, a, a.Services.Vendors.Pages(nil))
package app

// Package httpclient is tatva's single HTTP pipeline: one client for the
// fixed API origin with request and response interceptors.
//
// NewPipeline wires the default chain:
//
//	request:  RequestID -> SessionAuth ("Authorization: Bearer <token>")
//	response: DiagnosticLogging -> SessionExpiry (401: clear session, navigate to login)
//
// Every call ends in exactly one outcome. Failures are *Error values
// classified by Kind (unauthorized, forbidden, not_found, server_error,
// other_status, no_response, construction) and always reach the caller;
// response interceptors may observe or replace a failure but never clear
// it. There is no retry.
//
//	client, err := httpclient.NewPipeline(httpclient.Config{
//	    BaseURL: "https://api.example.com/api",
//	}, store, httpclient.NavigatorFunc(func(ctx context.Context) { ... }))
//
//	vendors, err := httpclient.Get[[]Vendor](ctx, client, "/vendors")
//
// File uploads go through Upload, which sends multipart/form-data with the
// single field "file".
package httpclient

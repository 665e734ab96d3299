// Package services provides the per-entity call groups of the procurement
// backend: vendors, requisitions, RFQs, quotations, purchase orders,
// documents and the dashboard.
//
// Each facade is a thin wrapper over the shared httpclient pipeline, so
// every call gets the same auth attachment and error classification.
// List calls return a resource.Envelope and every facade exposes a Pages
// method that can be bound directly to resource.NewPaginated:
//
//	svc := services.New(client)
//	list := resource.NewPaginated(ctx, svc.Vendors.Pages(nil))
package services

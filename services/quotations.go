package services

import (
	"context"

	"github.com/Pranshu115/tatva/endpoints"
	"github.com/Pranshu115/tatva/httpclient"
	"github.com/Pranshu115/tatva/resource"
)

// Quotations manages vendor quotations. Quotations are listed and
// submitted per RFQ.
type Quotations struct {
	client *httpclient.Client
	items  Collection[Quotation]
}

// NewQuotations creates the quotation call group.
func NewQuotations(client *httpclient.Client) *Quotations {
	return &Quotations{client: client, items: NewCollection[Quotation](client, endpoints.Quotations)}
}

// List fetches one page of the quotations received for an RFQ.
func (s *Quotations) List(ctx context.Context, rfqID ID, p resource.PageParams) (resource.Envelope[Quotation], error) {
	return list[Quotation](ctx, s.client, endpoints.QuotationsForRFQ(rfqID.String()), p, nil)
}

// Pages returns a page function over the quotations of an RFQ.
func (s *Quotations) Pages(rfqID ID) resource.PageFunc[Quotation] {
	return func(ctx context.Context, p resource.PageParams) (resource.Envelope[Quotation], error) {
		return s.List(ctx, rfqID, p)
	}
}

// Get fetches one quotation.
func (s *Quotations) Get(ctx context.Context, id ID) (Quotation, error) {
	return s.items.Get(ctx, id)
}

// Submit records a vendor's quotation for an RFQ.
func (s *Quotations) Submit(ctx context.Context, rfqID ID, in QuotationInput) (Quotation, error) {
	if err := validate(in); err != nil {
		return Quotation{}, err
	}
	return data(httpclient.Post[Quotation](ctx, s.client, endpoints.QuotationsForRFQ(rfqID.String()), in))
}

// Compare fetches the side-by-side comparison of an RFQ's quotations.
func (s *Quotations) Compare(ctx context.Context, rfqID ID) (Comparison, error) {
	return data(httpclient.Get[Comparison](ctx, s.client, endpoints.CompareQuotations(rfqID.String())))
}

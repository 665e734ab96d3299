package services

import (
	"context"

	"github.com/Pranshu115/tatva/endpoints"
	"github.com/Pranshu115/tatva/httpclient"
)

// RFQs manages requests for quotation.
type RFQs struct {
	Collection[RFQ]
}

// NewRFQs creates the RFQ call group.
func NewRFQs(client *httpclient.Client) *RFQs {
	return &RFQs{Collection: NewCollection[RFQ](client, endpoints.RFQs)}
}

// Create drafts an RFQ.
func (s *RFQs) Create(ctx context.Context, in RFQInput) (RFQ, error) {
	return s.Collection.Create(ctx, in)
}

// Update replaces a draft RFQ.
func (s *RFQs) Update(ctx context.Context, id ID, in RFQInput) (RFQ, error) {
	return s.Collection.Update(ctx, id, in)
}

// Publish sends the RFQ to its vendors.
func (s *RFQs) Publish(ctx context.Context, id ID) (RFQ, error) {
	return s.action(ctx, id, endpoints.ActionPublish, nil)
}

// Close stops accepting quotations.
func (s *RFQs) Close(ctx context.Context, id ID) (RFQ, error) {
	return s.action(ctx, id, endpoints.ActionClose, nil)
}

// SelectVendor awards the RFQ to the selected vendor.
func (s *RFQs) SelectVendor(ctx context.Context, id ID, sel VendorSelection) (RFQ, error) {
	return s.action(ctx, id, endpoints.ActionSelectVendor, sel)
}

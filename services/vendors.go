package services

import (
	"context"

	"github.com/Pranshu115/tatva/endpoints"
	"github.com/Pranshu115/tatva/httpclient"
)

// Vendors manages supplier records.
type Vendors struct {
	Collection[Vendor]
}

// NewVendors creates the vendor call group.
func NewVendors(client *httpclient.Client) *Vendors {
	return &Vendors{Collection: NewCollection[Vendor](client, endpoints.Vendors)}
}

// Create registers a vendor.
func (s *Vendors) Create(ctx context.Context, in VendorInput) (Vendor, error) {
	return s.Collection.Create(ctx, in)
}

// Update replaces a vendor's details.
func (s *Vendors) Update(ctx context.Context, id ID, in VendorInput) (Vendor, error) {
	return s.Collection.Update(ctx, id, in)
}

// Approve marks a vendor as approved for RFQs.
func (s *Vendors) Approve(ctx context.Context, id ID) (Vendor, error) {
	return s.action(ctx, id, endpoints.ActionApprove, nil)
}

// Blacklist bars a vendor from future RFQs.
func (s *Vendors) Blacklist(ctx context.Context, id ID, reason string) (Vendor, error) {
	return s.action(ctx, id, endpoints.ActionBlacklist, Reason{Reason: reason})
}

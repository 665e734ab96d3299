package services

import (
	"context"

	"github.com/Pranshu115/tatva/endpoints"
	"github.com/Pranshu115/tatva/httpclient"
)

// PurchaseOrders manages purchase orders.
type PurchaseOrders struct {
	Collection[PurchaseOrder]
}

// NewPurchaseOrders creates the purchase order call group.
func NewPurchaseOrders(client *httpclient.Client) *PurchaseOrders {
	return &PurchaseOrders{Collection: NewCollection[PurchaseOrder](client, endpoints.PurchaseOrders)}
}

// Create drafts a purchase order.
func (s *PurchaseOrders) Create(ctx context.Context, in PurchaseOrderInput) (PurchaseOrder, error) {
	return s.Collection.Create(ctx, in)
}

// Update replaces a draft purchase order.
func (s *PurchaseOrders) Update(ctx context.Context, id ID, in PurchaseOrderInput) (PurchaseOrder, error) {
	return s.Collection.Update(ctx, id, in)
}

// Issue sends the order to the vendor.
func (s *PurchaseOrders) Issue(ctx context.Context, id ID) (PurchaseOrder, error) {
	return s.action(ctx, id, endpoints.ActionIssue, nil)
}

// Cancel cancels an order.
func (s *PurchaseOrders) Cancel(ctx context.Context, id ID, reason string) (PurchaseOrder, error) {
	return s.action(ctx, id, endpoints.ActionCancel, Reason{Reason: reason})
}

package services

import (
	"context"

	"github.com/Pranshu115/tatva/endpoints"
	"github.com/Pranshu115/tatva/httpclient"
)

// Requisitions manages internal purchase requests.
type Requisitions struct {
	Collection[Requisition]
}

// NewRequisitions creates the requisition call group.
func NewRequisitions(client *httpclient.Client) *Requisitions {
	return &Requisitions{Collection: NewCollection[Requisition](client, endpoints.Requisitions)}
}

// Create drafts a requisition.
func (s *Requisitions) Create(ctx context.Context, in RequisitionInput) (Requisition, error) {
	return s.Collection.Create(ctx, in)
}

// Update replaces a draft requisition.
func (s *Requisitions) Update(ctx context.Context, id ID, in RequisitionInput) (Requisition, error) {
	return s.Collection.Update(ctx, id, in)
}

// Submit sends a draft for approval.
func (s *Requisitions) Submit(ctx context.Context, id ID) (Requisition, error) {
	return s.action(ctx, id, endpoints.ActionSubmit, nil)
}

// Approve approves a submitted requisition.
func (s *Requisitions) Approve(ctx context.Context, id ID) (Requisition, error) {
	return s.action(ctx, id, endpoints.ActionApprove, nil)
}

// Reject rejects a submitted requisition.
func (s *Requisitions) Reject(ctx context.Context, id ID, reason string) (Requisition, error) {
	return s.action(ctx, id, endpoints.ActionReject, Reason{Reason: reason})
}

package services

import "github.com/Pranshu115/tatva/httpclient"

// Services groups every facade over one client.
type Services struct {
	Vendors        *Vendors
	Requisitions   *Requisitions
	RFQs           *RFQs
	Quotations     *Quotations
	PurchaseOrders *PurchaseOrders
	Documents      *Documents
	Dashboard      *Dashboard
}

// New creates all facades over client.
func New(client *httpclient.Client) *Services {
	return &Services{
		Vendors:        NewVendors(client),
		Requisitions:   NewRequisitions(client),
		RFQs:           NewRFQs(client),
		Quotations:     NewQuotations(client),
		PurchaseOrders: NewPurchaseOrders(client),
		Documents:      NewDocuments(client),
		Dashboard:      &Dashboard{client: client},
	}
}

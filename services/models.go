package services

import "time"

// Vendor is a supplier registered with the organisation.
type Vendor struct {
	ID        ID        `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Category  string    `json:"category,omitempty"`
	Status    string    `json:"status,omitempty"`
	Rating    float64   `json:"rating,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// VendorInput is the body of vendor create and update calls.
type VendorInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty"`
	Category string `json:"category,omitempty"`
	Address  string `json:"address,omitempty"`
}

// LineItem is one requested or ordered item.
type LineItem struct {
	Description string  `json:"description" validate:"required"`
	Quantity    float64 `json:"quantity" validate:"gt=0"`
	Unit        string  `json:"unit,omitempty"`
	UnitPrice   float64 `json:"unitPrice,omitempty" validate:"gte=0"`
}

// Requisition is an internal purchase request.
type Requisition struct {
	ID          ID         `json:"id"`
	Title       string     `json:"title"`
	Department  string     `json:"department,omitempty"`
	Status      string     `json:"status,omitempty"`
	Items       []LineItem `json:"items,omitempty"`
	RequestedBy string     `json:"requestedBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt,omitzero"`
}

// RequisitionInput is the body of requisition create and update calls.
type RequisitionInput struct {
	Title       string     `json:"title" validate:"required"`
	Department  string     `json:"department,omitempty"`
	Description string     `json:"description,omitempty"`
	Items       []LineItem `json:"items" validate:"required,min=1,dive"`
}

// RFQ is a request for quotation sent to vendors.
type RFQ struct {
	ID             ID         `json:"id"`
	Title          string     `json:"title"`
	RequisitionID  ID         `json:"requisitionId,omitempty"`
	Status         string     `json:"status,omitempty"`
	Deadline       time.Time  `json:"deadline,omitzero"`
	VendorIDs      []ID       `json:"vendorIds,omitempty"`
	Items          []LineItem `json:"items,omitempty"`
	SelectedVendor ID         `json:"selectedVendorId,omitempty"`
}

// RFQInput is the body of RFQ create and update calls.
type RFQInput struct {
	Title         string     `json:"title" validate:"required"`
	RequisitionID ID         `json:"requisitionId,omitempty"`
	Deadline      time.Time  `json:"deadline,omitzero"`
	VendorIDs     []ID       `json:"vendorIds,omitempty"`
	Items         []LineItem `json:"items,omitempty" validate:"dive"`
}

// VendorSelection awards an RFQ to a vendor.
type VendorSelection struct {
	VendorID    ID     `json:"vendorId" validate:"required"`
	QuotationID ID     `json:"quotationId,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// Quotation is a vendor's answer to an RFQ.
type Quotation struct {
	ID           ID         `json:"id"`
	RFQID        ID         `json:"rfqId"`
	VendorID     ID         `json:"vendorId"`
	VendorName   string     `json:"vendorName,omitempty"`
	TotalAmount  float64    `json:"totalAmount"`
	Currency     string     `json:"currency,omitempty"`
	DeliveryDays int        `json:"deliveryDays,omitempty"`
	Items        []LineItem `json:"items,omitempty"`
	Status       string     `json:"status,omitempty"`
}

// QuotationInput is the body of a quotation submission.
type QuotationInput struct {
	VendorID     ID         `json:"vendorId" validate:"required"`
	TotalAmount  float64    `json:"totalAmount" validate:"gte=0"`
	Currency     string     `json:"currency,omitempty"`
	DeliveryDays int        `json:"deliveryDays,omitempty" validate:"gte=0"`
	Items        []LineItem `json:"items,omitempty" validate:"dive"`
	Notes        string     `json:"notes,omitempty"`
}

// Comparison ranks the quotations of one RFQ.
type Comparison struct {
	RFQID       ID          `json:"rfqId"`
	Quotations  []Quotation `json:"quotations"`
	LowestPrice ID          `json:"lowestPriceQuotationId,omitempty"`
	Fastest     ID          `json:"fastestDeliveryQuotationId,omitempty"`
}

// PurchaseOrder is an order issued to a vendor.
type PurchaseOrder struct {
	ID          ID         `json:"id"`
	Number      string     `json:"poNumber,omitempty"`
	VendorID    ID         `json:"vendorId"`
	RFQID       ID         `json:"rfqId,omitempty"`
	Status      string     `json:"status,omitempty"`
	TotalAmount float64    `json:"totalAmount"`
	Items       []LineItem `json:"items,omitempty"`
	IssuedAt    time.Time  `json:"issuedAt,omitzero"`
}

// PurchaseOrderInput is the body of purchase order create and update calls.
type PurchaseOrderInput struct {
	VendorID ID         `json:"vendorId" validate:"required"`
	RFQID    ID         `json:"rfqId,omitempty"`
	Items    []LineItem `json:"items" validate:"required,min=1,dive"`
	Notes    string     `json:"notes,omitempty"`
}

// Document is an uploaded file attached to procurement records.
type Document struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"contentType,omitempty"`
	Size        int64     `json:"size,omitempty"`
	URL         string    `json:"url,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt,omitzero"`
}

// Stats are the dashboard counters.
type Stats struct {
	TotalVendors         int     `json:"totalVendors"`
	ActiveRFQs           int     `json:"activeRfqs"`
	PendingRequisitions  int     `json:"pendingRequisitions"`
	OpenPurchaseOrders   int     `json:"openPurchaseOrders"`
	TotalSpend           float64 `json:"totalSpend"`
	QuotationsThisPeriod int     `json:"quotationsThisPeriod"`
}

// Reason is the body of actions that record why they were taken.
type Reason struct {
	Reason string `json:"reason,omitempty"`
}

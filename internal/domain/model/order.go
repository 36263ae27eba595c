package model

import (
	"time"

	apperrors "github.com/order-wizard/ow-api/internal/errors"
)

// OrderStatus tracks where an order sits in the review workflow.
type OrderStatus string

const (
	OrderStatusUncommented     OrderStatus = "uncommented"
	OrderStatusCommented       OrderStatus = "commented"
	OrderStatusCommentRevealed OrderStatus = "comment_revealed"
	OrderStatusReimbursed      OrderStatus = "reimbursed"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusUncommented, OrderStatusCommented, OrderStatusCommentRevealed, OrderStatusReimbursed:
		return true
	}
	return false
}

// Order is a tracked purchase owned by a user. The ID is client-assigned;
// order date and price are opaque display strings supplied by the client.
type Order struct {
	ID           string      `json:"id"`
	UserID       string      `json:"userId"`
	OrderNumber  string      `json:"orderNumber"`
	ProductName  string      `json:"productName"`
	OrderDate    string      `json:"orderDate"`
	ProductImage string      `json:"productImage"`
	Price        string      `json:"price"`
	Status       OrderStatus `json:"status"`
	Note         *string     `json:"note,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// CreateOrderRequest carries the client-supplied fields for a new order.
type CreateOrderRequest struct {
	ID           string      `json:"id"`
	OrderNumber  string      `json:"orderNumber"`
	ProductName  string      `json:"productName"`
	OrderDate    string      `json:"orderDate"`
	ProductImage string      `json:"productImage"`
	Price        string      `json:"price"`
	Status       OrderStatus `json:"status"`
	Note         *string     `json:"note"`
}

// Validate checks required fields.
func (r CreateOrderRequest) Validate() error {
	if r.ID == "" {
		return apperrors.ValidationField("id", "id is required")
	}
	if r.ProductName == "" {
		return apperrors.ValidationField("productName", "productName is required")
	}
	if !r.Status.Valid() {
		return apperrors.ValidationField("status", "unknown order status")
	}
	return nil
}

// UpdateOrderRequest carries a partial update of the mutable fields. Nil
// fields are left unchanged.
type UpdateOrderRequest struct {
	Status *OrderStatus `json:"status"`
	Note   *string      `json:"note"`
}

// Validate rejects empty patches and unknown statuses.
func (r UpdateOrderRequest) Validate() error {
	if r.Status == nil && r.Note == nil {
		return apperrors.Validation("update carries no fields")
	}
	if r.Status != nil && !r.Status.Valid() {
		return apperrors.ValidationField("status", "unknown order status")
	}
	return nil
}

// Apply copies the non-nil fields of r onto o.
func (r UpdateOrderRequest) Apply(o *Order) {
	if r.Status != nil {
		o.Status = *r.Status
	}
	if r.Note != nil {
		o.Note = r.Note
	}
}

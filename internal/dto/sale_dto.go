package dto

import "github.com/shopspring/decimal"

// SaleLineRequest is one cart line. Quantity must be strictly positive —
// zero or negative quantities reject the whole request before any mutation.
type SaleLineRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid4"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required,gt=0"`
}

type CreateSaleRequest struct {
	CustomerID          *string           `json:"customer_id" validate:"omitempty,uuid4"`
	Items               []SaleLineRequest `json:"items" validate:"required,min=1,dive"`
	DiscountAmount      decimal.Decimal   `json:"discount_amount" validate:"min=0"`
	DiscountType        string            `json:"discount_type" validate:"omitempty,oneof=none senior pwd points"`
	PaymentMethod       string            `json:"payment_method" validate:"required,oneof=cash gcash card"`
	BranchID            string            `json:"branch_id" validate:"required,uuid4"`
	PharmacistSessionID string            `json:"pharmacist_session_id" validate:"required,uuid4"`
}

type CreateSaleResponse struct {
	SaleID        string `json:"sale_id"`
	InvoiceNumber string `json:"invoice_number"`
	PointsEarned  int    `json:"points_earned"`
}

type VoidSaleRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type SaleResponse struct {
	ID             string             `json:"id"`
	InvoiceNumber  string             `json:"invoice_number"`
	CustomerID     *string            `json:"customer_id,omitempty"`
	BranchID       string             `json:"branch_id"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	DiscountType   string             `json:"discount_type"`
	PaymentMethod  string             `json:"payment_method"`
	PaymentStatus  string             `json:"payment_status"`
	Status         string             `json:"status"`
	PointsEarned   int                `json:"points_earned"`
	PointsRedeemed int                `json:"points_redeemed"`
	Items          []SaleItemResponse `json:"items"`
	CreatedAt      string             `json:"created_at"`
}

type SaleFilter struct {
	BranchID  string `form:"branch_id"`
	SessionID string `form:"session_id"`
	Status    string `form:"status"`
	DateFrom  string `form:"date_from"`
	DateTo    string `form:"date_to"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

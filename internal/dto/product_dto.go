package dto

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Brand       *string         `json:"brand"`
	Description *string         `json:"description"`
	CategoryID  string          `json:"category_id" validate:"required,uuid4"`
	Price       decimal.Decimal `json:"price" validate:"required,gt=0"`
	Critical    int             `json:"critical" validate:"min=0"`
	// Barcode is optional; when empty the server generates one from the
	// category prefix and its barcode counter.
	Barcode *string `json:"barcode"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Brand       *string          `json:"brand"`
	Description *string          `json:"description"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid4"`
	Price       *decimal.Decimal `json:"price"`
	Critical    *int             `json:"critical"`
}

type ProductResponse struct {
	ID           string          `json:"id"`
	Barcode      string          `json:"barcode"`
	Name         string          `json:"name"`
	Brand        *string         `json:"brand,omitempty"`
	Description  *string         `json:"description,omitempty"`
	CategoryID   *string         `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Critical     int             `json:"critical"`
	IsActive     bool            `json:"is_active"`
}

type ProductFilter struct {
	Name       string `form:"name"`
	Barcode    string `form:"barcode"`
	CategoryID string `form:"category_id"`
	Active     string `form:"active"` // "false" = inactive, "all" = both, default active
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

package dto

type SetStockRequest struct {
	BranchID   string  `json:"branch_id" validate:"required,uuid4"`
	ProductID  string  `json:"product_id" validate:"required,uuid4"`
	Stock      int     `json:"stock" validate:"min=0"`
	ExpiryDate *string `json:"expiry_date"` // YYYY-MM-DD
}

type BranchStockResponse struct {
	BranchID    string  `json:"branch_id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Barcode     string  `json:"barcode"`
	Stock       int     `json:"stock"`
	Critical    int     `json:"critical"`
	ExpiryDate  *string `json:"expiry_date,omitempty"`
}

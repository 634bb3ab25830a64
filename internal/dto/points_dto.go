package dto

type RedeemPointsRequest struct {
	CustomerID     string `json:"customer_id" validate:"required,uuid4"`
	PointsToRedeem int    `json:"points_to_redeem" validate:"required,gt=0"`
	SaleID         string `json:"sale_id" validate:"required,uuid4"`
}

type RedeemPointsResponse struct {
	NewBalance int `json:"new_balance"`
}

type PointsTransactionResponse struct {
	ID              string  `json:"id"`
	PointsAmount    int     `json:"points_amount"`
	TransactionType string  `json:"transaction_type"`
	ReferenceSaleID *string `json:"reference_transaction_id,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type PointsBalanceResponse struct {
	CustomerID          string                      `json:"customer_id"`
	PointsBalance       int                         `json:"points_balance"`
	TotalPointsEarned   int                         `json:"total_points_earned"`
	TotalPointsRedeemed int                         `json:"total_points_redeemed"`
	Transactions        []PointsTransactionResponse `json:"transactions"`
}

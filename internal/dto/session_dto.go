package dto

import "github.com/shopspring/decimal"

// SessionSummaryResponse is what the reconciliation screen shows before the
// pharmacist declares their counted cash: the system-computed totals.
type SessionSummaryResponse struct {
	PharmacistSessionID string          `json:"pharmacist_session_id"`
	SalesSessionID      string          `json:"sales_session_id"`
	BranchID            string          `json:"branch_id"`
	StartTime           string          `json:"start_time"`
	SaleCount           int64           `json:"sale_count"`
	SystemTotal         decimal.Decimal `json:"system_total"`
}

type SaveReconciliationRequest struct {
	PharmacistSessionID string          `json:"pharmacist_session_id" validate:"required,uuid4"`
	DeclaredCash        decimal.Decimal `json:"declared_cash" validate:"min=0"`
	DeclaredNonCash     decimal.Decimal `json:"declared_non_cash" validate:"min=0"`
	Notes               *string         `json:"notes"`
}

type ReconciliationResponse struct {
	PharmacistSessionID string          `json:"pharmacist_session_id"`
	SystemTotal         decimal.Decimal `json:"system_total"`
	DeclaredTotal       decimal.Decimal `json:"declared_total"`
	Discrepancy         decimal.Decimal `json:"discrepancy"`
	EndTime             string          `json:"end_time"`
}

type EndSessionResponse struct {
	SalesSessionID string          `json:"sales_session_id"`
	TotalSales     decimal.Decimal `json:"total_sales"`
	EndTime        string          `json:"end_time"`
}

package dto

// Category / Branch / Customer CRUD shapes, plus the shared archive/restore
// request. These entities all share the twin-table archival contract.

type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required"`
	Prefix      string  `json:"prefix" validate:"required,alphanum,max=10"`
	Description *string `json:"description"`
}

type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Prefix      string  `json:"prefix"`
	Description *string `json:"description,omitempty"`
}

type CreateBranchRequest struct {
	Code    string  `json:"branch_code" validate:"required,alphanum,max=20"`
	Name    string  `json:"name" validate:"required"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

type BranchResponse struct {
	ID         string  `json:"id"`
	Code       string  `json:"branch_code"`
	Name       string  `json:"name"`
	Address    *string `json:"address,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	IsActive   bool    `json:"is_active"`
	IsArchived bool    `json:"is_archived"`
}

type CreateCustomerRequest struct {
	Name         string  `json:"name" validate:"required"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email" validate:"omitempty,email"`
	CardID       *string `json:"card_id"`
	DiscountType string  `json:"discount_type" validate:"omitempty,oneof=none senior pwd"`
	DiscountID   *string `json:"discount_id"`
}

type CustomerResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Phone        *string `json:"phone,omitempty"`
	Email        *string `json:"email,omitempty"`
	CardID       *string `json:"card_id,omitempty"`
	DiscountType string  `json:"discount_type"`
	IsActive     bool    `json:"is_active"`
}

// ArchiveRequest accompanies every archive endpoint. Reason is mandatory and
// is validated before any transaction opens.
type ArchiveRequest struct {
	ArchivedBy string `json:"archived_by" validate:"required,uuid4"`
	Reason     string `json:"reason" validate:"required"`
}

// ArchiveResponse echoes how many rows the operation touched (the entity row
// plus carried-over dependents).
type ArchiveResponse struct {
	Affected int `json:"affected"`
}

package dto

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Role     string  `json:"role"`
	BranchID *string `json:"branch_id,omitempty"`
	IsActive bool    `json:"is_active"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        UserResponse `json:"user"`
}

// POSLoginRequest is the pharmacist terminal login: email + numeric PIN.
// A successful login opens a SalesSession and a PharmacistSession.
type POSLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	PIN      string `json:"pin" validate:"required,len=4,numeric"`
	BranchID string `json:"branch_id" validate:"required,uuid4"`
}

type POSLoginResponse struct {
	AccessToken    string       `json:"access_token"`
	SessionID      string       `json:"session_id"`
	SalesSessionID string       `json:"sales_session_id"`
	User           UserResponse `json:"user"`
}

type CreateUserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Name     string  `json:"name" validate:"required"`
	Password string  `json:"password" validate:"required,min=8"`
	PIN      *string `json:"pin" validate:"omitempty,len=4,numeric"`
	Role     string  `json:"role" validate:"required,oneof=pharmacist manager admin"`
	BranchID *string `json:"branch_id" validate:"omitempty,uuid4"`
}

type UpdateUserRequest struct {
	Name     string  `json:"name"`
	Password string  `json:"password" validate:"omitempty,min=8"`
	PIN      *string `json:"pin" validate:"omitempty,len=4,numeric"`
	Role     string  `json:"role" validate:"omitempty,oneof=pharmacist manager admin"`
	BranchID *string `json:"branch_id" validate:"omitempty,uuid4"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

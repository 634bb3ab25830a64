package dto

type PrescriptionItemRequest struct {
	ProductID string  `json:"product_id" validate:"required,uuid4"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	Dosage    *string `json:"dosage"`
}

type CreatePrescriptionRequest struct {
	CustomerID string                    `json:"customer_id" validate:"required,uuid4"`
	DoctorName string                    `json:"doctor_name" validate:"required"`
	Image      []byte                    `json:"image"` // base64-decoded by the JSON codec
	ExpiresAt  *string                   `json:"expires_at"` // YYYY-MM-DD
	Items      []PrescriptionItemRequest `json:"items" validate:"required,min=1,dive"`
}

type PrescriptionItemResponse struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Dosage      *string `json:"dosage,omitempty"`
}

type PrescriptionResponse struct {
	ID         string                     `json:"id"`
	CustomerID string                     `json:"customer_id"`
	DoctorName string                     `json:"doctor_name"`
	Status     string                     `json:"status"`
	ExpiresAt  *string                    `json:"expires_at,omitempty"`
	Items      []PrescriptionItemResponse `json:"items"`
	CreatedAt  string                     `json:"created_at"`
}

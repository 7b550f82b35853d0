package customer

// Requests

type CreateCustomerRequest struct {
	FirstName string  `json:"first_name" validate:"required,max=100"`
	LastName  string  `json:"last_name" validate:"required,max=100"`
	Email     string  `json:"email" validate:"required,email,max=255"`
	Phone     *string `json:"phone" validate:"omitempty,max=50"`
	Address   *string `json:"address"`
}

// UpdateCustomerRequest is a sparse update: only non-nil fields are
// written. Unknown JSON keys are ignored by the typed decode.
type UpdateCustomerRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	Phone     *string `json:"phone" validate:"omitempty,max=50"`
	Address   *string `json:"address"`
}

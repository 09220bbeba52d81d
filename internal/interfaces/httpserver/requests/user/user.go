package userrequests

// CreateUserRequest is the legacy provisioning payload. Role defaults
// to customer when omitted.
type CreateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"omitempty,oneof=customer admin"`
}

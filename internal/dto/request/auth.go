package request

// RegisterRequest carries the registration form. Phone is the required
// identity; email is optional and only drives code delivery.
type RegisterRequest struct {
	Phone           string  `json:"phone" validate:"required,numeric,min=9,max=15"`
	Email           *string `json:"email,omitempty" validate:"omitempty,email"`
	Password        string  `json:"password" validate:"required,min=6"`
	PasswordConfirm string  `json:"password_confirm" validate:"required,min=6"`
}

type VerifyRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// LoginRequest takes a single login field: all digits means phone number,
// anything else is treated as an email address.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

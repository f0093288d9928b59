package customer

// Customer is a registered end-user identified by email.
type Customer struct {
	Email string `json:"email" db:"email"`
}

type signupRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

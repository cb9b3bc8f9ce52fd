package request

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	FirstName string  `json:"first_name" binding:"required,max=255"`
	LastName  string  `json:"last_name" binding:"required,max=255"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents the token refresh request body
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest represents the change password request body
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// UpdateProfileRequest represents the profile update request body
type UpdateProfileRequest struct {
	FirstName  string  `json:"first_name" binding:"omitempty,max=255"`
	LastName   string  `json:"last_name" binding:"omitempty,max=255"`
	Phone      *string `json:"phone" binding:"omitempty,max=50"`
	Address    *string `json:"address"`
	City       *string `json:"city" binding:"omitempty,max=255"`
	PostalCode *string `json:"postal_code" binding:"omitempty,max=20"`
}

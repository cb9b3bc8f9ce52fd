package request

// CreateMessageRequest represents the contact form request body
type CreateMessageRequest struct {
	Name    string  `json:"name" binding:"required,max=255"`
	Email   string  `json:"email" binding:"required,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Subject string  `json:"subject" binding:"required,max=255"`
	Body    string  `json:"body" binding:"required"`
}

// UpdateMessageStatusRequest represents the message status change body
type UpdateMessageStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateUserRoleRequest represents the role change request body
type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

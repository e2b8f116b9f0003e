package request

// CreateClientRequest represents a create client request
type CreateClientRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Company  *string `json:"company"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Industry *string `json:"industry"`
	Notes    *string `json:"notes"`
}

// UpdateClientRequest represents an update client request
type UpdateClientRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Company  *string `json:"company"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Industry *string `json:"industry"`
	Notes    *string `json:"notes"`
}

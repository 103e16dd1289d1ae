package request

type CreateClientRequest struct {
	Name    string  `json:"name" binding:"required"`
	Phone   string  `json:"phone" binding:"required"`
	Email   string  `json:"email" binding:"omitempty,email"`
	Comment *string `json:"comment,omitempty"`
}

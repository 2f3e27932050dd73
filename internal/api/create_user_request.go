package api

// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	Email     string `json:"email" form:"email" validate:"required,email" example:"alice@example.com"`
	Password  string `json:"password" form:"password" validate:"required,min=8" example:"Secret123!"`
	FirstName string `json:"first_name" form:"first_name" validate:"required" example:"Alice"`
	LastName  string `json:"last_name" form:"last_name" validate:"required" example:"Smith"`
	Phone     string `json:"phone" form:"phone" example:"0987654321"`
}

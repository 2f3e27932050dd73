package api

// UpdateUserRequest 所有欄位皆可省略，省略代表不變更
// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	Email     *string `json:"email" form:"email" validate:"omitempty,email" example:"alice@example.com"`
	Password  *string `json:"password" form:"password" validate:"omitempty,min=8" example:"Secret123!"`
	FirstName *string `json:"first_name" form:"first_name" example:"Alice"`
	LastName  *string `json:"last_name" form:"last_name" example:"Smith"`
	Phone     *string `json:"phone" form:"phone" example:"0987654321"`
}

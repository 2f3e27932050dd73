// File: internal/api/token_request.go
package api

// swagger:model api.TokenRequest
type TokenRequest struct {
	Email    string `json:"email" form:"email" validate:"required" example:"alice@example.com"`
	Password string `json:"password" form:"password" validate:"required" example:"Secret123!"`
}

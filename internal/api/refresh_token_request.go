package api

// swagger:model api.RefreshTokenRequest
type RefreshTokenRequest struct {
	Refresh string `json:"refresh" form:"refresh" validate:"required" example:"eyJhbGciOi..."`
}

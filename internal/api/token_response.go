package api

import "user-console/internal/model"

// UserSummary 為登入回應附帶的精簡使用者資料，免去客戶端再打一次 API
// swagger:model api.UserSummary
type UserSummary struct {
	ID        int    `json:"id" example:"1"`
	Email     string `json:"email" example:"alice@example.com"`
	FirstName string `json:"first_name" example:"Alice"`
	LastName  string `json:"last_name" example:"Smith"`
}

// swagger:model api.TokenResponse
type TokenResponse struct {
	Access  string      `json:"access" example:"eyJhbGciOi..."`
	Refresh string      `json:"refresh" example:"eyJhbGciOi..."`
	User    UserSummary `json:"user"`
}

func NewUserSummary(u model.User) UserSummary {
	return UserSummary{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

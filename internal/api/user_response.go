package api

import (
	"time"

	"user-console/internal/model"
)

// UserResponse 序列化後的使用者，不含密碼與權限旗標
// swagger:model api.UserResponse
type UserResponse struct {
	ID         int       `json:"id" example:"1"`
	Email      string    `json:"email" example:"alice@example.com"`
	FirstName  string    `json:"first_name" example:"Alice"`
	LastName   string    `json:"last_name" example:"Smith"`
	Phone      string    `json:"phone" example:"0987654321"`
	DateJoined time.Time `json:"date_joined" example:"2025-05-01T15:04:05Z"`
}

func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Phone:      u.Phone,
		DateJoined: u.DateJoined,
	}
}

package api

// swagger:model api.UserListResponse
type UserListResponse struct {
	Data []UserResponse `json:"data"`
}

package api

// UserMessageResponse 帶訊息與序列化使用者的成功回應
// swagger:model api.UserMessageResponse
type UserMessageResponse struct {
	Mensaje string       `json:"mensaje" example:"El usuario se creó correctamente"`
	Data    UserResponse `json:"data"`
}

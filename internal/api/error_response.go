package api

// ErrorResponse 全域錯誤響應模型
// Error 在驗證失敗時是欄位對訊息的 map，在內部錯誤時是錯誤字串
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Mensaje string `json:"mensaje"`
	Error   any    `json:"error,omitempty"`
}

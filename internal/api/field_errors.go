package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// FieldErrors 將 validator 的錯誤攤平為欄位對訊息的 map
// 欄位名取決於 validator 的 TagNameFunc（main 註冊為 json tag）
// 非 validator 錯誤回傳 nil，呼叫端應改用錯誤字串
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = "this field is required"
		case "email":
			fields[fe.Field()] = "enter a valid email address"
		case "min":
			fields[fe.Field()] = "ensure this field has at least " + fe.Param() + " characters"
		default:
			fields[fe.Field()] = "invalid value"
		}
	}
	return fields
}

// File: internal/service/user.go
package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"user-console/internal/database"
	"user-console/internal/model"
	"user-console/internal/store"

	"github.com/jackc/pgx/v5/pgconn"
)

// MinPasswordLength 為密碼最小長度
const MinPasswordLength = 8

const uniqueViolation = "23505"

// ValidationError 帶欄位對應錯誤訊息，handler 以 400 回應
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// CreateUserParams 為建立使用者時可接受的欄位
type CreateUserParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// UpdateUserParams 為部分更新，nil 表示不變更該欄位
type UpdateUserParams struct {
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
	Phone     *string
}

// NormalizeEmail 去除前後空白並整個轉為小寫
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser 驗證欄位、正規化 email、哈希密碼後寫入新使用者
// email 重複（包含並發下的唯一約束違反）回傳 *ValidationError
func CreateUser(ctx context.Context, db database.DB, p CreateUserParams) (*model.User, error) {
	fields := map[string]string{}

	p.Email = NormalizeEmail(p.Email)
	if p.Email == "" {
		fields["email"] = "this field is required"
	} else if _, err := mail.ParseAddress(p.Email); err != nil {
		fields["email"] = "enter a valid email address"
	}
	if p.Password == "" {
		fields["password"] = "this field is required"
	} else if len(p.Password) < MinPasswordLength {
		fields["password"] = "ensure this field has at least 8 characters"
	}
	if p.FirstName == "" {
		fields["first_name"] = "this field is required"
	}
	if p.LastName == "" {
		fields["last_name"] = "this field is required"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	hash, err := HashPassword(p.Password)
	if err != nil {
		return nil, err
	}

	user, err := store.CreateUser(ctx, db, &model.User{
		Email:        p.Email,
		PasswordHash: hash,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Phone:        p.Phone,
		IsActive:     true,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &ValidationError{Fields: map[string]string{"email": "Error el correo ya existe"}}
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser 套用部分更新到既有使用者，若帶密碼則重新哈希
// 不動 ID 與 DateJoined
func UpdateUser(ctx context.Context, db database.DB, user *model.User, p UpdateUserParams) (*model.User, error) {
	fields := map[string]string{}

	if p.Email != nil {
		email := NormalizeEmail(*p.Email)
		if email == "" {
			fields["email"] = "this field is required"
		} else if _, err := mail.ParseAddress(email); err != nil {
			fields["email"] = "enter a valid email address"
		} else {
			user.Email = email
		}
	}
	if p.Password != nil && len(*p.Password) < MinPasswordLength {
		fields["password"] = "ensure this field has at least 8 characters"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if p.FirstName != nil {
		user.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		user.LastName = *p.LastName
	}
	if p.Phone != nil {
		user.Phone = *p.Phone
	}
	if p.Password != nil {
		hash, err := HashPassword(*p.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := store.UpdateUser(ctx, db, user); err != nil {
		if isUniqueViolation(err) {
			return nil, &ValidationError{Fields: map[string]string{"email": "Error el correo ya existe"}}
		}
		return nil, err
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

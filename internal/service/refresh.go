// File: internal/service/refresh.go
package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"user-console/internal/cache"
	"user-console/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RefreshTokenTTL 為更新令牌的有效時間
const RefreshTokenTTL = 30 * 24 * time.Hour

const (
	refreshTokenType = "refresh"
	refreshKeyPrefix = "auth:refresh:"
)

// IssueRefreshToken 簽發帶 uuid jti 的 refresh JWT，並將 jti 寫入快取以便撤銷
func IssueRefreshToken(ctx context.Context, rdb cache.Cache, user model.User, ttl time.Duration) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", fmt.Errorf("JWT_SECRET not set")
	}

	now := time.Now()
	jti := uuid.NewString()
	claims := CustomClaims{
		UserID:      user.ID,
		Email:       user.Email,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
		TokenType:   refreshTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}
	if err := rdb.Set(ctx, refreshKeyPrefix+jti, user.ID, ttl).Err(); err != nil {
		return "", err
	}
	return signed, nil
}

// ValidateRefreshToken 驗證 refresh JWT 並消耗其 jti（rotation：一個 jti 只能兌換一次）
func ValidateRefreshToken(ctx context.Context, rdb cache.Cache, tokenString string) (*CustomClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.TokenType != refreshTokenType || claims.ID == "" {
		return nil, fmt.Errorf("not a refresh token")
	}

	key := refreshKeyPrefix + claims.ID
	if err := rdb.Get(ctx, key).Err(); err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("refresh token revoked or expired")
		}
		return nil, err
	}
	if err := rdb.Del(ctx, key).Err(); err != nil {
		return nil, err
	}
	return claims, nil
}

// File: internal/handler/auth/token.go
package auth

import (
	"net/http"

	"user-console/internal/api"
	"user-console/internal/cache"
	"user-console/internal/database"
	"user-console/internal/service"
	"user-console/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	authenticateUser     = service.AuthenticateUser
	issueAccessToken     = service.IssueAccessToken
	issueRefreshToken    = service.IssueRefreshToken
	validateRefreshToken = service.ValidateRefreshToken
	getUserByID          = store.GetUserByID
)

// @Summary     Obtain token pair
// @Description 使用 email 與密碼換取 access/refresh 令牌與使用者摘要
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       email    formData string true "使用者 Email"
// @Param       password formData string true "使用者密碼"
// @Success     200 {object} api.TokenResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /token [post]
func TokenHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var req api.TokenRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Mensaje: "Se requiere email y contraseña"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Mensaje: "Se requiere email y contraseña"})
		}

		// 憑證錯誤以 400 回應：是客戶端輸入問題，不是伺服器錯誤
		user, err := authenticateUser(ctx, db, req.Email, req.Password)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Mensaje: "Credenciales incorrectas o usuario inactivo"})
		}

		access, err := issueAccessToken(*user, service.AccessTokenTTL)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Mensaje: "failed to issue token"})
		}
		refresh, err := issueRefreshToken(ctx, rdb, *user, service.RefreshTokenTTL)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Mensaje: "failed to issue refresh token"})
		}

		return c.JSON(http.StatusOK, api.TokenResponse{
			Access:  access,
			Refresh: refresh,
			User:    api.NewUserSummary(*user),
		})
	}
}

// @Summary     Refresh token pair
// @Description 以 refresh 令牌換發新的 access/refresh 令牌（舊 refresh 令牌作廢）
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       refresh formData string true "Refresh 令牌"
// @Success     200 {object} api.TokenResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /token/refresh [post]
func RefreshTokenHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var req api.RefreshTokenRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Mensaje: "Se requiere el token de refresco"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Mensaje: "Se requiere el token de refresco"})
		}

		claims, err := validateRefreshToken(ctx, rdb, req.Refresh)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Mensaje: "invalid refresh token"})
		}

		// 重新讀取使用者：已刪除或停用的帳號不得續期
		user, err := getUserByID(ctx, db, claims.UserID)
		if err != nil || !user.IsActive {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Mensaje: "invalid refresh token"})
		}

		access, err := issueAccessToken(*user, service.AccessTokenTTL)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Mensaje: "failed to issue token"})
		}
		refresh, err := issueRefreshToken(ctx, rdb, *user, service.RefreshTokenTTL)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Mensaje: "failed to issue refresh token"})
		}

		return c.JSON(http.StatusOK, api.TokenResponse{
			Access:  access,
			Refresh: refresh,
			User:    api.NewUserSummary(*user),
		})
	}
}

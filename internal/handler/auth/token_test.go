package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"user-console/internal/cache"
	"user-console/internal/database"
	"user-console/internal/model"
	"user-console/internal/service"
	"user-console/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

func newTokenCtx(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func restore() {
	authenticateUser = service.AuthenticateUser
	issueAccessToken = service.IssueAccessToken
	issueRefreshToken = service.IssueRefreshToken
	validateRefreshToken = service.ValidateRefreshToken
	getUserByID = store.GetUserByID
}

func TestTokenHandler(t *testing.T) {
	e := echo.New()
	sample := &model.User{ID: 1, Email: "a@x.com", FirstName: "A", LastName: "B", IsActive: true}

	t.Run("bind error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		ctx, rec := newTokenCtx(e, "{bad")
		require.NoError(t, TokenHandler(&database.FakeDB{}, &cache.FakeCache{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "Se requiere email y contraseña")
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{err: errors.New("required")}
		ctx, rec := newTokenCtx(e, `{"email":"a@x.com"}`)
		require.NoError(t, TokenHandler(&database.FakeDB{}, &cache.FakeCache{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "Se requiere email y contraseña")
	})

	t.Run("bad credentials is 400 not 401", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		authenticateUser = func(context.Context, database.DB, string, string) (*model.User, error) {
			return nil, service.ErrInvalidCredentials
		}
		ctx, rec := newTokenCtx(e, `{"email":"a@x.com","password":"wrongpass"}`)
		require.NoError(t, TokenHandler(&database.FakeDB{}, &cache.FakeCache{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := rec.Body.String()
		require.Contains(t, body, "Credenciales incorrectas o usuario inactivo")
		require.NotContains(t, body, "access")
	})

	t.Run("access token issue failure", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		authenticateUser = func(context.Context, database.DB, string, string) (*model.User, error) { return sample, nil }
		issueAccessToken = func(model.User, time.Duration) (string, error) { return "", errors.New("no secret") }
		ctx, rec := newTokenCtx(e, `{"email":"a@x.com","password":"longpass1"}`)
		require.NoError(t, TokenHandler(&database.FakeDB{}, &cache.FakeCache{})(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("refresh token issue failure", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		authenticateUser = func(context.Context, database.DB, string, string) (*model.User, error) { return sample, nil }
		issueAccessToken = func(model.User, time.Duration) (string, error) { return "acc", nil }
		issueRefreshToken = func(context.Context, cache.Cache, model.User, time.Duration) (string, error) {
			return "", errors.New("redis down")
		}
		ctx, rec := newTokenCtx(e, `{"email":"a@x.com","password":"longpass1"}`)
		require.NoError(t, TokenHandler(&database.FakeDB{}, &cache.FakeCache{})(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		authenticateUser = func(_ context.Context, _ database.DB, email, password string) (*model.User, error) {
			require.Equal(t, "a@x.com", email)
			require.Equal(t, "longpass1", password)
			return sample, nil
		}
		issueAccessToken = func(u model.User, ttl time.Duration) (string, error) {
			require.Equal(t, service.AccessTokenTTL, ttl)
			return "acc", nil
		}
		issueRefreshToken = func(_ context.Context, _ cache.Cache, u model.User, ttl time.Duration) (string, error) {
			require.Equal(t, service.RefreshTokenTTL, ttl)
			return "ref", nil
		}
		ctx, rec := newTokenCtx(e, `{"email":"a@x.com","password":"longpass1"}`)
		require.NoError(t, TokenHandler(&database.FakeDB{}, &cache.FakeCache{})(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		require.Contains(t, body, "\"access\":\"acc\"")
		require.Contains(t, body, "\"refresh\":\"ref\"")
		require.Contains(t, body, "\"user\":{")
		require.Contains(t, body, "\"first_name\":\"A\"")
		require.NotContains(t, body, "password")
	})
}

func TestRefreshTokenHandler(t *testing.T) {
	e := echo.New()
	sample := &model.User{ID: 1, Email: "a@x.com", IsActive: true}

	t.Run("validate error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{err: errors.New("required")}
		ctx, rec := newTokenCtx(e, `{}`)
		require.NoError(t, RefreshTokenHandler(&database.FakeDB{}, &cache.FakeCache{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		validateRefreshToken = func(context.Context, cache.Cache, string) (*service.CustomClaims, error) {
			return nil, errors.New("revoked")
		}
		ctx, rec := newTokenCtx(e, `{"refresh":"tok"}`)
		require.NoError(t, RefreshTokenHandler(&database.FakeDB{}, &cache.FakeCache{})(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("deleted user cannot refresh", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		validateRefreshToken = func(context.Context, cache.Cache, string) (*service.CustomClaims, error) {
			return &service.CustomClaims{UserID: 1}, nil
		}
		getUserByID = func(context.Context, database.DB, int) (*model.User, error) {
			return nil, errors.New("no rows")
		}
		ctx, rec := newTokenCtx(e, `{"refresh":"tok"}`)
		require.NoError(t, RefreshTokenHandler(&database.FakeDB{}, &cache.FakeCache{})(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("deactivated user cannot refresh", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		validateRefreshToken = func(context.Context, cache.Cache, string) (*service.CustomClaims, error) {
			return &service.CustomClaims{UserID: 1}, nil
		}
		getUserByID = func(context.Context, database.DB, int) (*model.User, error) {
			return &model.User{ID: 1, IsActive: false}, nil
		}
		ctx, rec := newTokenCtx(e, `{"refresh":"tok"}`)
		require.NoError(t, RefreshTokenHandler(&database.FakeDB{}, &cache.FakeCache{})(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("success rotates pair", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		validateRefreshToken = func(_ context.Context, _ cache.Cache, tok string) (*service.CustomClaims, error) {
			require.Equal(t, "old-ref", tok)
			return &service.CustomClaims{UserID: 1}, nil
		}
		getUserByID = func(context.Context, database.DB, int) (*model.User, error) { return sample, nil }
		issueAccessToken = func(model.User, time.Duration) (string, error) { return "new-acc", nil }
		issueRefreshToken = func(context.Context, cache.Cache, model.User, time.Duration) (string, error) {
			return "new-ref", nil
		}
		ctx, rec := newTokenCtx(e, `{"refresh":"old-ref"}`)
		require.NoError(t, RefreshTokenHandler(&database.FakeDB{}, &cache.FakeCache{})(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "\"access\":\"new-acc\"")
		require.Contains(t, rec.Body.String(), "\"refresh\":\"new-ref\"")
	})
}

package users

import (
	"errors"
	"net/http"
	"strconv"

	"user-console/internal/api"
	"user-console/internal/database"
	"user-console/internal/service"
	"user-console/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	listUsers   = store.ListUsers
	getUserByID = store.GetUserByID
	createUser  = service.CreateUser
	updateUser  = service.UpdateUser
	deleteUser  = store.DeleteUser
)

// @Summary     List all users
// @Description 回傳所有使用者，包在 data 陣列內，無分頁
// @Tags        users
// @Produce     json
// @Success     200 {object} api.UserListResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Mensaje: "Error al listar los usuarios", Error: err.Error()})
		}
		data := make([]api.UserResponse, 0, len(users))
		for _, u := range users {
			data = append(data, api.NewUserResponse(u))
		}
		return c.JSON(http.StatusOK, api.UserListResponse{Data: data})
	}
}

// @Summary     Create a new user
// @Description 建立新使用者，email 轉小寫，密碼以 bcrypt 哈希後儲存
// @Tags        users
// @Accept      json
// @Produce     json
// @Success     201 {object} api.UserMessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users [post]
func CreateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Mensaje: "Error al crear el usuario", Error: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, validationError("Error al crear el usuario", err))
		}

		user, err := createUser(c.Request().Context(), db, service.CreateUserParams{
			Email:     req.Email,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
		})
		if err != nil {
			var verr *service.ValidationError
			if errors.As(err, &verr) {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Mensaje: "Error al crear el usuario", Error: verr.Fields})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Mensaje: "Error interno al crear el usuario", Error: err.Error()})
		}

		return c.JSON(http.StatusCreated, api.UserMessageResponse{
			Mensaje: "El usuario se creó correctamente",
			Data:    api.NewUserResponse(*user),
		})
	}
}

// @Summary     Update a user by ID
// @Description 部分更新使用者欄位，帶密碼時重新哈希
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id path int true "使用者 ID"
// @Success     200 {object} api.UserMessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/{id} [put]
func UpdateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Mensaje: "invalid user ID"})
		}

		var req api.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Mensaje: "Error al actualizar el usuario", Error: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, validationError("Error al actualizar el usuario", err))
		}

		user, err := getUserByID(c.Request().Context(), db, id)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Mensaje: "El usuario no existe"})
		}

		updated, err := updateUser(c.Request().Context(), db, user, service.UpdateUserParams{
			Email:     req.Email,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
		})
		if err != nil {
			var verr *service.ValidationError
			if errors.As(err, &verr) {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Mensaje: "Error al actualizar el usuario", Error: verr.Fields})
			}
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Mensaje: "El usuario no existe"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Mensaje: "Error interno al actualizar el usuario", Error: err.Error()})
		}

		return c.JSON(http.StatusOK, api.UserMessageResponse{
			Mensaje: "El usuario se actualizó correctamente",
			Data:    api.NewUserResponse(*updated),
		})
	}
}

// @Summary     Delete a user by ID
// @Description 刪除使用者，成功回 204 無內文
// @Tags        users
// @Param       id path int true "使用者 ID"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/{id} [delete]
func DeleteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Mensaje: "invalid user ID"})
		}
		if err := deleteUser(c.Request().Context(), db, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Mensaje: "El usuario no existe"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Mensaje: "Error interno al eliminar el usuario", Error: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// validationError 將 validator 錯誤轉為欄位 map，轉不了就帶錯誤字串
func validationError(mensaje string, err error) api.ErrorResponse {
	if fields := api.FieldErrors(err); fields != nil {
		return api.ErrorResponse{Mensaje: mensaje, Error: fields}
	}
	return api.ErrorResponse{Mensaje: mensaje, Error: err.Error()}
}

package users

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"user-console/internal/api"
	"user-console/internal/database"

	"github.com/labstack/echo/v4"
)

// csvTimeLayout date_joined 在匯出檔中的格式
const csvTimeLayout = "2006-01-02 15:04:05"

// @Summary     Export users to CSV
// @Description 將所有使用者匯出為 users.csv 附件，整張表一次寫入記憶體
// @Tags        users
// @Produce     text/csv
// @Success     200 "CSV attachment"
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/export/csv [get]
func ExportUsersCSVHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Mensaje: "Error al exportar los usuarios", Error: err.Error()})
		}

		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.Write([]string{"id", "email", "first_name", "last_name", "phone", "date_joined"}); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Mensaje: "Error al exportar los usuarios", Error: err.Error()})
		}
		for _, u := range users {
			joined := ""
			if !u.DateJoined.IsZero() {
				joined = u.DateJoined.Format(csvTimeLayout)
			}
			record := []string{
				strconv.Itoa(u.ID),
				u.Email,
				u.FirstName,
				u.LastName,
				u.Phone,
				joined,
			}
			if err := w.Write(record); err != nil {
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Mensaje: "Error al exportar los usuarios", Error: err.Error()})
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Mensaje: "Error al exportar los usuarios", Error: err.Error()})
		}

		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="users.csv"`)
		return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
	}
}

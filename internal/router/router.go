// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"user-console/internal/cache"
	"user-console/internal/database"
	"user-console/internal/handler"
	"user-console/internal/handler/auth"
	"user-console/internal/handler/users"
	"user-console/internal/middleware"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache) {
	api := e.Group("/api")

	// 健康檢查（需登入）
	api.GET("/ping", handler.PingHandler(db, rdb), middleware.RequireAuth)

	// 取得與更新令牌
	api.POST("/token", auth.TokenHandler(db, rdb))
	api.POST("/token/refresh", auth.RefreshTokenHandler(db, rdb))

	// Users CRUD（建立也需通過認證：管理端供裝流程，非公開註冊）
	apiUsers := api.Group("/users", middleware.RequireAuth)
	apiUsers.GET("", users.ListUsersHandler(db))
	apiUsers.POST("", users.CreateUserHandler(db))
	apiUsers.PUT("/:id", users.UpdateUserHandler(db))
	apiUsers.DELETE("/:id", users.DeleteUserHandler(db))

	// CSV 匯出未加認證，與既有客戶端的呼叫方式相容
	api.GET("/users/export/csv", users.ExportUsersCSVHandler(db))
}

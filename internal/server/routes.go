package server

import (
	"net/http"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	// ヘルスチェック
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// 認証ルートはブルートフォース対策の厳しめrate limit付き
	h.Auth.RegisterRoutes(e, middleware.AuthRateLimit())
	h.Food.RegisterRoutes(e)
	h.Order.RegisterRoutes(e)

	// /api/admin配下は認証＋adminロール必須
	admin := e.Group("/api/admin")
	admin.Use(middleware.AuthRequired(cfg))
	admin.Use(middleware.RequireRoles(model.RoleAdmin))

	h.AdminOrder.RegisterRoutes(admin)
	h.Food.RegisterAdminRoutes(admin)
}

package server

import (
	"net/http"

	"app/internal/config"
	"app/internal/handler"
	"app/internal/metrics"
	"app/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

type Handlers struct {
	Auth       *handler.AuthHandler
	Food       *handler.FoodHandler
	Order      *handler.OrderHandler
	AdminOrder *handler.AdminOrderHandler
}

// New はechoを組み立てる。Startと分けてあるのはテストでそのまま使うため。
func New(cfg config.Config, log *logrus.Logger, sink metrics.Sink, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	// セキュリティヘッダ（X-Frame-Options等）
	e.Use(echomw.Secure())
	// 巨大ボディでメモリを食い潰されないようにする
	e.Use(echomw.BodyLimit("10M"))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FEURL},
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete},
	}))
	// /api/ 配下のIP別rate limit
	e.Use(middleware.RateLimit())
	e.Use(middleware.RequestLogger(log, sink))

	RegisterRoutes(e, cfg, h)

	return e
}

func Start(addr string, cfg config.Config, log *logrus.Logger, sink metrics.Sink, h Handlers) error {
	e := New(cfg, log, sink, h)
	return e.Start(addr)
}

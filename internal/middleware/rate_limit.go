package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// IPごとのrate limit。ウィンドウ内の上限をburstに、補充レートを上限/ウィンドウにする。
const (
	rateLimitWindow = 15 * time.Minute

	// /api/ 全体
	apiRateLimitMax = 100
	// 認証ルート（ブルートフォース対策）
	authRateLimitMax = 5
)

// RateLimit は /api/ 配下全体のIP別rate limit。
// ヘルスチェック等のAPI外パスには掛けない。
func RateLimit() echo.MiddlewareFunc {
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return !strings.HasPrefix(c.Request().URL.Path, "/api/")
		},
		Store: newRateLimitStore(apiRateLimitMax),
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests,
				errorJSON("Too many requests from this IP, please try again later."))
		},
	})
}

// AuthRateLimit はlogin/register用の厳しめのrate limit。
// /api/auth グループにだけ掛ける。
func AuthRateLimit() echo.MiddlewareFunc {
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: newRateLimitStore(authRateLimitMax),
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests,
				errorJSON("Too many login attempts, please try again after 15 minutes."))
		},
	})
}

func newRateLimitStore(maxPerWindow int) echomw.RateLimiterStore {
	return echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(maxPerWindow) / rateLimitWindow.Seconds()),
		Burst:     maxPerWindow,
		ExpiresIn: rateLimitWindow,
	})
}

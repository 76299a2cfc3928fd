package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/domain/model"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// セッションcookieの名前
const SessionCookieName = "token"

const (
	CtxUserIDKey    = "user_id"    // int64
	CtxUserNameKey  = "user_name"  // string
	CtxUserEmailKey = "user_email" // string
	CtxUserRoleKey  = "user_role"  // string
)

// Claims はトークンに埋め込んだ本人情報のキャッシュ。
// roleはトークン寿命の間だけ古くなり得る（再取得はしない設計）。
// 最大ステイルネス = JWT_EXPIRES（default 7日）。
type Claims struct {
	UserID int64
	Name   string
	Email  string
	Role   model.Role
}

func (c Claims) IsAdmin() bool {
	return c.Role == model.RoleAdmin
}

// AuthRequired はcookieのJWTを検証するハードゲート。
// 失敗したら後続のハンドラは動かない。
func AuthRequired(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("Authentication required. Please log in."))
			}

			claims, err := parseSessionToken(cookie.Value, cfg.JWTSecret)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return c.JSON(http.StatusUnauthorized, errorJSON("Authentication token expired. Please log in again."))
				}
				return c.JSON(http.StatusUnauthorized, errorJSON("Invalid authentication token"))
			}

			attachClaims(c, claims)
			return next(c)
		}
	}
}

// OptionalAuth は同じ復号をするがリクエストは絶対に落とさない。
// 公開エンドポイントがログイン済みと匿名で挙動を変えられるようにする。
func OptionalAuth(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			claims, err := parseSessionToken(cookie.Value, cfg.JWTSecret)
			if err != nil {
				// 無効トークンは未ログイン扱い
				return next(c)
			}

			attachClaims(c, claims)
			return next(c)
		}
	}
}

// RequireRoles はcontextのroleが許可リストに入っているか確認する。
// AuthRequiredの後ろに置くこと。
func RequireRoles(allowed ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFromContext(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("Authentication required"))
			}

			for _, r := range allowed {
				if claims.Role == r {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, errorJSON("Access denied. Insufficient permissions."))
		}
	}
}

// ClaimsFromContext はmiddlewareが入れた本人情報を取り出す
func ClaimsFromContext(c echo.Context) (Claims, bool) {
	userID, ok := c.Get(CtxUserIDKey).(int64)
	if !ok || userID <= 0 {
		return Claims{}, false
	}

	name, _ := c.Get(CtxUserNameKey).(string)
	email, _ := c.Get(CtxUserEmailKey).(string)
	role, ok := c.Get(CtxUserRoleKey).(string)
	if !ok || role == "" {
		return Claims{}, false
	}

	return Claims{
		UserID: userID,
		Name:   name,
		Email:  email,
		Role:   model.Role(role),
	}, true
}

func attachClaims(c echo.Context, claims Claims) {
	c.Set(CtxUserIDKey, claims.UserID)
	c.Set(CtxUserNameKey, claims.Name)
	c.Set(CtxUserEmailKey, claims.Email)
	c.Set(CtxUserRoleKey, string(claims.Role))
}

// JWTをパースして検証する。純粋な同期計算でI/Oはしない。
func parseSessionToken(rawToken string, secret string) (Claims, error) {
	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Claims{}, err
	}
	if token == nil || !token.Valid {
		return Claims{}, errors.New("invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid claims")
	}

	userID, err := parseUserID(mapClaims["sub"])
	if err != nil || userID <= 0 {
		return Claims{}, errors.New("invalid sub")
	}

	role, err := parseString(mapClaims["role"])
	if err != nil || role == "" {
		return Claims{}, errors.New("invalid role")
	}

	// name/emailは通知用。欠けていてもトークン自体は有効扱い。
	name, _ := mapClaims["name"].(string)
	email, _ := mapClaims["email"].(string)

	return Claims{
		UserID: userID,
		Name:   name,
		Email:  email,
		Role:   model.Role(role),
	}, nil
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Success: false, Message: msg}
}

// sub をint64に変換する
func parseUserID(v interface{}) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case string:
		return strconv.ParseInt(t, 10, 64)
	default:
		return 0, errors.New("invalid sub")
	}
}

func parseString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.New("invalid string")
	}
	return s, nil
}

package handler

import (
	"net/http"
	"time"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	cfg config.Config
	uc  *usecase.AuthUsecase
}

// DIコンストラクタ
func NewAuthHandler(cfg config.Config, uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{cfg: cfg, uc: uc}
}

// /api/auth/register のリクエストボディ
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// /api/auth/login のリクエストボディ
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	User    usecase.UserDTO `json:"user"`
}

// RegisterRoutes は認証関連のルートを登録する。
// mwにはrate limitなどグループ全体に掛ける middleware を渡す。
func (h *AuthHandler) RegisterRoutes(e *echo.Echo, mw ...echo.MiddlewareFunc) {
	g := e.Group("/api/auth", mw...)

	g.POST("/register", h.register)
	g.POST("/login", h.login)

	protected := g.Group("")
	protected.Use(middleware.AuthRequired(h.cfg))
	protected.POST("/logout", h.logout)
	protected.GET("/profile", h.profile)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	out, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch err {
		case usecase.ErrValidation:
			return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid registration data"})
		case usecase.ErrConflict:
			return c.JSON(http.StatusConflict, ErrorResponse{Message: "User already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Failed to create account. Please try again."})
		}
	}

	// セッションcookie
	c.SetCookie(h.sessionCookie(out.Token))

	return c.JSON(http.StatusCreated, authResponse{
		Success: true,
		Message: "Account created successfully",
		User:    out.User,
	})
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	out, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch err {
		case usecase.ErrValidation:
			return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Email and password are required"})
		case usecase.ErrUnauthorized:
			// emailなしもパスワード違いも同じ文言
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Invalid credentials"})
		default:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Login failed. Please try again."})
		}
	}

	c.SetCookie(h.sessionCookie(out.Token))

	return c.JSON(http.StatusOK, authResponse{
		Success: true,
		Message: "Login successful",
		User:    out.User,
	})
}

func (h *AuthHandler) logout(c echo.Context) error {
	// 発行時と同じ属性でクリアしないとブラウザによっては消えない
	c.SetCookie(h.clearedSessionCookie())

	return c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "Logout successful"})
}

func (h *AuthHandler) profile(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Not authenticated"})
	}

	user, err := h.uc.Profile(c.Request().Context(), claims.UserID)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			return c.JSON(http.StatusNotFound, ErrorResponse{Message: "User not found"})
		case usecase.ErrUnauthorized:
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Not authenticated"})
		default:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal error"})
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// セッションcookieを組み立てる。
// production: Secure + SameSite=None（cross-origin配信）
// development: SameSite=Lax
func (h *AuthHandler) sessionCookie(token string) *http.Cookie {
	cookie := h.baseSessionCookie()
	cookie.Value = token
	cookie.Expires = time.Now().Add(h.cfg.JWTExpires)
	cookie.MaxAge = int(h.cfg.JWTExpires.Seconds())
	return cookie
}

func (h *AuthHandler) clearedSessionCookie() *http.Cookie {
	cookie := h.baseSessionCookie()
	cookie.Value = ""
	cookie.Expires = time.Unix(0, 0)
	cookie.MaxAge = -1
	return cookie
}

func (h *AuthHandler) baseSessionCookie() *http.Cookie {
	prod := h.cfg.IsProduction()

	sameSite := http.SameSiteLaxMode
	if prod {
		sameSite = http.SameSiteNoneMode
	}

	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   prod,
		SameSite: sameSite,
	}
}

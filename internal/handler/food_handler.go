package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Message: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal error"})
}

// メニューの公開API
type FoodHandler struct {
	cfg config.Config
	uc  *usecase.FoodUsecase
}

// DI
func NewFoodHandler(cfg config.Config, uc *usecase.FoodUsecase) *FoodHandler {
	return &FoodHandler{cfg: cfg, uc: uc}
}

// 公開メニューのルートを登録。
// 公開APIだがOptionalAuthを通して、ログイン済みなら本人情報が使える状態にする。
func (h *FoodHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/fooditems")
	g.Use(middleware.OptionalAuth(h.cfg))

	g.GET("", h.list)
	g.GET("/mealtype/:mealType", h.listByMealType)
	g.GET("/:id", h.detail)
}

// seedは管理者グループに登録する
func (h *FoodHandler) RegisterAdminRoutes(admin *echo.Group) {
	admin.POST("/fooditems/seed", h.seed)
}

func (h *FoodHandler) list(c echo.Context) error {
	// page（default 1）
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid page"})
		}
		page = p
	}

	// limit（default 50）
	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid limit"})
		}
		limit = l
	}

	out, err := h.uc.List(c.Request().Context(), page, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *FoodHandler) listByMealType(c echo.Context) error {
	mealType := c.Param("mealType")

	items, err := h.uc.ListByMealType(c.Request().Context(), mealType)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(items),
		"data":    items,
	})
}

func (h *FoodHandler) detail(c echo.Context) error {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	it, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    it,
	})
}

func (h *FoodHandler) seed(c echo.Context) error {
	count, err := h.uc.Seed(c.Request().Context(), h.cfg.SeedFile)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Food items seeded successfully",
		"count":   count,
	})
}

package handler

import (
	"net/http"
	"strconv"

	"app/internal/metrics"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandler struct {
	uc   *usecase.AdminOrderUsecase
	sink *metrics.InMemorySink
}

func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase, sink *metrics.InMemorySink) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc, sink: sink}
}

type orderStatusUpdateRequest struct {
	Status string `json:"status"`
}

// /api/admin配下のルートを登録。groupには認証＋adminガードが掛かっている前提。
func (h *AdminOrderHandler) RegisterRoutes(admin *echo.Group) {
	admin.GET("/orders", h.list)
	admin.PATCH("/orders/:id/status", h.updateStatus)
	admin.DELETE("/orders/:id", h.delete)
	admin.GET("/stats", h.stats)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	outs, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(outs),
		"orders":  outs,
	})
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	var req orderStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	// 操作した管理者ID（ログ用）
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication required"})
	}

	order, err := h.uc.UpdateStatus(c.Request().Context(), claims.UserID, orderID, req.Status)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Order status updated successfully",
		"order":   order,
	})
}

func (h *AdminOrderHandler) delete(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	order, err := h.uc.Delete(c.Request().Context(), orderID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Order deleted",
		"order":   order,
	})
}

func (h *AdminOrderHandler) stats(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"stats":   h.sink.Snapshot(),
	})
}

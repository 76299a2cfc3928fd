package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	cfg config.Config
	uc  *usecase.OrderUsecase
}

func NewOrderHandler(cfg config.Config, uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{cfg: cfg, uc: uc}
}

type orderItemRequest struct {
	ItemID         int64                       `json:"itemId"`
	Name           string                      `json:"name"`
	Image          string                      `json:"image"`
	Price          float64                     `json:"price"`
	Quantity       int64                       `json:"quantity"`
	Customizations []model.CustomizationChoice `json:"customizations"`
}

type orderCreateRequest struct {
	Items           []orderItemRequest    `json:"items"`
	TotalAmount     float64               `json:"totalAmount"`
	DeliveryAddress model.DeliveryAddress `json:"deliveryAddress"`
	PaymentMethod   string                `json:"paymentMethod"`
	Notes           string                `json:"notes"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/orders")
	g.Use(middleware.AuthRequired(h.cfg))

	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.detail)
}

func (h *OrderHandler) create(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User authentication required"})
	}

	var req orderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
	}

	items := make([]usecase.PlaceOrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.PlaceOrderItemInput{
			FoodItemID:     it.ItemID,
			Name:           it.Name,
			Image:          it.Image,
			Price:          it.Price,
			Quantity:       it.Quantity,
			Customizations: it.Customizations,
		})
	}

	order, err := h.uc.PlaceOrder(c.Request().Context(), caller, usecase.PlaceOrderInput{
		Items:           items,
		TotalAmount:     req.TotalAmount,
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Order placed successfully",
		"order":   order,
	})
}

func (h *OrderHandler) list(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User authentication required"})
	}

	orders, err := h.uc.ListMyOrders(c.Request().Context(), caller)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(orders),
		"orders":  orders,
	})
}

func (h *OrderHandler) detail(c echo.Context) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User authentication required"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid id"})
	}

	order, err := h.uc.GetOrder(c.Request().Context(), caller, id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"order":   order,
	})
}

// middlewareのclaimsをusecaseのCallerへ詰め替える
func callerFromContext(c echo.Context) (usecase.Caller, bool) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return usecase.Caller{}, false
	}

	return usecase.Caller{
		UserID: claims.UserID,
		Name:   claims.Name,
		Email:  claims.Email,
		Role:   claims.Role,
	}, true
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"app/internal/domain/model"
	"app/internal/notification"
	repo "app/internal/repository"

	"github.com/sirupsen/logrus"
)

// Caller は認可済みリクエストの本人情報。
// middlewareがトークンから復元したclaimsをそのまま持ってくる。
type Caller struct {
	UserID int64
	Name   string
	Email  string
	Role   model.Role
}

func (c Caller) IsAdmin() bool {
	return c.Role == model.RoleAdmin
}

type OrderUsecase struct {
	orders        repo.OrderRepository
	foods         repo.FoodItemRepository
	mailer        notification.Mailer
	log           *logrus.Logger
	notifyTimeout time.Duration
}

func NewOrderUsecase(
	orders repo.OrderRepository,
	foods repo.FoodItemRepository,
	mailer notification.Mailer,
	log *logrus.Logger,
	notifyTimeout time.Duration,
) *OrderUsecase {
	return &OrderUsecase{
		orders:        orders,
		foods:         foods,
		mailer:        mailer,
		log:           log,
		notifyTimeout: notifyTimeout,
	}
}

type PlaceOrderItemInput struct {
	FoodItemID     int64
	Name           string
	Image          string
	Price          float64
	Quantity       int64
	Customizations []model.CustomizationChoice
}

type PlaceOrderInput struct {
	Items           []PlaceOrderItemInput
	TotalAmount     float64
	DeliveryAddress model.DeliveryAddress
	PaymentMethod   string
	Notes           string
}

// PlaceOrder はカートの中身から注文を作る。
// 検証 → メニューからスナップショット → 保存 → 確認メール（非同期）の順。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, caller Caller, in PlaceOrderInput) (model.Order, error) {
	if caller.UserID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "User authentication required")
	}

	if len(in.Items) == 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "Order must contain at least one item")
	}
	if in.TotalAmount <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "Invalid total amount")
	}

	// 支払い方法。未指定はcash。
	method := model.PaymentMethod(in.PaymentMethod)
	if in.PaymentMethod == "" {
		method = model.PaymentMethodCash
	}
	if !method.Valid() {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "Invalid payment method")
	}

	orderItems := make([]model.OrderItem, 0, len(in.Items))
	for i, item := range in.Items {
		if err := validateOrderItem(i, item); err != nil {
			return model.Order{}, err
		}

		// 実在するメニューか確認し、注文時点の情報をスナップショット
		food, err := u.foods.FindByID(ctx, item.FoodItemID)
		if errors.Is(err, repo.ErrNotFound) {
			return model.Order{}, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Unknown food item at index %d", i))
		}
		if err != nil {
			return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		orderItems = append(orderItems, model.OrderItem{
			FoodItemID:     food.ID,
			NameSnapshot:   food.Name,
			ImageSnapshot:  food.Image,
			PriceSnapshot:  food.Price,
			Quantity:       item.Quantity,
			Customizations: item.Customizations,
		})
	}

	order := model.Order{
		UserID:          caller.UserID,
		Items:           orderItems,
		TotalAmount:     in.TotalAmount,
		Status:          model.OrderStatusPending,
		OrderDate:       time.Now(),
		DeliveryAddress: in.DeliveryAddress,
		PaymentMethod:   method,
		PaymentStatus:   method.InitialPaymentStatus(),
		Notes:           in.Notes,
	}

	// 注文がsystem of recordなので保存失敗はそのまま呼び出し元へ返す
	if err := u.orders.Create(ctx, &order); err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "Failed to create order")
	}

	u.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  caller.UserID,
		"total":    order.TotalAmount,
	}).Info("order created")

	// 確認メールはbest-effort。HTTPレスポンスは待たないが結果は必ずログに残す。
	u.sendConfirmationAsync(caller, order)

	return order, nil
}

// ListMyOrders は本人の注文だけを新しい順に返す
func (u *OrderUsecase) ListMyOrders(ctx context.Context, caller Caller) ([]model.Order, error) {
	if caller.UserID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "User authentication required")
	}

	orders, err := u.orders.ListByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Failed to fetch orders")
	}

	return orders, nil
}

// GetOrder は所有者か管理者だけに注文を返す。
// 他人の注文は「存在しない扱い」（403ではなく404）にして存在自体を漏らさない。
func (u *OrderUsecase) GetOrder(ctx context.Context, caller Caller, orderID int64) (model.Order, error) {
	if caller.UserID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "User authentication required")
	}
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if o.UserID != caller.UserID && !caller.IsAdmin() {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "Order not found")
	}

	return o, nil
}

func validateOrderItem(index int, item PlaceOrderItemInput) error {
	if item.FoodItemID <= 0 {
		return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid item ID at index %d", index))
	}
	if item.Name == "" {
		return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Item name is required at index %d", index))
	}
	if item.Price <= 0 {
		return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid item price at index %d", index))
	}
	if item.Quantity <= 0 {
		return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid item quantity at index %d", index))
	}
	for _, cz := range item.Customizations {
		if cz.PriceDelta < 0 {
			return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid customization price at index %d", index))
		}
	}
	return nil
}

func (u *OrderUsecase) sendConfirmationAsync(caller Caller, order model.Order) {
	if caller.Email == "" || caller.Name == "" {
		return
	}

	timeout := u.notifyTimeout

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := u.mailer.SendOrderConfirmationEmail(ctx, caller.Email, caller.Name, notification.OrderConfirmation{
			OrderID:     order.ID,
			Status:      string(order.Status),
			TotalAmount: order.TotalAmount,
		})
		if err != nil {
			u.log.WithError(err).WithField("order_id", order.ID).Error("failed to send order confirmation email")
		}
	}()
}

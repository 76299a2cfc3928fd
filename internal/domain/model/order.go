package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// statusの閉集合
var ValidOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, v := range ValidOrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// 終端state。ここからはどこへも遷移できない。
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// fromからtoへ遷移できるかどうか。
// 同じ値どうしはここでは扱わない（usecase側でno-op）。
// pendingは作成時に一度だけ入るstateなので再突入は不可。
func CanTransition(from, to OrderStatus) bool {
	if from.Terminal() {
		return false
	}
	if to == OrderStatusPending {
		return false
	}
	return true
}

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodOnline PaymentMethod = "online"
	PaymentMethodWallet PaymentMethod = "wallet"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodOnline, PaymentMethodWallet:
		return true
	}
	return false
}

// 支払い方法ごとの初期paymentStatus。
// cash以外は外部決済が確定済みの前提でcompleted。
func (m PaymentMethod) InitialPaymentStatus() PaymentStatus {
	if m == PaymentMethodCash {
		return PaymentStatusPending
	}
	return PaymentStatusCompleted
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type DeliveryAddress struct {
	Street  string `gorm:"type:varchar(255)" json:"street"`
	City    string `gorm:"type:varchar(100)" json:"city"`
	State   string `gorm:"type:varchar(100)" json:"state"`
	ZipCode string `gorm:"type:varchar(20)" json:"zipCode"`
	Country string `gorm:"type:varchar(100)" json:"country"`
}

type Order struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64           `gorm:"not null;index" json:"userId"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount     float64         `gorm:"not null" json:"totalAmount"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	OrderDate       time.Time       `gorm:"not null;index" json:"orderDate"`
	DeliveryAddress DeliveryAddress `gorm:"embedded;embeddedPrefix:addr_" json:"deliveryAddress"`
	PaymentMethod   PaymentMethod   `gorm:"type:varchar(20);not null" json:"paymentMethod"`
	PaymentStatus   PaymentStatus   `gorm:"type:varchar(20);not null" json:"paymentStatus"`
	Notes           string          `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time       `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

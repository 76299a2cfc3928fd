package model

import "time"

// 注文明細に付くカスタマイズ選択。
// 金額計算を追えるようにgroup/choice/priceDeltaのtupleで持つ。
type CustomizationChoice struct {
	Group      string  `json:"group"`
	Choice     string  `json:"choice"`
	PriceDelta float64 `json:"priceDelta"`
}

type OrderItem struct {
	ID         int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    int64 `gorm:"not null;index" json:"orderId"`
	FoodItemID int64 `gorm:"not null;index" json:"itemId"`

	// 注文時点のメニュー情報のスナップショット。
	// 後からメニューが編集されても過去の注文は変わらない。
	NameSnapshot  string  `gorm:"type:varchar(255);not null" json:"name"`
	ImageSnapshot string  `gorm:"type:varchar(512)" json:"image"`
	PriceSnapshot float64 `gorm:"not null" json:"price"`

	Quantity       int64                 `gorm:"not null" json:"quantity"`
	Customizations []CustomizationChoice `gorm:"serializer:json" json:"customizations"`
	CreatedAt      time.Time             `gorm:"not null;autoCreateTime" json:"createdAt"`
}

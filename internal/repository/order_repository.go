package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	// 注文＋明細をまとめて1回で作成する（単一の原子的write）
	Create(ctx context.Context, order *model.Order) error
	// 明細付きで1件取得。見つからなければErrNotFound。
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	// 本人の注文一覧。orderDateの新しい順。
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	// 全注文。orderDateの新しい順（管理者用）。
	ListAll(ctx context.Context) ([]model.Order, error)
	// statusだけを原子的に更新。対象なしはErrNotFound。
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	// 注文を明細ごと削除。対象なしはErrNotFound。
	Delete(ctx context.Context, orderID int64) error
}

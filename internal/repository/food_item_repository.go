package repository

import (
	"context"

	"app/internal/domain/model"
)

type FoodItemRepository interface {
	// ページング付き一覧。totalも返す。
	List(ctx context.Context, page int, limit int) ([]model.FoodItem, int64, error)
	// mealTypeで絞り込み
	ListByMealType(ctx context.Context, mealType string) ([]model.FoodItem, error)
	// 1件取得。見つからなければErrNotFound。
	FindByID(ctx context.Context, id int64) (model.FoodItem, error)
	// 登録済み件数（seedの二重投入防止用）
	Count(ctx context.Context) (int64, error)
	// seed用の一括作成
	CreateBulk(ctx context.Context, items []model.FoodItem) error
}

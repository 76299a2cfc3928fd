package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	domainrepo "app/internal/repository"

	"gorm.io/gorm"
)

type foodItemGormRepository struct {
	db *gorm.DB
}

func NewFoodItemGormRepository(db *gorm.DB) domainrepo.FoodItemRepository {
	return &foodItemGormRepository{db: db}
}

func (r *foodItemGormRepository) List(ctx context.Context, page int, limit int) ([]model.FoodItem, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.FoodItem{}).Count(&total).Error; err != nil {
		return []model.FoodItem{}, 0, err
	}

	var items []model.FoodItem
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Order("id asc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return []model.FoodItem{}, 0, err
	}

	return items, total, nil
}

// mealTypeはJSON配列カラムなのでLIKEで絞る。
// 値は閉集合（usecase側で検証済み）なので部分一致の誤爆はない。
func (r *foodItemGormRepository) ListByMealType(ctx context.Context, mealType string) ([]model.FoodItem, error) {
	var items []model.FoodItem
	err := r.db.WithContext(ctx).
		Where("meal_types LIKE ?", "%\""+mealType+"\"%").
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.FoodItem{}, err
	}
	return items, nil
}

func (r *foodItemGormRepository) FindByID(ctx context.Context, id int64) (model.FoodItem, error) {
	var it model.FoodItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&it).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.FoodItem{}, domainrepo.ErrNotFound
	}
	if err != nil {
		return model.FoodItem{}, err
	}
	return it, nil
}

func (r *foodItemGormRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.FoodItem{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *foodItemGormRepository) CreateBulk(ctx context.Context, items []model.FoodItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

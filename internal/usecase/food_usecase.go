package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// メニュー（カタログ）の閲覧API。注文フローからは読み取り専用の依存先。
type FoodUsecase struct {
	foods repo.FoodItemRepository
}

// DI
func NewFoodUsecase(foods repo.FoodItemRepository) *FoodUsecase {
	return &FoodUsecase{foods: foods}
}

type FoodListOutput struct {
	Success    bool             `json:"success"`
	Count      int              `json:"count"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	TotalPages int64            `json:"totalPages"`
	Data       []model.FoodItem `json:"data"`
}

func (u *FoodUsecase) List(ctx context.Context, page int, limit int) (FoodListOutput, error) {
	if page < 1 {
		return FoodListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return FoodListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	items, total, err := u.foods.List(ctx, page, limit)
	if err != nil {
		return FoodListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(items) == 0 {
		return FoodListOutput{}, NewHTTPError(http.StatusNotFound, "No food items found")
	}

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}

	return FoodListOutput{
		Success:    true,
		Count:      len(items),
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
		Data:       items,
	}, nil
}

func (u *FoodUsecase) ListByMealType(ctx context.Context, mealType string) ([]model.FoodItem, error) {
	if !model.IsValidMealType(mealType) {
		return nil, NewHTTPError(http.StatusBadRequest, "Invalid meal type")
	}

	items, err := u.foods.ListByMealType(ctx, mealType)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(items) == 0 {
		return nil, NewHTTPError(http.StatusNotFound, "No food items found for meal type: "+mealType)
	}

	return items, nil
}

func (u *FoodUsecase) GetByID(ctx context.Context, id int64) (model.FoodItem, error) {
	if id <= 0 {
		return model.FoodItem{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	it, err := u.foods.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.FoodItem{}, NewHTTPError(http.StatusNotFound, "Food item not found")
	}
	if err != nil {
		return model.FoodItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return it, nil
}

// seedファイルの形
type seedFile struct {
	Recipes []model.FoodItem `json:"recipes"`
}

// Seed はJSONファイルからメニューを投入する。
// すでにデータがある場合は二重投入を防ぐため拒否する。
func (u *FoodUsecase) Seed(ctx context.Context, path string) (int, error) {
	existing, err := u.foods.Count(ctx)
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if existing > 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "Database already contains food items")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "failed to read seed file")
	}

	var f seedFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "invalid seed file")
	}
	if len(f.Recipes) == 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "No recipes found in the seed file")
	}

	if err := u.foods.CreateBulk(ctx, f.Recipes); err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return len(f.Recipes), nil
}

package usecase_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// mocks（Food向け：衝突回避）
// =====================

type FoodRepoMock struct{ mock.Mock }

func (m *FoodRepoMock) List(ctx context.Context, page int, limit int) ([]model.FoodItem, int64, error) {
	args := m.Called(ctx, page, limit)
	items, _ := args.Get(0).([]model.FoodItem)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *FoodRepoMock) ListByMealType(ctx context.Context, mealType string) ([]model.FoodItem, error) {
	args := m.Called(ctx, mealType)
	items, _ := args.Get(0).([]model.FoodItem)
	return items, args.Error(1)
}

func (m *FoodRepoMock) FindByID(ctx context.Context, id int64) (model.FoodItem, error) {
	args := m.Called(ctx, id)
	it, _ := args.Get(0).(model.FoodItem)
	return it, args.Error(1)
}

func (m *FoodRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *FoodRepoMock) CreateBulk(ctx context.Context, items []model.FoodItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

// =====================
// List tests
// =====================

func TestFoodUsecase_List_InvalidPage(t *testing.T) {
	uc := usecase.NewFoodUsecase(new(FoodRepoMock))

	_, err := uc.List(context.Background(), 0, 20)
	assertHTTPError(t, err, http.StatusBadRequest, "invalid page")
}

func TestFoodUsecase_List_InvalidLimit(t *testing.T) {
	uc := usecase.NewFoodUsecase(new(FoodRepoMock))

	_, err := uc.List(context.Background(), 1, 0)
	assertHTTPError(t, err, http.StatusBadRequest, "invalid limit")

	_, err = uc.List(context.Background(), 1, 101)
	assertHTTPError(t, err, http.StatusBadRequest, "invalid limit")
}

func TestFoodUsecase_List_Empty(t *testing.T) {
	foods := new(FoodRepoMock)
	foods.On("List", mock.Anything, 1, 20).Return([]model.FoodItem{}, int64(0), nil)

	uc := usecase.NewFoodUsecase(foods)

	_, err := uc.List(context.Background(), 1, 20)
	assertHTTPError(t, err, http.StatusNotFound, "No food items found")
}

func TestFoodUsecase_List_Success(t *testing.T) {
	foods := new(FoodRepoMock)
	foods.On("List", mock.Anything, 2, 20).Return([]model.FoodItem{
		{ID: 21, Name: "Pizza"},
		{ID: 22, Name: "Ramen"},
	}, int64(45), nil)

	uc := usecase.NewFoodUsecase(foods)

	out, err := uc.List(context.Background(), 2, 20)
	assert.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, int64(45), out.Total)
	assert.Equal(t, 2, out.Page)
	// 45件を20件ずつ → 3ページ（端数切り上げ）
	assert.Equal(t, int64(3), out.TotalPages)
	assert.Len(t, out.Data, 2)
}

// =====================
// ListByMealType / GetByID tests
// =====================

func TestFoodUsecase_ListByMealType_InvalidType(t *testing.T) {
	foods := new(FoodRepoMock)
	uc := usecase.NewFoodUsecase(foods)

	_, err := uc.ListByMealType(context.Background(), "brunch")
	assertHTTPError(t, err, http.StatusBadRequest, "Invalid meal type")

	foods.AssertNotCalled(t, "ListByMealType", mock.Anything, mock.Anything)
}

func TestFoodUsecase_ListByMealType_Empty(t *testing.T) {
	foods := new(FoodRepoMock)
	foods.On("ListByMealType", mock.Anything, "Dinner").Return([]model.FoodItem{}, nil)

	uc := usecase.NewFoodUsecase(foods)

	_, err := uc.ListByMealType(context.Background(), "Dinner")
	assertHTTPError(t, err, http.StatusNotFound, "No food items found for meal type: Dinner")
}

func TestFoodUsecase_GetByID_NotFound(t *testing.T) {
	foods := new(FoodRepoMock)
	foods.On("FindByID", mock.Anything, int64(99)).Return(model.FoodItem{}, repo.ErrNotFound)

	uc := usecase.NewFoodUsecase(foods)

	_, err := uc.GetByID(context.Background(), 99)
	assertHTTPError(t, err, http.StatusNotFound, "Food item not found")
}

func TestFoodUsecase_GetByID_Success(t *testing.T) {
	foods := new(FoodRepoMock)
	foods.On("FindByID", mock.Anything, int64(3)).Return(model.FoodItem{ID: 3, Name: "Pizza"}, nil)

	uc := usecase.NewFoodUsecase(foods)

	out, err := uc.GetByID(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, "Pizza", out.Name)
}

// =====================
// Seed tests
// =====================

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "food.json")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFoodUsecase_Seed_RefusesWhenNotEmpty(t *testing.T) {
	foods := new(FoodRepoMock)
	foods.On("Count", mock.Anything).Return(int64(12), nil)

	uc := usecase.NewFoodUsecase(foods)

	_, err := uc.Seed(context.Background(), "food.json")
	assertHTTPError(t, err, http.StatusBadRequest, "already contains food items")

	foods.AssertNotCalled(t, "CreateBulk", mock.Anything, mock.Anything)
}

func TestFoodUsecase_Seed_EmptyFile(t *testing.T) {
	foods := new(FoodRepoMock)
	foods.On("Count", mock.Anything).Return(int64(0), nil)

	uc := usecase.NewFoodUsecase(foods)

	path := writeSeedFile(t, `{"recipes": []}`)

	_, err := uc.Seed(context.Background(), path)
	assertHTTPError(t, err, http.StatusBadRequest, "No recipes found")
}

func TestFoodUsecase_Seed_Success(t *testing.T) {
	foods := new(FoodRepoMock)
	foods.On("Count", mock.Anything).Return(int64(0), nil)
	foods.On("CreateBulk", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewFoodUsecase(foods)

	path := writeSeedFile(t, `{
		"recipes": [
			{"name": "Pizza", "price": 12.5, "mealType": ["Dinner"]},
			{"name": "Pancakes", "price": 6.0, "mealType": ["Breakfast"]}
		]
	}`)

	n, err := uc.Seed(context.Background(), path)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)

	inserted := foods.Calls[1].Arguments.Get(1).([]model.FoodItem)
	assert.Equal(t, "Pizza", inserted[0].Name)
	assert.Equal(t, []string{"Breakfast"}, inserted[1].MealTypes)

	foods.AssertExpectations(t)
}

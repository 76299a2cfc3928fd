package model

import "time"

// メニュー掲載中の料理。注文フローからは読み取り専用。
type FoodItem struct {
	ID                 int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	Name               string              `gorm:"type:varchar(255);not null" json:"name"`
	Ingredients        []string            `gorm:"serializer:json" json:"ingredients"`
	PrepTimeMinutes    int                 `gorm:"not null" json:"prepTimeMinutes"`
	CookTimeMinutes    int                 `gorm:"not null" json:"cookTimeMinutes"`
	Servings           int                 `gorm:"not null" json:"servings"`
	Difficulty         string              `gorm:"type:varchar(20)" json:"difficulty"`
	Cuisine            string              `gorm:"type:varchar(100)" json:"cuisine"`
	CaloriesPerServing int                 `json:"caloriesPerServing"`
	Tags               []string            `gorm:"serializer:json" json:"tags"`
	Image              string              `gorm:"type:varchar(512)" json:"image"`
	Price              float64             `gorm:"not null" json:"price"`
	Rating             float64             `json:"rating"`
	ReviewCount        int64               `json:"reviewCount"`
	MealTypes          []string            `gorm:"serializer:json" json:"mealType"`
	Customizations     map[string][]string `gorm:"serializer:json" json:"customizations"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

// mealTypeの取り得る値
var ValidMealTypes = []string{
	"Breakfast", "Lunch", "Dinner", "Snack", "Snacks",
	"Dessert", "Appetizer", "Side Dish", "Main course",
}

func IsValidMealType(s string) bool {
	for _, v := range ValidMealTypes {
		if v == s {
			return true
		}
	}
	return false
}

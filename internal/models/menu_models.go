package models

import "time"

// Menu categories used by the ordering screens.
const (
	CategorySetMeal = "定食"
	CategoryDrink   = "ドリンク"
	CategoryDessert = "デザート"
)

// MenuCategories is the fixed, ordered set of categories shown to staff.
var MenuCategories = []string{CategorySetMeal, CategoryDrink, CategoryDessert}

// IsValidCategory reports whether c is one of MenuCategories.
func IsValidCategory(c string) bool {
	for _, known := range MenuCategories {
		if c == known {
			return true
		}
	}
	return false
}

// MenuItem represents an orderable dish or drink. Price is in minor currency units (yen).
type MenuItem struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" binding:"required"`
	Price       int64     `json:"price" db:"price" binding:"gte=0"`
	Category    string    `json:"category" db:"category" binding:"required"`
	ImageURL    string    `json:"image_url,omitempty" db:"image_url"`
	Description string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

const defaultImage = "https://images.pexels.com/photos/1640777/pexels-photo-1640777.jpeg?auto=compress&cs=tinysrgb&w=300"

// DefaultMenu is the catalog a fresh terminal starts with when no database is attached.
func DefaultMenu() []MenuItem {
	return []MenuItem{
		{ID: "mock-menu-1", Name: "本日の日替わり定食", Price: 980, Category: CategorySetMeal, ImageURL: defaultImage},
		{ID: "mock-menu-2", Name: "鶏の唐揚げ定食", Price: 850, Category: CategorySetMeal, ImageURL: defaultImage},
		{ID: "mock-menu-3", Name: "焼き魚定食", Price: 920, Category: CategorySetMeal, ImageURL: defaultImage},
		{ID: "mock-menu-4", Name: "緑茶", Price: 200, Category: CategoryDrink, ImageURL: defaultImage},
		{ID: "mock-menu-5", Name: "ほうじ茶", Price: 200, Category: CategoryDrink, ImageURL: defaultImage},
		{ID: "mock-menu-6", Name: "わらび餅", Price: 380, Category: CategoryDessert, ImageURL: defaultImage},
		{ID: "mock-menu-7", Name: "みたらし団子", Price: 320, Category: CategoryDessert, ImageURL: defaultImage},
		{ID: "mock-menu-8", Name: "抹茶", Price: 350, Category: CategoryDrink, ImageURL: defaultImage},
		{ID: "mock-menu-9", Name: "あんみつ", Price: 450, Category: CategoryDessert, ImageURL: defaultImage},
	}
}

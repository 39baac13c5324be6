package category

import "time"

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type UpdateInput struct {
	Name        *string
	Description *string
	IsActive    *bool
}

func strPtr(s string) *string { return &s }

// DefaultCategories is seeded once when the catalog is empty.
var DefaultCategories = []Category{
	{ID: "donuts", Name: "Понички", Description: strPtr("Традиционни и специални понички"), IsActive: true},
	{ID: "corn", Name: "Царевица", Description: strPtr("Прясна и печена царевица"), IsActive: true},
	{ID: "drinks", Name: "Напитки", Description: strPtr("Топли и студени напитки"), IsActive: true},
	{ID: "other", Name: "Други", Description: strPtr("Други продукти"), IsActive: true},
}

package product

import "time"

// Product prices are stored in minor currency units (stotinki).
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	ImageURL    string    `json:"imageUrl"`
	Available   bool      `json:"available"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type UpdateInput struct {
	Name        *string
	Description *string
	Price       *int64
	ImageURL    *string
	Available   *bool
	Category    *string
}

func (in UpdateInput) hasAnyField() bool {
	return in.Name != nil ||
		in.Description != nil ||
		in.Price != nil ||
		in.ImageURL != nil ||
		in.Available != nil ||
		in.Category != nil
}

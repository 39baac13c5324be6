package order

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// transitions is the full set of legal status moves. completed and
// cancelled are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Order totals and item prices are in minor currency units (stotinki).
// Item prices are snapshots taken from the catalog at creation time.
type Order struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	Items            []Item    `json:"items"`
	Total            int64     `json:"total"`
	Status           Status    `json:"status"`
	DeliveryLocation Location  `json:"deliveryLocation"`
	DeliveryTime     time.Time `json:"deliveryTime"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type Item struct {
	ID          string `json:"id"`
	OrderID     string `json:"-"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type CreateInput struct {
	Items            []ItemInput
	DeliveryLocation Location
	DeliveryTime     time.Time
}

type ItemInput struct {
	ProductID string
	Quantity  int
}

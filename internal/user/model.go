package user

import "time"

type User struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Password  string            `json:"-"`
	IsAdmin   bool              `json:"isAdmin"`
	Phone     *string           `json:"phoneNumber,omitempty"`
	Addresses []DeliveryAddress `json:"deliveryAddresses"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type DeliveryAddress struct {
	ID        string  `json:"id"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type UpdateProfileInput struct {
	Name      *string
	Phone     *string
	Addresses []DeliveryAddress
}

package entity

import "time"

const RestaurantStatusApproved = "APPROVED"

type Restaurant struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Address      string    `json:"address"`
	PhoneNumber  string    `json:"phone_number"`
	OpeningHours string    `json:"opening_hours"`
	Rating       float64   `json:"rating"`
	Status       string    `json:"status"`
	LocationID   string    `json:"location_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Location struct {
	ID       string `json:"id"`
	City     string `json:"city"`
	District string `json:"district"`
	Ward     string `json:"ward"`
}

type MenuItem struct {
	ID           string  `json:"id"`
	RestaurantID string  `json:"restaurant_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Category     string  `json:"category"`
	IsAvailable  bool    `json:"is_available"`
}

type TimeSlot struct {
	ID           string `json:"id"`
	RestaurantID string `json:"restaurant_id"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	MaxBookings  int    `json:"max_bookings"`
	IsActive     bool   `json:"is_active"`
}

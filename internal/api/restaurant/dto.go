package restaurants

type ListRestaurantsQuery struct {
	City     string `query:"city" validate:"omitempty,max=100"`
	District string `query:"district" validate:"omitempty,max=100"`
	Ward     string `query:"ward" validate:"omitempty,max=100"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

type RestaurantResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Address      string  `json:"address"`
	PhoneNumber  string  `json:"phone_number"`
	OpeningHours string  `json:"opening_hours"`
	Rating       float64 `json:"rating"`
}

type RestaurantListResponse struct {
	Restaurants []RestaurantResponse `json:"restaurants"`
	Total       int                  `json:"total"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
}

type MenuItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

type MenuResponse struct {
	RestaurantID string             `json:"restaurant_id"`
	Items        []MenuItemResponse `json:"items"`
}

type TimeSlotResponse struct {
	ID          string `json:"id"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	MaxBookings int    `json:"max_bookings"`
	Booked      int    `json:"booked"`
	Remaining   int    `json:"remaining"`
}

type TimeSlotsResponse struct {
	RestaurantID string             `json:"restaurant_id"`
	Date         string             `json:"date,omitempty"`
	Slots        []TimeSlotResponse `json:"slots"`
}

package restaurantService

import (
	restaurants "RestoBook/internal/api/restaurant"
	"database/sql"
	"errors"
	"strings"
	"time"

	"golang.org/x/net/context"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

func (s *restaurantService) ListRestaurants(ctx context.Context, q restaurants.ListRestaurantsQuery) (*restaurants.RestaurantListResponse, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultPageLimit
	}
	if q.Limit > maxPageLimit {
		q.Limit = maxPageLimit
	}

	client, err := s.restaurantRepo.NewClient(false)
	if err != nil {
		return nil, err
	}
	defer client.Rollback()

	list, total, err := client.Restaurants.ListRestaurants(ctx, q.City, q.District, q.Ward, q.Limit, (q.Page-1)*q.Limit)
	if err != nil {
		return nil, err
	}

	resp := &restaurants.RestaurantListResponse{
		Restaurants: make([]restaurants.RestaurantResponse, 0, len(list)),
		Total:       total,
		Page:        q.Page,
		Limit:       q.Limit,
	}

	for _, r := range list {
		resp.Restaurants = append(resp.Restaurants, restaurants.RestaurantResponse{
			ID:           r.ID,
			Name:         r.Name,
			Description:  r.Description,
			Address:      r.Address,
			PhoneNumber:  r.PhoneNumber,
			OpeningHours: r.OpeningHours,
			Rating:       r.Rating,
		})
	}

	return resp, nil
}

func (s *restaurantService) GetRestaurantByID(ctx context.Context, id string) (*restaurants.RestaurantResponse, error) {
	client, err := s.restaurantRepo.NewClient(false)
	if err != nil {
		return nil, err
	}
	defer client.Rollback()

	r, err := client.Restaurants.GetRestaurantByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, restaurants.ErrRestaurantNotFound
		}
		return nil, err
	}

	return &restaurants.RestaurantResponse{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		Address:      r.Address,
		PhoneNumber:  r.PhoneNumber,
		OpeningHours: r.OpeningHours,
		Rating:       r.Rating,
	}, nil
}

// GetMenu lists a restaurant's available items, optionally narrowed to
// one category (case-insensitive).
func (s *restaurantService) GetMenu(ctx context.Context, restaurantID, category string) (*restaurants.MenuResponse, error) {
	client, err := s.restaurantRepo.NewClient(false)
	if err != nil {
		return nil, err
	}
	defer client.Rollback()

	if _, err := client.Restaurants.GetRestaurantByID(ctx, restaurantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, restaurants.ErrRestaurantNotFound
		}
		return nil, err
	}

	items, err := client.Restaurants.GetMenuItems(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	resp := &restaurants.MenuResponse{
		RestaurantID: restaurantID,
		Items:        make([]restaurants.MenuItemResponse, 0, len(items)),
	}

	for _, item := range items {
		if category != "" && !strings.EqualFold(item.Category, category) {
			continue
		}
		resp.Items = append(resp.Items, restaurants.MenuItemResponse{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			Category:    item.Category,
		})
	}

	return resp, nil
}

// GetTimeSlots lists a restaurant's active slots. With a date the
// remaining capacity per slot is computed from active bookings.
func (s *restaurantService) GetTimeSlots(ctx context.Context, restaurantID, date string) (*restaurants.TimeSlotsResponse, error) {
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return nil, restaurants.ErrInvalidDate
		}
	}

	client, err := s.restaurantRepo.NewClient(false)
	if err != nil {
		return nil, err
	}
	defer client.Rollback()

	if _, err := client.Restaurants.GetRestaurantByID(ctx, restaurantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, restaurants.ErrRestaurantNotFound
		}
		return nil, err
	}

	slots, err := client.Restaurants.GetTimeSlots(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	resp := &restaurants.TimeSlotsResponse{
		RestaurantID: restaurantID,
		Date:         date,
		Slots:        make([]restaurants.TimeSlotResponse, 0, len(slots)),
	}

	for _, slot := range slots {
		slotResp := restaurants.TimeSlotResponse{
			ID:          slot.ID,
			StartTime:   slot.StartTime,
			EndTime:     slot.EndTime,
			MaxBookings: slot.MaxBookings,
			Remaining:   slot.MaxBookings,
		}

		if date != "" {
			booked, err := client.Restaurants.CountActiveBookings(ctx, restaurantID, date, slot.ID)
			if err != nil {
				return nil, err
			}
			slotResp.Booked = booked
			slotResp.Remaining = slot.MaxBookings - booked
			if slotResp.Remaining < 0 {
				slotResp.Remaining = 0
			}
		}

		resp.Slots = append(resp.Slots, slotResp)
	}

	return resp, nil
}

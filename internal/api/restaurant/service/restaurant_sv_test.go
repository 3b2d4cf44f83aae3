package restaurantService

import (
	restaurants "RestoBook/internal/api/restaurant"
	restaurantRepository "RestoBook/internal/api/restaurant/repository"
	"RestoBook/internal/entity"
	"context"
	"database/sql"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRestaurants struct {
	restaurants []entity.Restaurant
	total       int
	menuItems   []entity.MenuItem
	timeSlots   []entity.TimeSlot
	bookings    map[string]int

	err error
}

func (f *fakeRestaurants) ListRestaurants(ctx context.Context, city, district, ward string, limit, offset int) ([]entity.Restaurant, int, error) {
	return f.restaurants, f.total, f.err
}

func (f *fakeRestaurants) GetRestaurantByID(ctx context.Context, id string) (entity.Restaurant, error) {
	if f.err != nil {
		return entity.Restaurant{}, f.err
	}
	for _, r := range f.restaurants {
		if r.ID == id {
			return r, nil
		}
	}
	return entity.Restaurant{}, sql.ErrNoRows
}

func (f *fakeRestaurants) GetMenuItems(ctx context.Context, restaurantID string) ([]entity.MenuItem, error) {
	return f.menuItems, f.err
}

func (f *fakeRestaurants) GetTimeSlots(ctx context.Context, restaurantID string) ([]entity.TimeSlot, error) {
	return f.timeSlots, f.err
}

func (f *fakeRestaurants) CountActiveBookings(ctx context.Context, restaurantID, bookingDate, timeSlotID string) (int, error) {
	return f.bookings[timeSlotID], f.err
}

type fakeRepo struct {
	restaurants *fakeRestaurants
}

func (f *fakeRepo) NewClient(tx bool) (restaurantRepository.Client, error) {
	return restaurantRepository.Client{
		Restaurants: f.restaurants,
		Commit:      func() error { return nil },
		Rollback:    func() error { return nil },
	}, nil
}

func newTestService(restaurants *fakeRestaurants) IRestaurantService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return New(log, &fakeRepo{restaurants: restaurants})
}

func TestListRestaurants(t *testing.T) {
	svc := newTestService(&fakeRestaurants{
		restaurants: []entity.Restaurant{
			{ID: "r1", Name: "Nhà hàng Phố Cổ", Rating: 4.5},
			{ID: "r2", Name: "Quán Biển Đông", Rating: 4.0},
		},
		total: 12,
	})

	resp, err := svc.ListRestaurants(context.Background(), restaurants.ListRestaurantsQuery{City: "Hà Nội"})
	require.NoError(t, err)

	assert.Equal(t, 12, resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, defaultPageLimit, resp.Limit)
	require.Len(t, resp.Restaurants, 2)
	assert.Equal(t, "Nhà hàng Phố Cổ", resp.Restaurants[0].Name)
}

func TestListRestaurantsClampsLimit(t *testing.T) {
	svc := newTestService(&fakeRestaurants{})

	resp, err := svc.ListRestaurants(context.Background(), restaurants.ListRestaurantsQuery{Page: -1, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, maxPageLimit, resp.Limit)
}

func TestGetRestaurantByIDNotFound(t *testing.T) {
	svc := newTestService(&fakeRestaurants{})

	_, err := svc.GetRestaurantByID(context.Background(), "missing")
	assert.ErrorIs(t, err, restaurants.ErrRestaurantNotFound)
}

func TestGetMenu(t *testing.T) {
	svc := newTestService(&fakeRestaurants{
		restaurants: []entity.Restaurant{{ID: "r1", Name: "Nhà hàng Phố Cổ"}},
		menuItems: []entity.MenuItem{
			{ID: "m1", Name: "Phở bò", Price: 55000, Category: "Món chính"},
			{ID: "m2", Name: "Gỏi cuốn", Price: 35000, Category: "Khai vị"},
		},
	})

	t.Run("full menu", func(t *testing.T) {
		resp, err := svc.GetMenu(context.Background(), "r1", "")
		require.NoError(t, err)
		assert.Equal(t, "r1", resp.RestaurantID)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, "Phở bò", resp.Items[0].Name)
	})

	t.Run("filtered by category", func(t *testing.T) {
		resp, err := svc.GetMenu(context.Background(), "r1", "khai vị")
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "Gỏi cuốn", resp.Items[0].Name)
	})
}

func TestGetTimeSlots(t *testing.T) {
	catalog := &fakeRestaurants{
		restaurants: []entity.Restaurant{{ID: "r1", Name: "Nhà hàng Phố Cổ"}},
		timeSlots: []entity.TimeSlot{
			{ID: "ts1", StartTime: "18:00", EndTime: "20:00", MaxBookings: 10},
			{ID: "ts2", StartTime: "20:00", EndTime: "22:00", MaxBookings: 4},
		},
		bookings: map[string]int{"ts1": 3, "ts2": 6},
	}
	svc := newTestService(catalog)

	t.Run("without date", func(t *testing.T) {
		resp, err := svc.GetTimeSlots(context.Background(), "r1", "")
		require.NoError(t, err)
		require.Len(t, resp.Slots, 2)
		assert.Equal(t, 0, resp.Slots[0].Booked)
		assert.Equal(t, 10, resp.Slots[0].Remaining)
	})

	t.Run("with date", func(t *testing.T) {
		resp, err := svc.GetTimeSlots(context.Background(), "r1", "2025-12-24")
		require.NoError(t, err)
		require.Len(t, resp.Slots, 2)
		assert.Equal(t, 3, resp.Slots[0].Booked)
		assert.Equal(t, 7, resp.Slots[0].Remaining)

		// overbooked slots never report negative capacity
		assert.Equal(t, 6, resp.Slots[1].Booked)
		assert.Equal(t, 0, resp.Slots[1].Remaining)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := svc.GetTimeSlots(context.Background(), "r1", "24/12/2025")
		assert.ErrorIs(t, err, restaurants.ErrInvalidDate)
	})
}

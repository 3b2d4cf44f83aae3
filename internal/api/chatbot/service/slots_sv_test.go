package chatbotService

import (
	"RestoBook/internal/api/chatbot"
	chatbotRepository "RestoBook/internal/api/chatbot/repository"
	"RestoBook/internal/entity"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	restaurants []entity.Restaurant
	menuItems   []entity.MenuItem
	categories  []string
	locations   []entity.Location
	timeSlots   []entity.TimeSlot
	bookings    int

	err error
}

func (f *fakeCatalog) GetApprovedRestaurants(ctx context.Context) ([]entity.Restaurant, error) {
	return f.restaurants, f.err
}

func (f *fakeCatalog) GetRestaurantByID(ctx context.Context, id string) (entity.Restaurant, error) {
	for _, r := range f.restaurants {
		if r.ID == id {
			return r, nil
		}
	}
	return entity.Restaurant{}, errors.New("not found")
}

func (f *fakeCatalog) GetMenuItems(ctx context.Context, restaurantID string) ([]entity.MenuItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	if restaurantID == "" {
		return f.menuItems, nil
	}
	var items []entity.MenuItem
	for _, item := range f.menuItems {
		if item.RestaurantID == restaurantID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *fakeCatalog) GetCategories(ctx context.Context) ([]string, error) {
	return f.categories, f.err
}

func (f *fakeCatalog) GetLocations(ctx context.Context) ([]entity.Location, error) {
	return f.locations, f.err
}

func (f *fakeCatalog) SearchRestaurantsByLocation(ctx context.Context, city, district, ward string, limit int) ([]entity.Restaurant, error) {
	return f.restaurants, f.err
}

func (f *fakeCatalog) GetTimeSlots(ctx context.Context, restaurantID string) ([]entity.TimeSlot, error) {
	return f.timeSlots, f.err
}

func (f *fakeCatalog) CountActiveBookings(ctx context.Context, restaurantID, bookingDate, timeSlotID string) (int, error) {
	return f.bookings, f.err
}

type fakeChatLogs struct {
	created []entity.ChatLog
	logs    []entity.ChatLog
	err     error
}

func (f *fakeChatLogs) CreateChatLog(ctx context.Context, chatLog entity.ChatLog) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, chatLog)
	return nil
}

func (f *fakeChatLogs) GetChatLogsByUser(ctx context.Context, userID string, limit, offset int) ([]entity.ChatLog, int, error) {
	return f.logs, len(f.logs), f.err
}

func newFakeClient(catalog *fakeCatalog, chatLogs *fakeChatLogs) chatbotRepository.Client {
	if chatLogs == nil {
		chatLogs = &fakeChatLogs{}
	}
	return chatbotRepository.Client{
		Catalog:  catalog,
		ChatLogs: chatLogs,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}
}

func TestExtractRestaurant(t *testing.T) {
	svc := newTestService()
	catalog := &fakeCatalog{
		restaurants: []entity.Restaurant{
			{ID: "r1", Name: "Nhà hàng Phố Cổ"},
			{ID: "r2", Name: "Quán Biển Đông"},
		},
	}
	client := newFakeClient(catalog, nil)

	t.Run("exact mention", func(t *testing.T) {
		slot := svc.extractRestaurant(context.Background(), client, "Nhà hàng Phố Cổ mở cửa mấy giờ?")
		require.Equal(t, chatbot.SlotStatusOK, slot.Status)
		assert.Equal(t, "r1", slot.Restaurant.ID)
		assert.Equal(t, float64(100), slot.Score)
	})

	t.Run("no confident match", func(t *testing.T) {
		slot := svc.extractRestaurant(context.Background(), client, "cho tôi hỏi một chút")
		assert.Equal(t, chatbot.SlotStatusAskName, slot.Status)
		assert.Nil(t, slot.Restaurant)
	})

	t.Run("empty catalog", func(t *testing.T) {
		empty := newFakeClient(&fakeCatalog{}, nil)
		slot := svc.extractRestaurant(context.Background(), empty, "Nhà hàng Phố Cổ")
		assert.Equal(t, chatbot.SlotStatusNoData, slot.Status)
	})
}

func TestExtractDish(t *testing.T) {
	svc := newTestService()
	catalog := &fakeCatalog{
		menuItems: []entity.MenuItem{
			{ID: "m1", RestaurantID: "r1", Name: "Phở bò", Price: 55000},
			{ID: "m2", RestaurantID: "r1", Name: "Bún chả", Price: 45000},
		},
	}
	client := newFakeClient(catalog, nil)

	slot := svc.extractDish(context.Background(), client, "giá phở bò bao nhiêu", "")
	require.Equal(t, chatbot.SlotStatusOK, slot.Status)
	assert.Equal(t, "m1", slot.Dish.ID)

	slot = svc.extractDish(context.Background(), client, "cho hỏi chút xíu nha", "")
	assert.Equal(t, chatbot.SlotStatusAskDish, slot.Status)
}

func TestExtractLocation(t *testing.T) {
	svc := newTestService()
	catalog := &fakeCatalog{
		locations: []entity.Location{
			{ID: "l1", City: "Hà Nội", District: "Hoàn Kiếm", Ward: "Hàng Bạc"},
			{ID: "l2", City: "Hồ Chí Minh", District: "Quận 1", Ward: "Bến Nghé"},
		},
	}
	client := newFakeClient(catalog, nil)

	t.Run("district keyword pattern", func(t *testing.T) {
		loc := svc.extractLocation(context.Background(), client, "có nhà hàng nào ở quận 1 không")
		assert.Equal(t, "Quận 1", loc.District)
		assert.Equal(t, "district", loc.Type)
		assert.Equal(t, float64(90), loc.Confidence)
	})

	t.Run("city name", func(t *testing.T) {
		loc := svc.extractLocation(context.Background(), client, "tìm quán ăn ở Hà Nội")
		assert.Equal(t, "Hà Nội", loc.City)
		assert.Equal(t, "city", loc.Type)
	})

	t.Run("no location", func(t *testing.T) {
		loc := svc.extractLocation(context.Background(), client, "menu có món gì ngon")
		assert.Empty(t, loc.Type)
	})
}

func TestExtractCategory(t *testing.T) {
	svc := newTestService()
	client := newFakeClient(&fakeCatalog{categories: []string{"Món chính", "Đồ uống"}}, nil)

	slot := svc.extractCategory(context.Background(), client, "có món tráng miệng không")
	assert.Equal(t, "Tráng miệng", slot.Category)
	assert.Greater(t, slot.Confidence, 0.0)

	slot = svc.extractCategory(context.Background(), client, "")
	assert.Empty(t, slot.Category)
}

func TestExtractDate(t *testing.T) {
	today := time.Date(2025, 12, 20, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"relative today", "tối nay còn bàn không", "2025-12-20"},
		{"relative tomorrow", "ngày mai đi ăn", "2025-12-21"},
		{"relative next week", "tuần sau nhé", "2025-12-27"},
		{"relative day after tomorrow", "ngày kia thì sao", "2025-12-22"},
		{"iso format", "đặt bàn 2025-12-25 nhé", "2025-12-25"},
		{"slash format", "đặt bàn 25/12/2025", "2025-12-25"},
		{"dash format", "đặt bàn 25-12-2025", "2025-12-25"},
		{"invalid calendar date", "đặt bàn 31/02/2025", ""},
		{"no date", "còn bàn không", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractDate(tt.input, today))
		})
	}
}

func TestExtractTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"colon format", "lúc 19:30 nhé", "19:30"},
		{"colon format single digit hour", "lúc 9:05", "09:05"},
		{"gio format", "19 giờ tối nay", "19:00"},
		{"gio with minutes", "19 giờ 30", "19:30"},
		{"h suffix", "đặt lúc 18h", "18:00"},
		{"invalid hour", "lúc 25:30", ""},
		{"no time", "còn bàn không", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractTime(tt.input))
		})
	}
}

func TestExtractNumGuests(t *testing.T) {
	assert.Equal(t, 4, extractNumGuests("đặt bàn cho 4 người"))
	assert.Equal(t, 10, extractNumGuests("10 khách tối nay"))
	assert.Equal(t, 6, extractNumGuests("đặt cho 6"))
	assert.Equal(t, 0, extractNumGuests("còn bàn không"))
	assert.Equal(t, 0, extractNumGuests("99 người"))
}

func TestExtractPriceRange(t *testing.T) {
	pr := extractPriceRange("món nào tầm 100k-300k")
	require.NotNil(t, pr)
	assert.Equal(t, int64(100000), pr.Min)
	assert.Equal(t, int64(300000), pr.Max)

	pr = extractPriceRange("từ 50k đến 150k")
	require.NotNil(t, pr)
	assert.Equal(t, int64(50000), pr.Min)
	assert.Equal(t, int64(150000), pr.Max)

	pr = extractPriceRange("món nào dưới 100k")
	require.NotNil(t, pr)
	assert.Equal(t, int64(0), pr.Min)
	assert.Equal(t, int64(100000), pr.Max)

	pr = extractPriceRange("món trên 200k")
	require.NotNil(t, pr)
	assert.Equal(t, int64(200000), pr.Min)
	assert.Equal(t, int64(priceOpenEndedMax), pr.Max)

	assert.Nil(t, extractPriceRange("có món gì ngon"))
}

func TestExtractBookingStatus(t *testing.T) {
	assert.Equal(t, entity.BookingStatusConfirmed, extractBookingStatus("đơn đã xác nhận chưa"))
	assert.Equal(t, entity.BookingStatusCancelled, extractBookingStatus("đơn đã hủy rồi"))
	assert.Equal(t, "", extractBookingStatus("còn bàn không"))
}

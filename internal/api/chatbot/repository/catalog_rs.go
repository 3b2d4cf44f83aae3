package chatbotRepository

import (
	"RestoBook/internal/entity"
	contextPkg "RestoBook/pkg/context"
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type RestaurantDB struct {
	ID           sql.NullString  `db:"id"`
	Name         sql.NullString  `db:"name"`
	Description  sql.NullString  `db:"description"`
	Address      sql.NullString  `db:"address"`
	PhoneNumber  sql.NullString  `db:"phone_number"`
	OpeningHours sql.NullString  `db:"opening_hours"`
	Rating       sql.NullFloat64 `db:"rating"`
	Status       sql.NullString  `db:"status"`
	LocationID   sql.NullString  `db:"location_id"`
}

type MenuItemDB struct {
	ID           sql.NullString  `db:"id"`
	RestaurantID sql.NullString  `db:"restaurant_id"`
	Name         sql.NullString  `db:"name"`
	Description  sql.NullString  `db:"description"`
	Price        sql.NullFloat64 `db:"price"`
	Category     sql.NullString  `db:"category"`
	IsAvailable  sql.NullBool    `db:"is_available"`
}

type LocationDB struct {
	ID       sql.NullString `db:"id"`
	City     sql.NullString `db:"city"`
	District sql.NullString `db:"district"`
	Ward     sql.NullString `db:"ward"`
}

type TimeSlotDB struct {
	ID           sql.NullString `db:"id"`
	RestaurantID sql.NullString `db:"restaurant_id"`
	StartTime    sql.NullString `db:"start_time"`
	EndTime      sql.NullString `db:"end_time"`
	MaxBookings  sql.NullInt64  `db:"max_bookings"`
	IsActive     sql.NullBool   `db:"is_active"`
}

func (r *catalogRepository) GetApprovedRestaurants(ctx context.Context) ([]entity.Restaurant, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []RestaurantDB

	argsKV := map[string]interface{}{
		"status": entity.RestaurantStatusApproved,
	}

	query, args, err := sqlx.Named(queryGetApprovedRestaurants, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetApprovedRestaurants named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetApprovedRestaurants execution err")
		return nil, err
	}

	restaurants := make([]entity.Restaurant, 0, len(rows))
	for _, row := range rows {
		restaurants = append(restaurants, r.makeRestaurant(row))
	}

	return restaurants, nil
}

func (r *catalogRepository) GetRestaurantByID(ctx context.Context, id string) (entity.Restaurant, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var row RestaurantDB

	argsKV := map[string]interface{}{
		"id":     id,
		"status": entity.RestaurantStatusApproved,
	}

	query, args, err := sqlx.Named(queryGetRestaurantByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRestaurantByID named query preparation err")
		return entity.Restaurant{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Restaurant{}, sql.ErrNoRows
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRestaurantByID execution err")
		return entity.Restaurant{}, err
	}

	return r.makeRestaurant(row), nil
}

func (r *catalogRepository) GetMenuItems(ctx context.Context, restaurantID string) ([]entity.MenuItem, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []MenuItemDB

	rawQuery := queryGetAllMenuItems
	argsKV := map[string]interface{}{}
	if restaurantID != "" {
		rawQuery = queryGetMenuItemsByRestaurant
		argsKV["restaurant_id"] = restaurantID
	}

	query, args, err := sqlx.Named(rawQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetMenuItems named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetMenuItems execution err")
		return nil, err
	}

	items := make([]entity.MenuItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, r.makeMenuItem(row))
	}

	return items, nil
}

func (r *catalogRepository) GetCategories(ctx context.Context) ([]string, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var categories []string

	query, args, err := sqlx.Named(queryGetCategories, map[string]interface{}{})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCategories named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &categories, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCategories execution err")
		return nil, err
	}

	return categories, nil
}

func (r *catalogRepository) GetLocations(ctx context.Context) ([]entity.Location, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []LocationDB

	query, args, err := sqlx.Named(queryGetLocations, map[string]interface{}{})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetLocations named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetLocations execution err")
		return nil, err
	}

	locations := make([]entity.Location, 0, len(rows))
	for _, row := range rows {
		locations = append(locations, entity.Location{
			ID:       row.ID.String,
			City:     row.City.String,
			District: row.District.String,
			Ward:     row.Ward.String,
		})
	}

	return locations, nil
}

func (r *catalogRepository) SearchRestaurantsByLocation(ctx context.Context, city, district, ward string, limit int) ([]entity.Restaurant, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []RestaurantDB

	argsKV := map[string]interface{}{
		"status":   entity.RestaurantStatusApproved,
		"city":     city,
		"district": district,
		"ward":     ward,
		"limit":    limit,
	}

	query, args, err := sqlx.Named(querySearchRestaurantsByLocation, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SearchRestaurantsByLocation named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SearchRestaurantsByLocation execution err")
		return nil, err
	}

	restaurants := make([]entity.Restaurant, 0, len(rows))
	for _, row := range rows {
		restaurants = append(restaurants, r.makeRestaurant(row))
	}

	return restaurants, nil
}

func (r *catalogRepository) GetTimeSlots(ctx context.Context, restaurantID string) ([]entity.TimeSlot, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []TimeSlotDB

	argsKV := map[string]interface{}{
		"restaurant_id": restaurantID,
	}

	query, args, err := sqlx.Named(queryGetTimeSlots, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTimeSlots named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTimeSlots execution err")
		return nil, err
	}

	slots := make([]entity.TimeSlot, 0, len(rows))
	for _, row := range rows {
		slots = append(slots, entity.TimeSlot{
			ID:           row.ID.String,
			RestaurantID: row.RestaurantID.String,
			StartTime:    row.StartTime.String,
			EndTime:      row.EndTime.String,
			MaxBookings:  int(row.MaxBookings.Int64),
			IsActive:     row.IsActive.Bool,
		})
	}

	return slots, nil
}

func (r *catalogRepository) CountActiveBookings(ctx context.Context, restaurantID, bookingDate, timeSlotID string) (int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var count int

	argsKV := map[string]interface{}{
		"restaurant_id": restaurantID,
		"booking_date":  bookingDate,
		"time_slot_id":  timeSlotID,
	}

	query, args, err := sqlx.Named(queryCountActiveBookings, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountActiveBookings named query preparation err")
		return 0, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&count); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountActiveBookings execution err")
		return 0, err
	}

	return count, nil
}

func (r *catalogRepository) makeRestaurant(row RestaurantDB) entity.Restaurant {
	return entity.Restaurant{
		ID:           row.ID.String,
		Name:         row.Name.String,
		Description:  row.Description.String,
		Address:      row.Address.String,
		PhoneNumber:  row.PhoneNumber.String,
		OpeningHours: row.OpeningHours.String,
		Rating:       row.Rating.Float64,
		Status:       row.Status.String,
		LocationID:   row.LocationID.String,
	}
}

func (r *catalogRepository) makeMenuItem(row MenuItemDB) entity.MenuItem {
	return entity.MenuItem{
		ID:           row.ID.String,
		RestaurantID: row.RestaurantID.String,
		Name:         row.Name.String,
		Description:  row.Description.String,
		Price:        row.Price.Float64,
		Category:     row.Category.String,
		IsAvailable:  row.IsAvailable.Bool,
	}
}

package restaurantRepository

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

type TimeSlotDB struct {
	ID           sql.NullString `db:"id"`
	RestaurantID sql.NullString `db:"restaurant_id"`
	StartTime    sql.NullString `db:"start_time"`
	EndTime      sql.NullString `db:"end_time"`
	MaxBookings  sql.NullInt64  `db:"max_bookings"`
	IsActive     sql.NullBool   `db:"is_active"`
}

func (r *restaurantsRepository) ListRestaurants(ctx context.Context, city, district, ward string, limit, offset int) ([]entity.Restaurant, int, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"status":   entity.RestaurantStatusApproved,
		"city":     city,
		"district": district,
		"ward":     ward,
		"limit":    limit,
		"offset":   offset,
	}

	var total int
	countQuery, countArgs, err := sqlx.Named(queryCountRestaurants, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListRestaurants count named query preparation err")
		return nil, 0, err
	}
	countQuery = r.q.Rebind(countQuery)

	if err := r.q.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListRestaurants count execution err")
		return nil, 0, err
	}

	var rows []RestaurantDB
	query, args, err := sqlx.Named(queryListRestaurants, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListRestaurants named query preparation err")
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListRestaurants execution err")
		return nil, 0, err
	}

	restaurants := make([]entity.Restaurant, 0, len(rows))
	for _, row := range rows {
		restaurants = append(restaurants, r.makeRestaurant(row))
	}

	return restaurants, total, nil
}

func (r *restaurantsRepository) GetRestaurantByID(ctx context.Context, id string) (entity.Restaurant, error) {
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

func (r *restaurantsRepository) GetMenuItems(ctx context.Context, restaurantID string) ([]entity.MenuItem, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []MenuItemDB

	argsKV := map[string]interface{}{
		"restaurant_id": restaurantID,
	}

	query, args, err := sqlx.Named(queryGetMenuItems, argsKV)
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
		items = append(items, entity.MenuItem{
			ID:           row.ID.String,
			RestaurantID: row.RestaurantID.String,
			Name:         row.Name.String,
			Description:  row.Description.String,
			Price:        row.Price.Float64,
			Category:     row.Category.String,
			IsAvailable:  row.IsAvailable.Bool,
		})
	}

	return items, nil
}

func (r *restaurantsRepository) GetTimeSlots(ctx context.Context, restaurantID string) ([]entity.TimeSlot, error) {
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

func (r *restaurantsRepository) CountActiveBookings(ctx context.Context, restaurantID, bookingDate, timeSlotID string) (int, error) {
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

func (r *restaurantsRepository) makeRestaurant(row RestaurantDB) entity.Restaurant {
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

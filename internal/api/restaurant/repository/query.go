package restaurantRepository

const (
	queryListRestaurants = `
		SELECT
			r.id,
			r.name,
			r.description,
			r.address,
			r.phone_number,
			r.opening_hours,
			r.rating,
			r.status,
			r.location_id
		FROM restaurants r
		LEFT JOIN locations l ON l.id = r.location_id
		WHERE r.status = :status
		  AND (:city = '' OR l.city = :city)
		  AND (:district = '' OR l.district = :district)
		  AND (:ward = '' OR l.ward = :ward)
		ORDER BY r.rating DESC, r.name ASC
		LIMIT :limit OFFSET :offset
	`

	queryCountRestaurants = `
		SELECT COUNT(*)
		FROM restaurants r
		LEFT JOIN locations l ON l.id = r.location_id
		WHERE r.status = :status
		  AND (:city = '' OR l.city = :city)
		  AND (:district = '' OR l.district = :district)
		  AND (:ward = '' OR l.ward = :ward)
	`

	queryGetRestaurantByID = `
		SELECT
			id,
			name,
			description,
			address,
			phone_number,
			opening_hours,
			rating,
			status,
			location_id
		FROM restaurants
		WHERE id = :id AND status = :status
	`

	queryGetMenuItems = `
		SELECT
			id,
			restaurant_id,
			name,
			description,
			price,
			category,
			is_available
		FROM menu_items
		WHERE restaurant_id = :restaurant_id AND is_available = TRUE
		ORDER BY category ASC, name ASC
	`

	queryGetTimeSlots = `
		SELECT
			id,
			restaurant_id,
			start_time,
			end_time,
			max_bookings,
			is_active
		FROM time_slots
		WHERE restaurant_id = :restaurant_id AND is_active = TRUE
		ORDER BY start_time ASC
	`

	queryCountActiveBookings = `
		SELECT COUNT(*)
		FROM bookings
		WHERE restaurant_id = :restaurant_id
		  AND booking_date = :booking_date
		  AND time_slot_id = :time_slot_id
		  AND status IN ('PENDING', 'CONFIRMED')
	`
)

package chatbotRepository

const (
	queryGetApprovedRestaurants = `
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
		WHERE status = :status
		ORDER BY name ASC
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

	queryGetAllMenuItems = `
		SELECT
			id,
			restaurant_id,
			name,
			description,
			price,
			category,
			is_available
		FROM menu_items
		WHERE is_available = TRUE
		ORDER BY name ASC
	`

	queryGetMenuItemsByRestaurant = `
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

	queryGetCategories = `
		SELECT DISTINCT category
		FROM menu_items
		WHERE category IS NOT NULL AND category <> ''
		ORDER BY category ASC
	`

	queryGetLocations = `
		SELECT
			id,
			city,
			district,
			ward
		FROM locations
	`

	querySearchRestaurantsByLocation = `
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
		JOIN locations l ON l.id = r.location_id
		WHERE r.status = :status
		  AND (:city = '' OR l.city = :city)
		  AND (:district = '' OR l.district = :district)
		  AND (:ward = '' OR l.ward = :ward)
		ORDER BY r.rating DESC, r.name ASC
		LIMIT :limit
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

	queryCreateChatLog = `
		INSERT INTO chat_logs (
			id,
			user_id,
			session_id,
			question,
			answer,
			intent,
			confidence,
			type,
			created_at
		) VALUES (
			:id,
			:user_id,
			:session_id,
			:question,
			:answer,
			:intent,
			:confidence,
			:type,
			:created_at
		)
	`

	queryGetChatLogsByUser = `
		SELECT
			id,
			user_id,
			session_id,
			question,
			answer,
			intent,
			confidence,
			type,
			created_at
		FROM chat_logs
		WHERE user_id = :user_id
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountChatLogsByUser = `
		SELECT COUNT(*)
		FROM chat_logs
		WHERE user_id = :user_id
	`
)

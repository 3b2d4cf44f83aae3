package chatbotService

import (
	"RestoBook/internal/api/chatbot"
	chatbotRepository "RestoBook/internal/api/chatbot/repository"
	"RestoBook/internal/entity"
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/context"
)

const (
	answerNoRestaurantData = "Hiện tại em chưa có dữ liệu nhà hàng trong hệ thống ạ."
	menuItemsPerCategory   = 5
	restaurantListLimit    = 5
)

// handleQuery routes a detected DB_QUERY intent to its handler.
func (s *chatbotService) handleQuery(ctx context.Context, client chatbotRepository.Client, det chatbot.DetectionResult, userText string) chatbot.HandlerResult {
	switch det.Intent {
	case "ASK_OPENING_HOURS":
		return s.handleAskOpeningHours(ctx, client, det.AnswerTemplate, userText)
	case "ASK_TIME_SLOTS":
		return s.handleAskTimeSlots(ctx, client, det.AnswerTemplate, userText)
	case "ASK_ADDRESS":
		return s.handleAskAddress(ctx, client, det.AnswerTemplate, userText)
	case "ASK_PHONE":
		return s.handleAskPhone(ctx, client, det.AnswerTemplate, userText)
	case "ASK_MENU":
		return s.handleAskMenu(ctx, client, userText)
	case "ASK_DISH_PRICE":
		return s.handleAskDishPrice(ctx, client, det.AnswerTemplate, userText)
	case "ASK_MENU_BY_CATEGORY":
		return s.handleAskMenuByCategory(ctx, client, userText)
	case "SEARCH_RESTAURANT_BY_LOCATION":
		return s.handleSearchRestaurantByLocation(ctx, client, userText)
	case "ASK_RATING":
		return s.handleAskRating(ctx, client, userText)
	case "CHECK_AVAILABILITY_SIMPLE":
		return s.handleCheckAvailabilitySimple(ctx, client, det.AnswerTemplate, userText)
	default:
		return chatbot.HandlerResult{
			Answer: fmt.Sprintf("Intent %q hiện chưa được hỗ trợ.", det.Intent),
			Type:   chatbot.TypeError,
		}
	}
}

// fillTemplate replaces [KEY] placeholders with mapped values.
func fillTemplate(template string, mapping map[string]string) string {
	result := template
	for key, value := range mapping {
		result = strings.ReplaceAll(result, "["+key+"]", value)
	}
	return result
}

// formatPrice renders a price like "150,000đ", or "Liên hệ" when unset.
func formatPrice(price float64) string {
	if price <= 0 {
		return "Liên hệ"
	}

	digits := fmt.Sprintf("%d", int64(price))
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	b.WriteString("đ")
	return b.String()
}

func formatTimeSlot(slot entity.TimeSlot) string {
	return fmt.Sprintf("%s-%s", slot.StartTime, slot.EndTime)
}

func errorResult(answer string) chatbot.HandlerResult {
	return chatbot.HandlerResult{Answer: answer, Type: chatbot.TypeError}
}

func askSlotResult(answer string) chatbot.HandlerResult {
	return chatbot.HandlerResult{Answer: answer, Type: chatbot.TypeAskSlot}
}

// resolveRestaurant runs restaurant extraction and translates the two
// failure statuses into final handler results. The askName message is
// handler specific so each intent asks in its own words.
func (s *chatbotService) resolveRestaurant(ctx context.Context, client chatbotRepository.Client, userText, askName string) (*entity.Restaurant, *chatbot.HandlerResult) {
	slot := s.extractRestaurant(ctx, client, userText)

	if slot.Status == chatbot.SlotStatusNoData {
		r := errorResult(answerNoRestaurantData)
		return nil, &r
	}

	if slot.Status != chatbot.SlotStatusOK || slot.Restaurant == nil {
		r := askSlotResult(askName)
		return nil, &r
	}

	return slot.Restaurant, nil
}

func (s *chatbotService) handleAskOpeningHours(ctx context.Context, client chatbotRepository.Client, answerTemplate, userText string) chatbot.HandlerResult {
	restaurant, failed := s.resolveRestaurant(ctx, client, userText,
		"Em chưa xác định được tên nhà hàng, anh/chị cho em xin tên nhà hàng cụ thể với ạ?")
	if failed != nil {
		return *failed
	}

	if restaurant.OpeningHours == "" {
		return errorResult(fmt.Sprintf("Em chưa tìm thấy giờ mở cửa của nhà hàng %s ạ.", restaurant.Name))
	}

	answer := fillTemplate(answerTemplate, map[string]string{
		"RES_NAME":      restaurant.Name,
		"OPENING_HOURS": restaurant.OpeningHours,
	})

	return chatbot.HandlerResult{Answer: answer, Type: chatbot.TypeDBQuery}
}

func (s *chatbotService) handleAskTimeSlots(ctx context.Context, client chatbotRepository.Client, answerTemplate, userText string) chatbot.HandlerResult {
	restaurant, failed := s.resolveRestaurant(ctx, client, userText,
		"Anh/chị cho em xin tên nhà hàng để em xem các khung giờ phục vụ với ạ?")
	if failed != nil {
		return *failed
	}

	slots, err := client.Catalog.GetTimeSlots(ctx, restaurant.ID)
	if err != nil || len(slots) == 0 {
		return errorResult(fmt.Sprintf("Hiện tại em chưa thấy cấu hình khung giờ cho nhà hàng %s ạ.", restaurant.Name))
	}

	slotStrs := make([]string, 0, len(slots))
	for _, slot := range slots {
		slotStrs = append(slotStrs, formatTimeSlot(slot))
	}

	bookingDate := extractDate(userText, time.Now())
	if bookingDate == "" {
		bookingDate = "ngày anh/chị chọn"
	}

	answer := fillTemplate(answerTemplate, map[string]string{
		"RES_NAME":     restaurant.Name,
		"BOOKING_DATE": bookingDate,
		"TIME_SLOTS":   strings.Join(slotStrs, ", "),
	})

	return chatbot.HandlerResult{Answer: answer, Type: chatbot.TypeDBQuery}
}

func (s *chatbotService) handleAskAddress(ctx context.Context, client chatbotRepository.Client, answerTemplate, userText string) chatbot.HandlerResult {
	restaurant, failed := s.resolveRestaurant(ctx, client, userText,
		"Anh/chị cho em xin tên nhà hàng để em kiểm tra địa chỉ với ạ?")
	if failed != nil {
		return *failed
	}

	if restaurant.Address == "" {
		return errorResult(fmt.Sprintf("Em chưa tìm thấy địa chỉ của nhà hàng %s ạ.", restaurant.Name))
	}

	answer := fillTemplate(answerTemplate, map[string]string{
		"RES_NAME": restaurant.Name,
		"ADDRESS":  restaurant.Address,
	})

	return chatbot.HandlerResult{Answer: answer, Type: chatbot.TypeDBQuery}
}

func (s *chatbotService) handleAskPhone(ctx context.Context, client chatbotRepository.Client, answerTemplate, userText string) chatbot.HandlerResult {
	restaurant, failed := s.resolveRestaurant(ctx, client, userText,
		"Anh/chị cho em xin tên nhà hàng để em kiểm tra số điện thoại với ạ?")
	if failed != nil {
		return *failed
	}

	if restaurant.PhoneNumber == "" {
		return errorResult(fmt.Sprintf("Em chưa tìm thấy số điện thoại của nhà hàng %s ạ.", restaurant.Name))
	}

	answer := fillTemplate(answerTemplate, map[string]string{
		"RES_NAME": restaurant.Name,
		"PHONE":    restaurant.PhoneNumber,
	})

	return chatbot.HandlerResult{Answer: answer, Type: chatbot.TypeDBQuery}
}

// handleAskMenu lists the whole menu grouped by category. The listing
// is already user-facing so it skips the paraphrase stage.
func (s *chatbotService) handleAskMenu(ctx context.Context, client chatbotRepository.Client, userText string) chatbot.HandlerResult {
	restaurant, failed := s.resolveRestaurant(ctx, client, userText,
		"Anh/chị cho em xin tên nhà hàng để em xem menu với ạ?")
	if failed != nil {
		return *failed
	}

	dishes, err := client.Catalog.GetMenuItems(ctx, restaurant.ID)
	if err != nil || len(dishes) == 0 {
		return errorResult(fmt.Sprintf("Hiện tại nhà hàng %s chưa cập nhật menu ạ.", restaurant.Name))
	}

	answer := formatMenuList(fmt.Sprintf("Menu tại %s:", restaurant.Name), dishes)

	return chatbot.HandlerResult{Answer: answer, Type: chatbot.TypeDBQuery, SkipParaphrase: true}
}

// formatMenuList groups dishes by category, five per category, keeping
// the category order of first appearance.
func formatMenuList(header string, dishes []entity.MenuItem) string {
	var categories []string
	byCategory := map[string][]entity.MenuItem{}
	for _, d := range dishes {
		cat := d.Category
		if cat == "" {
			cat = "Khác"
		}
		if _, ok := byCategory[cat]; !ok {
			categories = append(categories, cat)
		}
		byCategory[cat] = append(byCategory[cat], d)
	}

	parts := []string{header}
	for _, cat := range categories {
		parts = append(parts, fmt.Sprintf("\n📌 %s:", cat))
		for i, item := range byCategory[cat] {
			if i >= menuItemsPerCategory {
				break
			}
			parts = append(parts, fmt.Sprintf("  %d. %s: %s", i+1, item.Name, formatPrice(item.Price)))
		}
	}

	return strings.Join(parts, "\n")
}

func (s *chatbotService) handleAskDishPrice(ctx context.Context, client chatbotRepository.Client, answerTemplate, userText string) chatbot.HandlerResult {
	slot := s.extractDish(ctx, client, userText, "")

	if slot.Status == chatbot.SlotStatusNoData {
		return errorResult("Em chưa tìm thấy món ăn nào trong hệ thống ạ.")
	}

	if slot.Status != chatbot.SlotStatusOK || slot.Dish == nil {
		return askSlotResult("Anh/chị cho em xin tên món để em kiểm tra giá với ạ?")
	}

	dish := slot.Dish
	if dish.Price <= 0 {
		return errorResult(fmt.Sprintf("Món %s chưa có giá, anh/chị vui lòng liên hệ nhà hàng ạ.", dish.Name))
	}

	answer := fillTemplate(answerTemplate, map[string]string{
		"DISH_NAME": dish.Name,
		"PRICE":     formatPrice(dish.Price),
	})

	return chatbot.HandlerResult{Answer: answer, Type: chatbot.TypeDBQuery}
}

// handleAskMenuByCategory narrows the menu to one category when the
// question names one, otherwise falls back to the full listing.
func (s *chatbotService) handleAskMenuByCategory(ctx context.Context, client chatbotRepository.Client, userText string) chatbot.HandlerResult {
	restaurant, failed := s.resolveRestaurant(ctx, client, userText,
		"Anh/chị cho em xin tên nhà hàng để em xem menu với ạ?")
	if failed != nil {
		return *failed
	}

	dishes, err := client.Catalog.GetMenuItems(ctx, restaurant.ID)
	if err != nil || len(dishes) == 0 {
		return errorResult(fmt.Sprintf("Hiện tại nhà hàng %s chưa cập nhật menu ạ.", restaurant.Name))
	}

	catSlot := s.extractCategory(ctx, client, userText)
	if catSlot.Category == "" {
		answer := formatMenuList(fmt.Sprintf("Menu nhà hàng %s:", restaurant.Name), dishes)
		return chatbot.HandlerResult{Answer: answer, Type: chatbot.TypeDBQuery, SkipParaphrase: true}
	}

	var filtered []entity.MenuItem
	for _, d := range dishes {
		if d.Category == catSlot.Category {
			filtered = append(filtered, d)
		}
	}

	if len(filtered) == 0 {
		return errorResult(fmt.Sprintf("Hiện tại nhà hàng %s chưa có món %s ạ.", restaurant.Name, catSlot.Category))
	}

	parts := []string{fmt.Sprintf("Các món %s tại %s:", catSlot.Category, restaurant.Name)}
	for i, d := range filtered {
		if i >= menuItemsPerCategory {
			break
		}
		parts = append(parts, fmt.Sprintf("%d. %s: %s", i+1, d.Name, formatPrice(d.Price)))
	}

	return chatbot.HandlerResult{
		Answer:         strings.Join(parts, "\n"),
		Type:           chatbot.TypeDBQuery,
		SkipParaphrase: true,
	}
}

func (s *chatbotService) handleSearchRestaurantByLocation(ctx context.Context, client chatbotRepository.Client, userText string) chatbot.HandlerResult {
	loc := s.extractLocation(ctx, client, userText)

	if loc.City == "" && loc.District == "" && loc.Ward == "" {
		return askSlotResult("Anh/chị muốn tìm nhà hàng ở đâu ạ?")
	}

	restaurants, err := client.Catalog.SearchRestaurantsByLocation(ctx, loc.City, loc.District, loc.Ward, restaurantListLimit)

	locationDisplay := loc.Ward
	if locationDisplay == "" {
		locationDisplay = loc.District
	}
	if locationDisplay == "" {
		locationDisplay = loc.City
	}

	if err != nil || len(restaurants) == 0 {
		if locationDisplay == "" {
			locationDisplay = "khu vực đó"
		}
		return errorResult(fmt.Sprintf("Em chưa tìm thấy nhà hàng nào tại %s ạ.", locationDisplay))
	}

	parts := []string{fmt.Sprintf("Các nhà hàng ở %s:", locationDisplay)}
	for i, r := range restaurants {
		if i >= restaurantListLimit {
			break
		}
		parts = append(parts, fmt.Sprintf("%d. %s", i+1, r.Name))
		parts = append(parts, fmt.Sprintf("   Địa chỉ: %s", r.Address))
	}

	return chatbot.HandlerResult{
		Answer:         strings.Join(parts, "\n"),
		Type:           chatbot.TypeDBQuery,
		SkipParaphrase: true,
	}
}

func (s *chatbotService) handleAskRating(ctx context.Context, client chatbotRepository.Client, userText string) chatbot.HandlerResult {
	restaurant, failed := s.resolveRestaurant(ctx, client, userText,
		"Anh/chị cho em xin tên nhà hàng để em kiểm tra đánh giá với ạ?")
	if failed != nil {
		return *failed
	}

	if restaurant.Rating <= 0 {
		return errorResult(fmt.Sprintf("Nhà hàng %s chưa có đánh giá ạ.", restaurant.Name))
	}

	return chatbot.HandlerResult{
		Answer: fmt.Sprintf("Nhà hàng %s được đánh giá %v/5 sao ạ.", restaurant.Name, restaurant.Rating),
		Type:   chatbot.TypeDBQuery,
	}
}

// handleCheckAvailabilitySimple asks for date and time when missing,
// then checks remaining capacity on the time slot covering the
// requested time before confirming.
func (s *chatbotService) handleCheckAvailabilitySimple(ctx context.Context, client chatbotRepository.Client, answerTemplate, userText string) chatbot.HandlerResult {
	restaurant, failed := s.resolveRestaurant(ctx, client, userText,
		"Anh/chị cho em xin tên nhà hàng để em kiểm tra ạ?")
	if failed != nil {
		return *failed
	}

	dateStr := extractDate(userText, time.Now())
	timeStr := extractTime(userText)

	if dateStr == "" || timeStr == "" {
		return askSlotResult(fmt.Sprintf("Anh/chị cho em biết ngày giờ muốn đặt tại %s để em kiểm tra ạ?", restaurant.Name))
	}

	slots, err := client.Catalog.GetTimeSlots(ctx, restaurant.ID)
	if err == nil {
		for _, slot := range slots {
			if slot.StartTime > timeStr || slot.EndTime <= timeStr {
				continue
			}
			booked, countErr := client.Catalog.CountActiveBookings(ctx, restaurant.ID, dateStr, slot.ID)
			if countErr != nil {
				break
			}
			if slot.MaxBookings > 0 && booked >= slot.MaxBookings {
				return errorResult(fmt.Sprintf(
					"Rất tiếc, khung giờ %s ngày %s tại %s đã kín chỗ ạ.",
					formatTimeSlot(slot), dateStr, restaurant.Name))
			}
			break
		}
	}

	answer := fillTemplate(answerTemplate, map[string]string{
		"RES_NAME": restaurant.Name,
		"DATE":     dateStr,
		"TIME":     timeStr,
	})

	return chatbot.HandlerResult{Answer: answer, Type: chatbot.TypeDBQuery}
}

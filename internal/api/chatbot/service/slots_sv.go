package chatbotService

import (
	"RestoBook/internal/api/chatbot"
	chatbotRepository "RestoBook/internal/api/chatbot/repository"
	"RestoBook/internal/entity"
	"RestoBook/pkg/fuzzy"
	"RestoBook/pkg/normalize"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/context"
)

// Canonical category names with their colloquial synonyms.
var categoryKeywords = map[string][]string{
	"Món chính":   {"mon chinh", "main course", "chinh", "main"},
	"Khai vị":     {"khai vi", "appetizer", "mon khai vi", "khaivi"},
	"Tráng miệng": {"trang mieng", "dessert", "do ngot", "ngot", "trangmieng"},
	"Đồ uống":     {"do uong", "drink", "nuoc", "beverage", "douong", "nuoc uong"},
	"Món phụ":     {"mon phu", "side dish", "phu", "monphu"},
}

var districtKeywords = []string{"quan", "q", "district"}

var bookingStatusKeywords = map[string][]string{
	entity.BookingStatusPending:   {"cho xac nhan", "dang cho", "pending"},
	entity.BookingStatusConfirmed: {"da xac nhan", "confirmed", "xac nhan"},
	entity.BookingStatusRejected:  {"tu choi", "rejected", "bi tu choi"},
	entity.BookingStatusCancelled: {"da huy", "cancelled", "huy"},
	entity.BookingStatusCompleted: {"hoan thanh", "completed", "da hoan thanh"},
	entity.BookingStatusNoShow:    {"khong den", "no show", "vang mat"},
}

var (
	reDateISO      = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	reDateSlash    = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	reDateDash     = regexp.MustCompile(`\b(\d{1,2})-(\d{1,2})-(\d{4})\b`)
	reTimeColon    = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)\b`)
	reTimeGio      = regexp.MustCompile(`\b(\d{1,2})\s*gio\s*(\d{1,2})?\b`)
	reTimeH        = regexp.MustCompile(`\b(\d{1,2})h\b`)
	reGuestsDirect = regexp.MustCompile(`\b(\d{1,2})\s*(nguoi|khach)\b`)
	reGuestsFor    = regexp.MustCompile(`\b(cho|dat)\s+(\d{1,2})\s*(nguoi|khach|cho)?\b`)
	rePriceRange   = regexp.MustCompile(`\b(\d+)\s*k?\s*den\s+(\d+)\s*k\b`)
	rePriceFromTo  = regexp.MustCompile(`\btu\s+(\d+)\s*k\s*den\s+(\d+)\s*k\b`)
	rePriceBelow   = regexp.MustCompile(`\b(duoi|nho hon|<)\s+(\d+)\s*k\b`)
	rePriceAbove   = regexp.MustCompile(`\b(tren|lon hon|>)\s+(\d+)\s*k\b`)
)

const priceOpenEndedMax = 999999999

// extractRestaurant resolves a restaurant mention, substring match
// first, fuzzy second. Anything below the strict threshold downgrades
// to ASK_NAME rather than guessing.
func (s *chatbotService) extractRestaurant(ctx context.Context, catalog chatbotRepository.Client, userText string) chatbot.RestaurantSlot {
	restaurants, err := catalog.Catalog.GetApprovedRestaurants(ctx)
	if err != nil || len(restaurants) == 0 {
		return chatbot.RestaurantSlot{Status: chatbot.SlotStatusNoData}
	}

	normNames := make([]string, len(restaurants))
	for i, r := range restaurants {
		normNames[i] = normalize.StripNamePrefix(normalize.Normalize(r.Name))
	}

	queryNorm := normalize.Normalize(userText)
	if queryNorm == "" {
		return chatbot.RestaurantSlot{Status: chatbot.SlotStatusAskName}
	}

	bestIdx, bestScore := matchNames(queryNorm, normNames)
	if bestIdx < 0 {
		return chatbot.RestaurantSlot{Status: chatbot.SlotStatusAskName}
	}

	if bestScore >= s.cfg.ResStrictThreshold {
		return chatbot.RestaurantSlot{
			Status:     chatbot.SlotStatusOK,
			Restaurant: &restaurants[bestIdx],
			Score:      bestScore,
		}
	}

	return chatbot.RestaurantSlot{Status: chatbot.SlotStatusAskName}
}

func (s *chatbotService) extractDish(ctx context.Context, catalog chatbotRepository.Client, userText string, restaurantID string) chatbot.DishSlot {
	dishes, err := catalog.Catalog.GetMenuItems(ctx, restaurantID)
	if err != nil || len(dishes) == 0 {
		return chatbot.DishSlot{Status: chatbot.SlotStatusNoData}
	}

	normNames := make([]string, len(dishes))
	for i, d := range dishes {
		normNames[i] = normalize.Normalize(d.Name)
	}

	queryNorm := normalize.Normalize(userText)
	if queryNorm == "" {
		return chatbot.DishSlot{Status: chatbot.SlotStatusAskDish}
	}

	bestIdx, bestScore := matchNames(queryNorm, normNames)
	if bestIdx < 0 {
		return chatbot.DishSlot{Status: chatbot.SlotStatusAskDish}
	}

	if bestScore >= s.cfg.DishStrictThreshold {
		return chatbot.DishSlot{
			Status: chatbot.SlotStatusOK,
			Dish:   &dishes[bestIdx],
			Score:  bestScore,
		}
	}

	return chatbot.DishSlot{Status: chatbot.SlotStatusAskDish}
}

// matchNames scores a query against normalized names: a whole-word
// substring hit is a perfect 100, otherwise the best fuzzy ratio wins.
func matchNames(queryNorm string, normNames []string) (int, float64) {
	for idx, name := range normNames {
		if name == "" {
			continue
		}
		if normalize.ContainsWord(queryNorm, name) {
			return idx, 100
		}
	}

	_, idx, score := fuzzy.ExtractOne(queryNorm, normNames)
	if idx < 0 {
		return -1, 0
	}
	return idx, float64(score)
}

// extractLocation keeps only the single highest-confidence hit across
// city, district and ward. A ward hit is suppressed unless it beats the
// competing district score.
func (s *chatbotService) extractLocation(ctx context.Context, catalog chatbotRepository.Client, userText string) chatbot.LocationSlot {
	locations, err := catalog.Catalog.GetLocations(ctx)
	if err != nil || len(locations) == 0 {
		return chatbot.LocationSlot{}
	}

	cities := uniqueValues(locations, func(l entity.Location) string { return l.City })
	districts := uniqueValues(locations, func(l entity.Location) string { return l.District })
	wards := uniqueValues(locations, func(l entity.Location) string { return l.Ward })

	queryNorm := normalize.Normalize(userText)

	type candidate struct {
		value string
		score float64
	}
	candidates := map[string]candidate{}

	if v, score, ok := fuzzyPick(queryNorm, cities, s.cfg.LocationStrictThreshold); ok {
		candidates["city"] = candidate{v, score}
	}

	if v, score, ok := fuzzyPick(queryNorm, districts, s.cfg.LocationStrictThreshold); ok {
		candidates["district"] = candidate{v, score}
	} else if v, ok := matchDistrictPattern(queryNorm, districts); ok {
		candidates["district"] = candidate{v, 90}
	}

	if v, score, ok := fuzzyPick(queryNorm, wards, s.cfg.LocationStrictThreshold); ok {
		if d, exists := candidates["district"]; !exists || score > d.score {
			candidates["ward"] = candidate{v, score}
		}
	}

	bestType := ""
	best := candidate{score: -1}
	for _, locType := range []string{"city", "district", "ward"} {
		if c, ok := candidates[locType]; ok && c.score > best.score {
			best = c
			bestType = locType
		}
	}

	result := chatbot.LocationSlot{}
	switch bestType {
	case "city":
		result.City = best.value
	case "district":
		result.District = best.value
	case "ward":
		result.Ward = best.value
	default:
		return result
	}

	result.Type = bestType
	result.Confidence = best.score
	return result
}

func uniqueValues(locations []entity.Location, pick func(entity.Location) string) []string {
	seen := map[string]bool{}
	var values []string
	for _, l := range locations {
		v := pick(l)
		if v != "" && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	return values
}

func fuzzyPick(queryNorm string, choices []string, threshold float64) (string, float64, bool) {
	if len(choices) == 0 {
		return "", 0, false
	}

	normChoices := make([]string, len(choices))
	for i, c := range choices {
		normChoices[i] = normalize.Normalize(c)
	}

	_, idx, score := fuzzy.ExtractOne(queryNorm, normChoices)
	if idx < 0 || float64(score) < threshold {
		return "", 0, false
	}

	return choices[idx], float64(score), true
}

// matchDistrictPattern catches "quan 1", "q 3", "district 7".
func matchDistrictPattern(queryNorm string, districts []string) (string, bool) {
	for _, keyword := range districtKeywords {
		re := regexp.MustCompile(`\b` + keyword + `\s*(\d+|[a-z]+)\b`)
		m := re.FindStringSubmatch(queryNorm)
		if m == nil {
			continue
		}
		needle := m[1]
		for _, d := range districts {
			if strings.Contains(normalize.Normalize(d), needle) {
				return d, true
			}
		}
	}
	return "", false
}

// extractCategory scores keyword hits by matched length relative to the
// question, then falls back to fuzzy matching the DB categories.
func (s *chatbotService) extractCategory(ctx context.Context, catalog chatbotRepository.Client, userText string) chatbot.CategorySlot {
	queryNorm := normalize.Normalize(userText)
	if queryNorm == "" {
		return chatbot.CategorySlot{}
	}

	bestCategory := ""
	bestScore := 0.0

	for category, keywords := range categoryKeywords {
		for _, keyword := range keywords {
			if strings.Contains(queryNorm, keyword) {
				score := float64(len(keyword)) / float64(len(queryNorm)) * 100
				if score > bestScore {
					bestScore = score
					bestCategory = category
				}
			}
		}
	}

	if bestCategory == "" {
		categories, err := catalog.Catalog.GetCategories(ctx)
		if err == nil && len(categories) > 0 {
			if v, score, ok := fuzzyPick(queryNorm, categories, 60); ok {
				bestCategory = v
				bestScore = score
			}
		}
	}

	if bestCategory == "" {
		return chatbot.CategorySlot{}
	}

	return chatbot.CategorySlot{Category: bestCategory, Confidence: bestScore}
}

// extractDate returns an ISO date or "". Relative terms resolve against
// the supplied today; invalid calendar dates are dropped silently.
func extractDate(userText string, today time.Time) string {
	text := normalize.Normalize(userText)

	switch {
	case strings.Contains(text, "hom nay") || strings.Contains(text, "toi nay"):
		return today.Format("2006-01-02")
	case strings.Contains(text, "ngay mai") || strings.Contains(text, "mai"):
		return today.AddDate(0, 0, 1).Format("2006-01-02")
	case strings.Contains(text, "tuan sau") || strings.Contains(text, "tuan toi"):
		return today.AddDate(0, 0, 7).Format("2006-01-02")
	case strings.Contains(text, "ngay kia"):
		return today.AddDate(0, 0, 2).Format("2006-01-02")
	}

	if m := reDateISO.FindStringSubmatch(userText); m != nil {
		if d, ok := buildDate(m[1], m[2], m[3]); ok {
			return d
		}
	}

	if m := reDateSlash.FindStringSubmatch(userText); m != nil {
		if d, ok := buildDate(m[3], m[2], m[1]); ok {
			return d
		}
	}

	if m := reDateDash.FindStringSubmatch(userText); m != nil {
		if d, ok := buildDate(m[3], m[2], m[1]); ok {
			return d
		}
	}

	return ""
}

func buildDate(year, month, day string) (string, bool) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)

	if m < 1 || m > 12 || d < 1 || d > 31 {
		return "", false
	}

	date := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if date.Year() != y || int(date.Month()) != m || date.Day() != d {
		return "", false
	}

	return date.Format("2006-01-02"), true
}

// extractTime returns "HH:MM" or "".
func extractTime(userText string) string {
	if m := reTimeColon.FindStringSubmatch(userText); m != nil {
		hh, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%02d:%02d", hh, mm)
	}

	text := normalize.Normalize(userText)

	if m := reTimeGio.FindStringSubmatch(text); m != nil {
		hh, _ := strconv.Atoi(m[1])
		mm := 0
		if m[2] != "" {
			mm, _ = strconv.Atoi(m[2])
		}
		if hh >= 0 && hh <= 23 && mm >= 0 && mm <= 59 {
			return fmt.Sprintf("%02d:%02d", hh, mm)
		}
	}

	if m := reTimeH.FindStringSubmatch(text); m != nil {
		hh, _ := strconv.Atoi(m[1])
		if hh >= 0 && hh <= 23 {
			return fmt.Sprintf("%02d:00", hh)
		}
	}

	return ""
}

// extractNumGuests accepts 1 to 50 guests, 0 means not found.
func extractNumGuests(userText string) int {
	text := normalize.Normalize(userText)

	if m := reGuestsDirect.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 && n <= 50 {
			return n
		}
	}

	if m := reGuestsFor.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[2]); err == nil && n >= 1 && n <= 50 {
			return n
		}
	}

	return 0
}

// extractPriceRange parses thousands-denominated ranges like "100k-300k"
// or open-ended "tren 200k". Normalization drops the hyphen, so the
// range separator is canonicalized to "den" first.
func extractPriceRange(userText string) *chatbot.PriceRange {
	text := normalize.Normalize(strings.ReplaceAll(userText, "-", " den "))

	if m := rePriceFromTo.FindStringSubmatch(text); m != nil {
		minPrice, _ := strconv.ParseInt(m[1], 10, 64)
		maxPrice, _ := strconv.ParseInt(m[2], 10, 64)
		return &chatbot.PriceRange{Min: minPrice * 1000, Max: maxPrice * 1000}
	}

	if m := rePriceRange.FindStringSubmatch(text); m != nil {
		minPrice, _ := strconv.ParseInt(m[1], 10, 64)
		maxPrice, _ := strconv.ParseInt(m[2], 10, 64)
		return &chatbot.PriceRange{Min: minPrice * 1000, Max: maxPrice * 1000}
	}

	if m := rePriceBelow.FindStringSubmatch(text); m != nil {
		maxPrice, _ := strconv.ParseInt(m[2], 10, 64)
		return &chatbot.PriceRange{Min: 0, Max: maxPrice * 1000}
	}

	if m := rePriceAbove.FindStringSubmatch(text); m != nil {
		minPrice, _ := strconv.ParseInt(m[2], 10, 64)
		return &chatbot.PriceRange{Min: minPrice * 1000, Max: priceOpenEndedMax}
	}

	return nil
}

func extractBookingStatus(userText string) string {
	text := normalize.Normalize(userText)

	for _, status := range []string{
		entity.BookingStatusPending,
		entity.BookingStatusConfirmed,
		entity.BookingStatusRejected,
		entity.BookingStatusCancelled,
		entity.BookingStatusCompleted,
		entity.BookingStatusNoShow,
	} {
		for _, keyword := range bookingStatusKeywords[status] {
			if strings.Contains(text, keyword) {
				return status
			}
		}
	}

	return ""
}

// extractAllSlots gathers every slot from one question in a single bag.
func (s *chatbotService) extractAllSlots(ctx context.Context, catalog chatbotRepository.Client, userText string) chatbot.Slots {
	return chatbot.Slots{
		Restaurant:    s.extractRestaurant(ctx, catalog, userText),
		Location:      s.extractLocation(ctx, catalog, userText),
		Dish:          s.extractDish(ctx, catalog, userText, ""),
		Category:      s.extractCategory(ctx, catalog, userText),
		Date:          extractDate(userText, time.Now()),
		Time:          extractTime(userText),
		NumGuests:     extractNumGuests(userText),
		PriceRange:    extractPriceRange(userText),
		BookingStatus: extractBookingStatus(userText),
	}
}

package chatbot

import (
	"RestoBook/internal/entity"
	"time"
)

// Detection result types.
const (
	TypeFAQ      = "FAQ"
	TypeDBQuery  = "DB_QUERY"
	TypeUnknown  = "UNKNOWN"
	TypeGreeting = "GREETING"
	TypeInvalid  = "INVALID"
	TypeNonsense = "NONSENSE"
	TypeValid    = "VALID"
	TypeAskSlot  = "ASK_SLOT"
	TypeError    = "ERROR"
)

// Extraction statuses. NO_DATA means the catalog itself is empty,
// ASK_NAME/ASK_DISH mean data exists but nothing matched confidently.
const (
	SlotStatusOK      = "OK"
	SlotStatusAskName = "ASK_NAME"
	SlotStatusAskDish = "ASK_DISH"
	SlotStatusNoData  = "NO_DATA"
)

type AskRequest struct {
	Question      string `json:"question" validate:"required,min=1,max=1000"`
	SessionID     string `json:"session_id" validate:"omitempty,max=128"`
	UseParaphrase *bool  `json:"use_paraphrase"`
}

type AskResponse struct {
	Answer     string  `json:"answer"`
	RawAnswer  string  `json:"raw_answer,omitempty"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

type ParaphraseRequest struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}

type ParaphraseResponse struct {
	Original    string `json:"original"`
	Paraphrased string `json:"paraphrased"`
	ModelStatus string `json:"model_status"`
}

type HealthResponse struct {
	Status           string    `json:"status"`
	ModelLoaded      bool      `json:"model_loaded"`
	FaqCount         int       `json:"faq_count"`
	IntentCount      int       `json:"intent_count"`
	ParaphraseStatus string    `json:"paraphrase_status"`
	Timestamp        time.Time `json:"timestamp"`
}

type HistoryEntry struct {
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Intent     string    `json:"intent"`
	Type       string    `json:"type"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

type HistoryResponse struct {
	Entries []HistoryEntry `json:"entries"`
	Total   int            `json:"total"`
}

// ValidationResult is the outcome of the pre-detection question check.
type ValidationResult struct {
	IsValid           bool
	Type              string
	Message           string
	SkipSemanticMatch bool
}

// DetectionResult carries the best knowledge-base match for one question.
type DetectionResult struct {
	Type            string
	Intent          string
	MatchedQuestion string
	Answer          string
	AnswerTemplate  string
	RequiredSlots   []string
	Category        string
	Confidence      float64
	Message         string
}

type RestaurantSlot struct {
	Status     string
	Restaurant *entity.Restaurant
	Score      float64
}

type DishSlot struct {
	Status string
	Dish   *entity.MenuItem
	Score  float64
}

type LocationSlot struct {
	City       string
	District   string
	Ward       string
	Type       string
	Confidence float64
}

type CategorySlot struct {
	Category   string
	Confidence float64
}

type PriceRange struct {
	Min int64
	Max int64
}

// Slots is the full extraction bag for one question.
type Slots struct {
	Restaurant    RestaurantSlot
	Location      LocationSlot
	Dish          DishSlot
	Category      CategorySlot
	Date          string
	Time          string
	NumGuests     int
	PriceRange    *PriceRange
	BookingStatus string
}

// HandlerResult is what an intent or FAQ handler produces before the
// paraphrase stage.
type HandlerResult struct {
	Answer         string
	Type           string
	Category       string
	SkipParaphrase bool
}

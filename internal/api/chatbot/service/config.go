package chatbotService

import (
	"os"
	"strconv"
	"time"
)

// Config carries the tuned decision thresholds. The three detection
// cutoffs intentionally overlap: an intent match below its own
// threshold can still win over a passing FAQ match, and anything above
// the fallback cutoff beats giving up.
type Config struct {
	IntentThreshold   float64
	FAQThreshold      float64
	FallbackThreshold float64

	ResStrictThreshold      float64
	DishStrictThreshold     float64
	LocationStrictThreshold float64

	FallbackMessage   string
	KnowledgeBaseDir  string
	EmbeddingCacheTTL time.Duration
}

const defaultFallbackMessage = "Xin lỗi, tôi chưa hiểu câu hỏi của bạn. Bạn có thể diễn đạt lại được không?"

func NewConfig() Config {
	return Config{
		IntentThreshold:   envFloat("INTENT_THRESHOLD", 0.75),
		FAQThreshold:      envFloat("FAQ_THRESHOLD", 0.60),
		FallbackThreshold: envFloat("FALLBACK_THRESHOLD", 0.50),

		ResStrictThreshold:      envFloat("RES_STRICT_THRESHOLD", 80),
		DishStrictThreshold:     envFloat("DISH_STRICT_THRESHOLD", 80),
		LocationStrictThreshold: envFloat("LOCATION_STRICT_THRESHOLD", 75),

		FallbackMessage:   envString("CHATBOT_FALLBACK_MESSAGE", defaultFallbackMessage),
		KnowledgeBaseDir:  envString("KNOWLEDGE_BASE_DIR", "./data/knowledge_base"),
		EmbeddingCacheTTL: 24 * time.Hour,
	}
}

func envFloat(key string, fallback float64) float64 {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return fallback
}

func envString(key, fallback string) string {
	if raw := os.Getenv(key); raw != "" {
		return raw
	}
	return fallback
}

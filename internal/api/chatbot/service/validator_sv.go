package chatbotService

import (
	"RestoBook/internal/api/chatbot"
	"RestoBook/pkg/normalize"
	"regexp"
	"strings"
)

var greetingKeywords = []string{
	"hello", "hi", "alo", "hallo",
	"xin chao", "chao", "chao ban", "chao anh", "chao em",
	"toi la", "ban la ai", "em la gi",
	"thank you", "thanks", "cam on", "tks", "ty",
	"bye", "goodbye", "good bye", "tam biet", "see you",
	"ok", "duoc", "vang", "da", "yes", "no", "khong",
	"khong duoc", "duoc khong",
}

var keyboardPatterns = []string{"asdf", "qwer", "zxcv", "hjkl", "asdfg", "qwert", "zxcvb"}

var allDigits = regexp.MustCompile(`^\d+$`)

const nonsenseMessage = "Tôi không hiểu câu hỏi của bạn, bạn có thể nói rõ hơn được không?"

// ValidateQuestion pre-filters input before any semantic matching.
// Greetings skip detection entirely; nonsense stops the request.
func (s *chatbotService) ValidateQuestion(question string) chatbot.ValidationResult {
	if strings.TrimSpace(question) == "" {
		return chatbot.ValidationResult{
			IsValid: false,
			Type:    chatbot.TypeInvalid,
			Message: "Câu hỏi trống",
		}
	}

	normText := normalize.Normalize(question)
	if normText == "" {
		return chatbot.ValidationResult{
			IsValid: false,
			Type:    chatbot.TypeInvalid,
			Message: "Câu hỏi không hợp lệ",
		}
	}

	if isGreeting(normText) {
		return chatbot.ValidationResult{
			IsValid:           true,
			Type:              chatbot.TypeGreeting,
			SkipSemanticMatch: true,
		}
	}

	if isNonsense(normText) {
		return chatbot.ValidationResult{
			IsValid: false,
			Type:    chatbot.TypeNonsense,
			Message: nonsenseMessage,
		}
	}

	return chatbot.ValidationResult{
		IsValid: true,
		Type:    chatbot.TypeValid,
	}
}

func isGreeting(normText string) bool {
	for _, keyword := range greetingKeywords {
		// Word-boundary matching keeps "ok" from firing inside "korean".
		if normalize.ContainsWord(normText, keyword) {
			return true
		}
	}
	return false
}

func isNonsense(normText string) bool {
	compact := strings.ReplaceAll(normText, " ", "")

	if len(compact) < 2 {
		return true
	}

	if allDigits.MatchString(compact) {
		return true
	}

	if !strings.ContainsAny(compact, "aeiou") {
		return true
	}

	for _, pattern := range keyboardPatterns {
		if strings.Contains(compact, pattern) {
			return true
		}
	}

	return false
}

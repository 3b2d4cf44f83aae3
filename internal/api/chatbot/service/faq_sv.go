package chatbotService

import "RestoBook/internal/api/chatbot"

const (
	faqDefaultAnswer   = "Xin lỗi, tôi không có câu trả lời cho câu hỏi này."
	faqDefaultCategory = "GENERAL"
)

// handleFAQ returns the stored FAQ answer for the matched question.
func (s *chatbotService) handleFAQ(det chatbot.DetectionResult) chatbot.HandlerResult {
	answer := det.Answer
	if answer == "" {
		answer = faqDefaultAnswer
	}

	category := det.Category
	if category == "" {
		category = faqDefaultCategory
	}

	return chatbot.HandlerResult{
		Answer:   answer,
		Type:     chatbot.TypeFAQ,
		Category: category,
	}
}

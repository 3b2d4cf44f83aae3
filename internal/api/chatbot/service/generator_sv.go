package chatbotService

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/context"
)

const (
	greetingFallbackAnswer = "Cảm ơn bạn! Bạn muốn tìm hiểu gì về nhà hàng?"

	minParaphraseLen = 10
	minGreetingLen   = 5
)

const paraphrasePrompt = "Diễn đạt lại câu trả lời sau một cách tự nhiên và thân thiện hơn, " +
	"giữ nguyên toàn bộ thông tin, trả lời bằng tiếng Việt, chỉ trả về câu đã viết lại:\n\n%s"

const greetingPrompt = "Khách hàng vừa chào: %q. Hãy chào lại thân thiện bằng tiếng Việt " +
	"và hỏi khách muốn tìm hiểu gì về nhà hàng, chỉ trả về lời chào."

// generateAnswer paraphrases a raw answer, trying Gemini first and the
// OpenAI fallback second. Any failure or an output shorter than the
// minimum returns the raw answer untouched.
func (s *chatbotService) generateAnswer(ctx context.Context, rawAnswer string) string {
	out := s.generate(ctx, fmt.Sprintf(paraphrasePrompt, rawAnswer), rawAnswer)
	if utf8.RuneCountInString(out) < minParaphraseLen {
		return rawAnswer
	}
	return out
}

// generateGreeting produces a greeting reply seeded with the user's own
// greeting, falling back to a fixed line.
func (s *chatbotService) generateGreeting(ctx context.Context, question string) string {
	out := s.generate(ctx, fmt.Sprintf(greetingPrompt, question), question)
	if utf8.RuneCountInString(out) < minGreetingLen {
		return greetingFallbackAnswer
	}
	return out
}

// generate tries Gemini with the full prompt, then the OpenAI fallback.
// The fallback wraps its own instructions, so it gets the bare text.
func (s *chatbotService) generate(ctx context.Context, prompt, text string) string {
	if s.geminiClient != nil {
		out, err := s.geminiClient.GenerateText(ctx, prompt)
		if err == nil {
			return strings.TrimSpace(out)
		}
		s.log.WithField("error", err.Error()).Warn("gemini generation failed, trying fallback")
	}

	if s.openaiClient != nil {
		out, err := s.openaiClient.Paraphrase(ctx, text)
		if err == nil {
			return strings.TrimSpace(out)
		}
		s.log.WithField("error", err.Error()).Warn("openai paraphrase failed")
	}

	return ""
}

// paraphraseStatus reports which generation backend the health endpoint
// should advertise.
func (s *chatbotService) paraphraseStatus() string {
	if s.geminiClient != nil {
		return "loaded"
	}
	if s.openaiClient != nil {
		return "fallback"
	}
	return "not_loaded"
}

package chatbotService

import (
	"RestoBook/internal/api/chatbot"
	chatbotRepository "RestoBook/internal/api/chatbot/repository"
	"RestoBook/internal/entity"
	"strings"
	"time"

	"golang.org/x/net/context"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// Ask runs one question through the full pipeline: validation,
// detection, intent or FAQ handling, paraphrasing and logging.
func (s *chatbotService) Ask(ctx context.Context, req chatbot.AskRequest, userID string) (*chatbot.AskResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, chatbot.ErrEmptyQuestion
	}

	useParaphrase := true
	if req.UseParaphrase != nil {
		useParaphrase = *req.UseParaphrase
	}

	validation := s.ValidateQuestion(question)
	if !validation.IsValid {
		return &chatbot.AskResponse{
			Answer:     validation.Message,
			Type:       chatbot.TypeInvalid,
			Confidence: 0.0,
		}, nil
	}

	if validation.SkipSemanticMatch {
		return s.answerGreeting(ctx, question, req.SessionID, userID, useParaphrase), nil
	}

	det := s.Detect(ctx, question)

	client, err := s.chatbotRepo.NewClient(false)
	if err != nil {
		s.log.WithField("error", err.Error()).Error("failed to create repository client")
		return nil, err
	}
	defer client.Rollback()

	var result chatbot.HandlerResult
	switch det.Type {
	case chatbot.TypeFAQ:
		result = s.handleFAQ(det)
	case chatbot.TypeDBQuery:
		result = s.handleQuery(ctx, client, det, question)
	default:
		result = chatbot.HandlerResult{Answer: det.Message, Type: chatbot.TypeUnknown}
	}

	rawAnswer := result.Answer
	finalAnswer := rawAnswer

	if useParaphrase && !result.SkipParaphrase {
		finalAnswer = s.generateAnswer(ctx, rawAnswer)
	}

	s.logChat(ctx, client, entity.ChatLog{
		UserID:     userID,
		SessionID:  req.SessionID,
		Question:   question,
		Answer:     finalAnswer,
		Intent:     det.Intent,
		Confidence: det.Confidence,
		Type:       result.Type,
	})

	resp := &chatbot.AskResponse{
		Answer:     finalAnswer,
		Type:       result.Type,
		Confidence: det.Confidence,
	}
	if rawAnswer != finalAnswer {
		resp.RawAnswer = rawAnswer
	}

	return resp, nil
}

// answerGreeting replies to greetings without touching the knowledge
// base. The greeting itself seeds the generator.
func (s *chatbotService) answerGreeting(ctx context.Context, question, sessionID, userID string, useParaphrase bool) *chatbot.AskResponse {
	rawAnswer := question
	finalAnswer := greetingFallbackAnswer

	if useParaphrase {
		finalAnswer = s.generateGreeting(ctx, question)
	}

	if client, err := s.chatbotRepo.NewClient(false); err == nil {
		defer client.Rollback()
		s.logChat(ctx, client, entity.ChatLog{
			UserID:     userID,
			SessionID:  sessionID,
			Question:   question,
			Answer:     finalAnswer,
			Intent:     chatbot.TypeGreeting,
			Confidence: 1.0,
			Type:       chatbot.TypeGreeting,
		})
	}

	resp := &chatbot.AskResponse{
		Answer:     finalAnswer,
		Type:       chatbot.TypeGreeting,
		Confidence: 1.0,
	}
	if rawAnswer != finalAnswer {
		resp.RawAnswer = rawAnswer
	}

	return resp
}

// logChat persists the exchange best-effort. A failed write never fails
// the answer.
func (s *chatbotService) logChat(ctx context.Context, client chatbotRepository.Client, chatLog entity.ChatLog) {
	now := time.Now()
	id, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithField("error", err.Error()).Warn("failed to generate chat log id")
		return
	}

	chatLog.ID = id
	chatLog.CreatedAt = now
	if err := client.ChatLogs.CreateChatLog(ctx, chatLog); err != nil {
		s.log.WithFields(map[string]interface{}{
			"error":    err.Error(),
			"question": chatLog.Question,
		}).Warn("failed to persist chat log")
	}
}

// Paraphrase exposes the generation stage directly.
func (s *chatbotService) Paraphrase(ctx context.Context, text string) (*chatbot.ParaphraseResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, chatbot.ErrEmptyQuestion
	}

	paraphrased := s.generateAnswer(ctx, text)
	if paraphrased == text && s.paraphraseStatus() == "not_loaded" {
		return nil, chatbot.ErrParaphraseFailed
	}

	return &chatbot.ParaphraseResponse{
		Original:    text,
		Paraphrased: paraphrased,
		ModelStatus: s.paraphraseStatus(),
	}, nil
}

// Health reports knowledge-base and generator readiness.
func (s *chatbotService) Health(ctx context.Context) *chatbot.HealthResponse {
	resp := &chatbot.HealthResponse{
		Status:           "healthy",
		ParaphraseStatus: s.paraphraseStatus(),
		Timestamp:        time.Now(),
	}

	snap, err := s.getSnapshot(ctx)
	if err != nil {
		resp.Status = "unhealthy"
		return resp
	}

	resp.ModelLoaded = true
	resp.FaqCount = len(snap.faqs)
	resp.IntentCount = len(snap.intents)

	return resp
}

// GetHistory pages through a user's chat log, newest first.
func (s *chatbotService) GetHistory(ctx context.Context, userID string, page, limit int) (*chatbot.HistoryResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	client, err := s.chatbotRepo.NewClient(false)
	if err != nil {
		return nil, err
	}
	defer client.Rollback()

	logs, total, err := client.ChatLogs.GetChatLogsByUser(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	entries := make([]chatbot.HistoryEntry, 0, len(logs))
	for _, l := range logs {
		entries = append(entries, chatbot.HistoryEntry{
			Question:   l.Question,
			Answer:     l.Answer,
			Intent:     l.Intent,
			Type:       l.Type,
			Confidence: l.Confidence,
			CreatedAt:  l.CreatedAt,
		})
	}

	return &chatbot.HistoryResponse{Entries: entries, Total: total}, nil
}

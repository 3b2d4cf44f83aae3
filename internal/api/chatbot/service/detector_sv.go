package chatbotService

import (
	"RestoBook/internal/api/chatbot"
	"errors"
	"math"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// knowledgeSnapshot is immutable once built. Readers share it without
// locking; Reload swaps in a fully constructed replacement.
type knowledgeSnapshot struct {
	faqs       []chatbot.FaqEntry
	intents    []chatbot.IntentTemplate
	faqVecs    [][]float32
	intentVecs [][]float32
}

func (s *chatbotService) getSnapshot(ctx context.Context) (*knowledgeSnapshot, error) {
	s.mu.RLock()
	snap := s.snapshot
	s.mu.RUnlock()

	if snap != nil {
		return snap, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot != nil {
		return s.snapshot, nil
	}

	snap, err := s.buildSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	s.snapshot = snap
	return snap, nil
}

// Reload rebuilds the knowledge base and its embeddings, then swaps the
// snapshot atomically. Concurrent reloads serialize on the mutex.
func (s *chatbotService) Reload(ctx context.Context) error {
	snap, err := s.buildSnapshot(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	return nil
}

func (s *chatbotService) buildSnapshot(ctx context.Context) (*knowledgeSnapshot, error) {
	kb, err := chatbot.LoadKnowledgeBase(s.cfg.KnowledgeBaseDir, s.log)
	if err != nil {
		return nil, err
	}

	snap := &knowledgeSnapshot{
		faqs:    kb.Faqs,
		intents: kb.Intents,
	}

	if len(kb.Faqs) > 0 {
		questions := make([]string, len(kb.Faqs))
		for i, faq := range kb.Faqs {
			questions[i] = faq.Question
		}
		snap.faqVecs, err = s.embedBatch(ctx, questions)
		if err != nil {
			return nil, err
		}
	}

	if len(kb.Intents) > 0 {
		questions := make([]string, len(kb.Intents))
		for i, tpl := range kb.Intents {
			questions[i] = tpl.TemplateQuestion
		}
		snap.intentVecs, err = s.embedBatch(ctx, questions)
		if err != nil {
			return nil, err
		}
	}

	return snap, nil
}

// embedBatch resolves each text through the Redis cache first and only
// sends the misses to the embedding model.
func (s *chatbotService) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	var missIdx []int
	var missTexts []string

	model := s.geminiClient.EmbeddingModel()

	for i, text := range texts {
		vec, err := s.redisServer.GetEmbedding(ctx, model, text)
		if err == nil && len(vec) > 0 {
			vectors[i] = vec
			continue
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, text)
	}

	if len(missTexts) == 0 {
		return vectors, nil
	}

	embedded, err := s.geminiClient.EmbedTexts(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(embedded) != len(missTexts) {
		return nil, errors.New("embedding count mismatch")
	}

	for j, idx := range missIdx {
		vectors[idx] = embedded[j]
		if cacheErr := s.redisServer.SetEmbedding(ctx, model, missTexts[j], embedded[j], s.cfg.EmbeddingCacheTTL); cacheErr != nil {
			s.log.WithFields(logrus.Fields{
				"error": cacheErr.Error(),
			}).Debug("Failed to cache embedding")
		}
	}

	return vectors, nil
}

func (s *chatbotService) embedQuestion(ctx context.Context, question string) ([]float32, error) {
	vectors, err := s.embedBatch(ctx, []string{question})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// Detect ranks the question against both knowledge bases and picks
// intent over FAQ according to the tuned threshold cascade.
func (s *chatbotService) Detect(ctx context.Context, question string) chatbot.DetectionResult {
	unknown := chatbot.DetectionResult{
		Type:       chatbot.TypeUnknown,
		Confidence: 0.0,
		Message:    s.cfg.FallbackMessage,
	}

	snap, err := s.getSnapshot(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Failed to load knowledge base, detection degraded")
		return unknown
	}

	if len(snap.faqs) == 0 && len(snap.intents) == 0 {
		return unknown
	}

	userVec, err := s.embedQuestion(ctx, question)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Failed to embed question, detection degraded")
		return unknown
	}

	intentResult, hasIntent := matchIntentTemplate(userVec, snap)
	if hasIntent && intentResult.Confidence >= s.cfg.IntentThreshold {
		return intentResult
	}

	faqResult, hasFAQ := matchFaq(userVec, snap)
	if hasFAQ && faqResult.Confidence >= s.cfg.FAQThreshold {
		// A stronger intent signal wins even below its own threshold.
		if hasIntent && intentResult.Confidence > faqResult.Confidence {
			return intentResult
		}
		return faqResult
	}

	if hasIntent && intentResult.Confidence >= s.cfg.FallbackThreshold {
		return intentResult
	}

	return unknown
}

func matchIntentTemplate(userVec []float32, snap *knowledgeSnapshot) (chatbot.DetectionResult, bool) {
	if len(snap.intents) == 0 || len(snap.intentVecs) == 0 {
		return chatbot.DetectionResult{}, false
	}

	bestIdx, bestScore := argmaxSimilarity(userVec, snap.intentVecs)
	if bestIdx < 0 {
		return chatbot.DetectionResult{}, false
	}

	matched := snap.intents[bestIdx]
	return chatbot.DetectionResult{
		Type:            chatbot.TypeDBQuery,
		Intent:          matched.Intent,
		MatchedQuestion: matched.TemplateQuestion,
		AnswerTemplate:  matched.AnswerTemplate,
		RequiredSlots:   matched.Slots,
		Confidence:      bestScore,
	}, true
}

func matchFaq(userVec []float32, snap *knowledgeSnapshot) (chatbot.DetectionResult, bool) {
	if len(snap.faqs) == 0 || len(snap.faqVecs) == 0 {
		return chatbot.DetectionResult{}, false
	}

	bestIdx, bestScore := argmaxSimilarity(userVec, snap.faqVecs)
	if bestIdx < 0 {
		return chatbot.DetectionResult{}, false
	}

	matched := snap.faqs[bestIdx]
	return chatbot.DetectionResult{
		Type:            chatbot.TypeFAQ,
		Intent:          "FAQ_" + matched.Category,
		MatchedQuestion: matched.Question,
		Answer:          matched.Answer,
		Category:        matched.Category,
		Confidence:      bestScore,
	}, true
}

// argmaxSimilarity returns the first-seen index on ties.
func argmaxSimilarity(userVec []float32, candidates [][]float32) (int, float64) {
	bestIdx := -1
	bestScore := math.Inf(-1)

	for i, candidate := range candidates {
		score := cosineSimilarity(userVec, candidate)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	return bestIdx, bestScore
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

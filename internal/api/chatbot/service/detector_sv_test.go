package chatbotService

import (
	"RestoBook/internal/api/chatbot"
	"RestoBook/pkg/redis"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGemini embeds texts with fixed vectors from a lookup table.
type fakeGemini struct {
	vectors map[string][]float32
	genOut  string
	err     error
}

func (f *fakeGemini) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, ok := f.vectors[text]
		if !ok {
			vec = []float32{0, 0, 1}
		}
		out[i] = vec
	}
	return out, nil
}

func (f *fakeGemini) EmbeddingModel() string { return "test-embedding" }

func (f *fakeGemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	if f.genOut != "" {
		return f.genOut, nil
	}
	return "", errors.New("not configured")
}

// fakeRedis is a miss-only cache that records writes.
type fakeRedis struct {
	stored map[string][]float32
}

func (f *fakeRedis) GetEmbedding(ctx context.Context, model, text string) ([]float32, error) {
	if vec, ok := f.stored[model+":"+text]; ok {
		return vec, nil
	}
	return nil, redis.ErrCacheMiss
}

func (f *fakeRedis) SetEmbedding(ctx context.Context, model, text string, vector []float32, expiration time.Duration) error {
	if f.stored == nil {
		f.stored = map[string][]float32{}
	}
	f.stored[model+":"+text] = vector
	return nil
}

func writeKnowledgeBase(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	faq := "id,question,answer,category\n" +
		"1,Làm sao để đặt bàn?,Anh/chị đặt bàn trên ứng dụng ạ.,BOOKING\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "faq_data.csv"), []byte(faq), 0o644))

	intents := "id,template_question,intent,slots,answer_template\n" +
		"1,Nhà hàng mở cửa mấy giờ?,ASK_OPENING_HOURS,\"RES_NAME,OPENING_HOURS\",Nhà hàng [RES_NAME] mở cửa [OPENING_HOURS] ạ.\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "intent_template.csv"), []byte(intents), 0o644))

	return dir
}

func newDetectorService(t *testing.T, gemini *fakeGemini) *chatbotService {
	t.Helper()

	svc := newTestService()
	svc.cfg.KnowledgeBaseDir = writeKnowledgeBase(t)
	svc.cfg.EmbeddingCacheTTL = time.Hour
	svc.geminiClient = gemini
	svc.redisServer = &fakeRedis{}
	return svc
}

func TestDetectIntentAboveThreshold(t *testing.T) {
	gemini := &fakeGemini{vectors: map[string][]float32{
		"Nhà hàng mở cửa mấy giờ?":  {1, 0, 0},
		"Làm sao để đặt bàn?":       {0, 1, 0},
		"Phố Cổ mở cửa lúc mấy giờ": {1, 0, 0},
	}}
	svc := newDetectorService(t, gemini)

	det := svc.Detect(context.Background(), "Phố Cổ mở cửa lúc mấy giờ")
	assert.Equal(t, chatbot.TypeDBQuery, det.Type)
	assert.Equal(t, "ASK_OPENING_HOURS", det.Intent)
	assert.InDelta(t, 1.0, det.Confidence, 1e-9)
	assert.Equal(t, []string{"RES_NAME", "OPENING_HOURS"}, det.RequiredSlots)
}

func TestDetectFaqMatch(t *testing.T) {
	gemini := &fakeGemini{vectors: map[string][]float32{
		"Nhà hàng mở cửa mấy giờ?": {1, 0, 0},
		"Làm sao để đặt bàn?":      {0, 1, 0},
		"Cách đặt bàn thế nào":     {0, 1, 0},
	}}
	svc := newDetectorService(t, gemini)

	det := svc.Detect(context.Background(), "Cách đặt bàn thế nào")
	assert.Equal(t, chatbot.TypeFAQ, det.Type)
	assert.Equal(t, "FAQ_BOOKING", det.Intent)
	assert.Equal(t, "BOOKING", det.Category)
	assert.Equal(t, "Anh/chị đặt bàn trên ứng dụng ạ.", det.Answer)
}

func TestDetectStrongerIntentBeatsFaq(t *testing.T) {
	// intent scores 0.70 (below 0.75), faq scores 0.65 (above 0.60);
	// the stronger intent signal still wins
	gemini := &fakeGemini{vectors: map[string][]float32{
		"Nhà hàng mở cửa mấy giờ?": {1, 0, 0},
		"Làm sao để đặt bàn?":      {0.6, 0.8, 0},
		"câu hỏi lưng chừng":       {0.70, 0.2875, 0.6537},
	}}
	svc := newDetectorService(t, gemini)

	det := svc.Detect(context.Background(), "câu hỏi lưng chừng")
	assert.Equal(t, chatbot.TypeDBQuery, det.Type)
	assert.Equal(t, "ASK_OPENING_HOURS", det.Intent)
}

func TestDetectUnknownFallback(t *testing.T) {
	gemini := &fakeGemini{vectors: map[string][]float32{
		"Nhà hàng mở cửa mấy giờ?": {1, 0, 0},
		"Làm sao để đặt bàn?":      {0, 1, 0},
		"câu hỏi lạc đề hoàn toàn": {0, 0, 1},
	}}
	svc := newDetectorService(t, gemini)

	det := svc.Detect(context.Background(), "câu hỏi lạc đề hoàn toàn")
	assert.Equal(t, chatbot.TypeUnknown, det.Type)
	assert.Equal(t, 0.0, det.Confidence)
	assert.Equal(t, defaultFallbackMessage, det.Message)
}

func TestDetectDegradesOnEmbeddingFailure(t *testing.T) {
	svc := newDetectorService(t, &fakeGemini{err: errors.New("quota exceeded")})

	det := svc.Detect(context.Background(), "Nhà hàng mở cửa mấy giờ?")
	assert.Equal(t, chatbot.TypeUnknown, det.Type)
}

func TestEmbedBatchUsesCache(t *testing.T) {
	gemini := &fakeGemini{vectors: map[string][]float32{
		"Nhà hàng mở cửa mấy giờ?": {1, 0, 0},
		"Làm sao để đặt bàn?":      {0, 1, 0},
	}}
	svc := newDetectorService(t, gemini)
	cache := svc.redisServer.(*fakeRedis)

	_, err := svc.getSnapshot(context.Background())
	require.NoError(t, err)

	// both knowledge-base questions were written to the cache
	assert.Len(t, cache.stored, 2)

	// a second build with a broken model must be served from cache
	svc2 := newTestService()
	svc2.cfg.KnowledgeBaseDir = svc.cfg.KnowledgeBaseDir
	svc2.geminiClient = &fakeGemini{err: errors.New("down")}
	svc2.redisServer = cache

	vecs, err := svc2.embedBatch(context.Background(), []string{"Nhà hàng mở cửa mấy giờ?"})
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0, 0}, vecs[0])
}

func TestReloadSwapsSnapshot(t *testing.T) {
	gemini := &fakeGemini{vectors: map[string][]float32{}}
	svc := newDetectorService(t, gemini)

	snap, err := svc.getSnapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.faqs, 1)
	assert.Len(t, snap.intents, 1)

	// point at an empty dir and reload
	svc.cfg.KnowledgeBaseDir = t.TempDir()
	require.NoError(t, svc.Reload(context.Background()))

	snap, err = svc.getSnapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.faqs)
	assert.Empty(t, snap.intents)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Equal(t, 0.0, cosineSimilarity(nil, []float32{1}))
	assert.Equal(t, 0.0, cosineSimilarity([]float32{0, 0}, []float32{0, 0}))
}

func TestArgmaxSimilarityKeepsFirstOnTie(t *testing.T) {
	idx, score := argmaxSimilarity([]float32{1, 0}, [][]float32{{1, 0}, {2, 0}})
	assert.Equal(t, 0, idx)
	assert.InDelta(t, 1.0, score, 1e-9)
}

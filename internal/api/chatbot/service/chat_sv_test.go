package chatbotService

import (
	"RestoBook/internal/api/chatbot"
	chatbotRepository "RestoBook/internal/api/chatbot/repository"
	"RestoBook/internal/entity"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	catalog  *fakeCatalog
	chatLogs *fakeChatLogs
	err      error
}

func (f *fakeRepo) NewClient(tx bool) (chatbotRepository.Client, error) {
	if f.err != nil {
		return chatbotRepository.Client{}, f.err
	}
	return newFakeClient(f.catalog, f.chatLogs), nil
}

type fakeUtils struct{}

func (f *fakeUtils) NewULIDFromTimestamp(t time.Time) (string, error) {
	return "01HTESTULID", nil
}

func newAskService(t *testing.T, gemini *fakeGemini, repo *fakeRepo) *chatbotService {
	t.Helper()

	svc := newDetectorService(t, gemini)
	svc.chatbotRepo = repo
	svc.utils = &fakeUtils{}
	return svc
}

func boolPtr(b bool) *bool { return &b }

func TestAskRejectsNonsense(t *testing.T) {
	repo := &fakeRepo{catalog: &fakeCatalog{}, chatLogs: &fakeChatLogs{}}
	svc := newAskService(t, &fakeGemini{}, repo)

	res, err := svc.Ask(context.Background(), chatbot.AskRequest{Question: "asdfgh"}, "")
	require.NoError(t, err)
	assert.Equal(t, chatbot.TypeInvalid, res.Type)
	assert.Equal(t, nonsenseMessage, res.Answer)
	assert.Equal(t, 0.0, res.Confidence)

	// invalid questions are not logged
	assert.Empty(t, repo.chatLogs.created)
}

func TestAskEmptyQuestion(t *testing.T) {
	svc := newAskService(t, &fakeGemini{}, &fakeRepo{catalog: &fakeCatalog{}, chatLogs: &fakeChatLogs{}})

	_, err := svc.Ask(context.Background(), chatbot.AskRequest{Question: "   "}, "")
	assert.ErrorIs(t, err, chatbot.ErrEmptyQuestion)
}

func TestAskGreeting(t *testing.T) {
	chatLogs := &fakeChatLogs{}
	repo := &fakeRepo{catalog: &fakeCatalog{}, chatLogs: chatLogs}
	svc := newAskService(t, &fakeGemini{}, repo)

	res, err := svc.Ask(context.Background(), chatbot.AskRequest{Question: "xin chào", SessionID: "s1"}, "u1")
	require.NoError(t, err)

	assert.Equal(t, chatbot.TypeGreeting, res.Type)
	assert.Equal(t, 1.0, res.Confidence)
	// generation is unavailable in the fake, so the fixed line is used
	assert.Equal(t, greetingFallbackAnswer, res.Answer)
	assert.Equal(t, "xin chào", res.RawAnswer)

	require.Len(t, chatLogs.created, 1)
	logged := chatLogs.created[0]
	assert.Equal(t, "01HTESTULID", logged.ID)
	assert.Equal(t, "u1", logged.UserID)
	assert.Equal(t, "s1", logged.SessionID)
	assert.Equal(t, chatbot.TypeGreeting, logged.Intent)
	assert.Equal(t, 1.0, logged.Confidence)
	assert.False(t, logged.CreatedAt.IsZero())
}

func TestAskGreetingWithParaphraserOutput(t *testing.T) {
	repo := &fakeRepo{catalog: &fakeCatalog{}, chatLogs: &fakeChatLogs{}}
	gemini := &fakeGemini{genOut: "Chào anh/chị! Em có thể giúp gì về nhà hàng ạ?"}
	svc := newAskService(t, gemini, repo)

	res, err := svc.Ask(context.Background(), chatbot.AskRequest{Question: "hello"}, "")
	require.NoError(t, err)
	assert.Equal(t, "Chào anh/chị! Em có thể giúp gì về nhà hàng ạ?", res.Answer)
}

func TestAskDBQueryWithoutParaphrase(t *testing.T) {
	chatLogs := &fakeChatLogs{}
	catalog := &fakeCatalog{
		restaurants: []entity.Restaurant{
			{ID: "r1", Name: "Phố Cổ", OpeningHours: "08:00-22:00"},
		},
	}
	repo := &fakeRepo{catalog: catalog, chatLogs: chatLogs}

	gemini := &fakeGemini{vectors: map[string][]float32{
		"Nhà hàng mở cửa mấy giờ?":   {1, 0, 0},
		"Làm sao để đặt bàn?":        {0, 1, 0},
		"Phố Cổ mở cửa lúc mấy giờ?": {1, 0, 0},
	}}
	svc := newAskService(t, gemini, repo)

	res, err := svc.Ask(context.Background(), chatbot.AskRequest{
		Question:      "Phố Cổ mở cửa lúc mấy giờ?",
		UseParaphrase: boolPtr(false),
	}, "u1")
	require.NoError(t, err)

	assert.Equal(t, chatbot.TypeDBQuery, res.Type)
	assert.Equal(t, "Nhà hàng Phố Cổ mở cửa 08:00-22:00 ạ.", res.Answer)
	assert.Empty(t, res.RawAnswer)
	assert.InDelta(t, 1.0, res.Confidence, 1e-9)

	require.Len(t, chatLogs.created, 1)
	assert.Equal(t, "ASK_OPENING_HOURS", chatLogs.created[0].Intent)
	assert.Equal(t, chatbot.TypeDBQuery, chatLogs.created[0].Type)
	assert.False(t, chatLogs.created[0].CreatedAt.IsZero())
}

func TestAskParaphrasedAnswerCarriesRaw(t *testing.T) {
	catalog := &fakeCatalog{
		restaurants: []entity.Restaurant{
			{ID: "r1", Name: "Phố Cổ", OpeningHours: "08:00-22:00"},
		},
	}
	repo := &fakeRepo{catalog: catalog, chatLogs: &fakeChatLogs{}}

	gemini := &fakeGemini{
		genOut: "Dạ, Phố Cổ phục vụ từ 8 giờ sáng đến 10 giờ tối ạ.",
		vectors: map[string][]float32{
			"Nhà hàng mở cửa mấy giờ?":   {1, 0, 0},
			"Làm sao để đặt bàn?":        {0, 1, 0},
			"Phố Cổ mở cửa lúc mấy giờ?": {1, 0, 0},
		},
	}
	svc := newAskService(t, gemini, repo)

	res, err := svc.Ask(context.Background(), chatbot.AskRequest{Question: "Phố Cổ mở cửa lúc mấy giờ?"}, "")
	require.NoError(t, err)

	assert.Equal(t, "Dạ, Phố Cổ phục vụ từ 8 giờ sáng đến 10 giờ tối ạ.", res.Answer)
	assert.Equal(t, "Nhà hàng Phố Cổ mở cửa 08:00-22:00 ạ.", res.RawAnswer)
}

func TestAskUnknownQuestion(t *testing.T) {
	repo := &fakeRepo{catalog: &fakeCatalog{}, chatLogs: &fakeChatLogs{}}
	gemini := &fakeGemini{vectors: map[string][]float32{
		"Nhà hàng mở cửa mấy giờ?": {1, 0, 0},
		"Làm sao để đặt bàn?":      {0, 1, 0},
	}}
	svc := newAskService(t, gemini, repo)

	res, err := svc.Ask(context.Background(), chatbot.AskRequest{
		Question:      "thời tiết hôm nay thế nào",
		UseParaphrase: boolPtr(false),
	}, "")
	require.NoError(t, err)

	assert.Equal(t, chatbot.TypeUnknown, res.Type)
	assert.Equal(t, defaultFallbackMessage, res.Answer)
	assert.Equal(t, 0.0, res.Confidence)
}

func TestAskSurvivesChatLogFailure(t *testing.T) {
	chatLogs := &fakeChatLogs{err: assert.AnError}
	repo := &fakeRepo{catalog: &fakeCatalog{}, chatLogs: chatLogs}
	gemini := &fakeGemini{vectors: map[string][]float32{
		"Nhà hàng mở cửa mấy giờ?": {1, 0, 0},
		"Làm sao để đặt bàn?":      {0, 1, 0},
	}}
	svc := newAskService(t, gemini, repo)

	res, err := svc.Ask(context.Background(), chatbot.AskRequest{
		Question:      "thời tiết hôm nay thế nào",
		UseParaphrase: boolPtr(false),
	}, "")
	require.NoError(t, err)
	assert.Equal(t, chatbot.TypeUnknown, res.Type)
}

func TestHealth(t *testing.T) {
	gemini := &fakeGemini{vectors: map[string][]float32{}}
	svc := newDetectorService(t, gemini)

	res := svc.Health(context.Background())
	assert.Equal(t, "healthy", res.Status)
	assert.True(t, res.ModelLoaded)
	assert.Equal(t, 1, res.FaqCount)
	assert.Equal(t, 1, res.IntentCount)
	assert.Equal(t, "loaded", res.ParaphraseStatus)
	assert.False(t, res.Timestamp.IsZero())
}

func TestParaphrase(t *testing.T) {
	svc := newTestService()
	svc.geminiClient = &fakeGemini{genOut: "Dạ, câu này đã được viết lại cho tự nhiên hơn ạ."}

	res, err := svc.Paraphrase(context.Background(), "Nhà hàng mở cửa 08:00-22:00.")
	require.NoError(t, err)
	assert.Equal(t, "Nhà hàng mở cửa 08:00-22:00.", res.Original)
	assert.Equal(t, "Dạ, câu này đã được viết lại cho tự nhiên hơn ạ.", res.Paraphrased)
	assert.Equal(t, "loaded", res.ModelStatus)
}

func TestParaphraseUnavailable(t *testing.T) {
	svc := newTestService()

	_, err := svc.Paraphrase(context.Background(), "một câu bất kỳ")
	assert.ErrorIs(t, err, chatbot.ErrParaphraseFailed)
}

func TestGetHistory(t *testing.T) {
	now := time.Now()
	chatLogs := &fakeChatLogs{logs: []entity.ChatLog{
		{Question: "q1", Answer: "a1", Intent: "ASK_MENU", Type: chatbot.TypeDBQuery, Confidence: 0.9, CreatedAt: now},
		{Question: "q2", Answer: "a2", Intent: "GREETING", Type: chatbot.TypeGreeting, Confidence: 1.0, CreatedAt: now},
	}}
	svc := newTestService()
	svc.chatbotRepo = &fakeRepo{catalog: &fakeCatalog{}, chatLogs: chatLogs}

	res, err := svc.GetHistory(context.Background(), "u1", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	require.Len(t, res.Entries, 2)
	assert.Equal(t, "q1", res.Entries[0].Question)
	assert.Equal(t, "ASK_MENU", res.Entries[0].Intent)
}

type fakeOpenAI struct {
	lastInput string
	out       string
	err       error
}

func (f *fakeOpenAI) Paraphrase(ctx context.Context, text string) (string, error) {
	f.lastInput = text
	if f.err != nil {
		return "", f.err
	}
	return f.out, nil
}

func TestGenerateAnswerFallbackReceivesRawText(t *testing.T) {
	svc := newTestService()
	svc.geminiClient = &fakeGemini{}
	fallback := &fakeOpenAI{out: "Dạ, nhà hàng phục vụ từ 8 giờ sáng đến 10 giờ tối ạ."}
	svc.openaiClient = fallback

	out := svc.generateAnswer(context.Background(), "Nhà hàng mở cửa 08:00-22:00.")
	assert.Equal(t, "Dạ, nhà hàng phục vụ từ 8 giờ sáng đến 10 giờ tối ạ.", out)

	// the fallback provider adds its own instructions, so it must see
	// only the answer text
	assert.Equal(t, "Nhà hàng mở cửa 08:00-22:00.", fallback.lastInput)
}

func TestGenerateAnswerFallsBackToRaw(t *testing.T) {
	svc := newTestService()
	svc.geminiClient = &fakeGemini{genOut: "ngắn"}

	out := svc.generateAnswer(context.Background(), "Câu trả lời gốc đầy đủ thông tin.")
	assert.Equal(t, "Câu trả lời gốc đầy đủ thông tin.", out)
}

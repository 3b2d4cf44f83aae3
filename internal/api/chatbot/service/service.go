package chatbotService

import (
	"RestoBook/internal/api/chatbot"
	chatbotRepository "RestoBook/internal/api/chatbot/repository"
	"RestoBook/pkg/gemini"
	"RestoBook/pkg/openai"
	"RestoBook/pkg/redis"
	"RestoBook/pkg/utils"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IChatbotService interface {
	Ask(ctx context.Context, req chatbot.AskRequest, userID string) (*chatbot.AskResponse, error)
	Paraphrase(ctx context.Context, text string) (*chatbot.ParaphraseResponse, error)
	Health(ctx context.Context) *chatbot.HealthResponse
	Reload(ctx context.Context) error
	GetHistory(ctx context.Context, userID string, page, limit int) (*chatbot.HistoryResponse, error)
	ValidateQuestion(question string) chatbot.ValidationResult
	Detect(ctx context.Context, question string) chatbot.DetectionResult
}

type chatbotService struct {
	log          *logrus.Logger
	chatbotRepo  chatbotRepository.Repository
	geminiClient gemini.IGemini
	openaiClient openai.IOpenAI
	redisServer  redis.IRedis
	utils        utils.IUtils
	cfg          Config

	mu       sync.RWMutex
	snapshot *knowledgeSnapshot
}

func New(
	log *logrus.Logger,
	chatbotRepo chatbotRepository.Repository,
	geminiClient gemini.IGemini,
	openaiClient openai.IOpenAI,
	redisServer redis.IRedis,
	utils utils.IUtils,
) IChatbotService {
	return &chatbotService{
		log:          log,
		chatbotRepo:  chatbotRepo,
		geminiClient: geminiClient,
		openaiClient: openaiClient,
		redisServer:  redisServer,
		utils:        utils,
		cfg:          NewConfig(),
	}
}

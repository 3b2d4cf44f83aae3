package chatbotHandler

import (
	chatbotService "RestoBook/internal/api/chatbot/service"
	"RestoBook/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ChatbotHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	chatbotService chatbotService.IChatbotService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs chatbotService.IChatbotService,
) *ChatbotHandler {
	return &ChatbotHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		chatbotService: cs,
	}
}

func (h *ChatbotHandler) Start(srv fiber.Router) {
	chatbot := srv.Group("/chatbot")

	// Public endpoints (no auth required)
	chatbot.Post("/ask", h.middleware.NewRateLimiter, h.middleware.NewOptionalTokenMiddleware, h.Ask)
	chatbot.Get("/health", h.Health)
	chatbot.Post("/paraphrase", h.middleware.NewRateLimiter, h.Paraphrase)

	// Admin / authenticated endpoints
	chatbot.Post("/reload", h.middleware.NewTokenMiddleware, h.Reload)
	chatbot.Get("/history", h.middleware.NewTokenMiddleware, h.GetHistory)
}

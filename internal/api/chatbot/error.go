package chatbot

import "RestoBook/pkg/response"

var (
	ErrEmptyQuestion      = response.NewError(400, "question is required")
	ErrKnowledgeBaseEmpty = response.NewError(503, "knowledge base is not loaded")
	ErrEmbeddingFailed    = response.NewError(503, "embedding model unavailable")
	ErrParaphraseFailed   = response.NewError(503, "paraphrase model unavailable")
	ErrChatLogNotFound    = response.NewError(404, "chat log not found")
)

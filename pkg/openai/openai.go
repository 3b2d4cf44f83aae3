package openai

import (
	"context"
	"errors"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

type IOpenAI interface {
	Paraphrase(ctx context.Context, text string) (string, error)
}

type openaiClient struct {
	client    *openai.Client
	modelName string
}

func New() IOpenAI {
	apiKey := os.Getenv("OPENAI_API_KEY")

	modelName := os.Getenv("OPENAI_MODEL_NAME")
	if modelName == "" {
		modelName = openai.GPT4oMini
	}

	var client *openai.Client
	if apiKey != "" {
		client = openai.NewClient(apiKey)
	}

	return &openaiClient{
		client:    client,
		modelName: modelName,
	}
}

func (o *openaiClient) Paraphrase(ctx context.Context, text string) (string, error) {
	if o.client == nil {
		return "", errors.New("openai client is not configured")
	}

	res, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "Bạn là trợ lý của một nền tảng đặt bàn nhà hàng. Hãy diễn đạt lại câu trả lời sau một cách tự nhiên, thân thiện bằng tiếng Việt. Giữ nguyên mọi thông tin, số liệu và tên riêng. Chỉ trả về câu trả lời, không giải thích.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		Temperature: 0.4,
	})
	if err != nil {
		return "", err
	}

	if len(res.Choices) == 0 {
		return "", errors.New("no response from OpenAI API")
	}

	return res.Choices[0].Message.Content, nil
}

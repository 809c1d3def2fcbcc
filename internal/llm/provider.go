package llm

import (
    "context"

    openai "github.com/sashabaranov/go-openai"
)

// Client is the minimal interface the pipeline needs to call a chat model.
// It mirrors the single CreateChatCompletion method so that any
// OpenAI-compatible or local backend can be adapted.
type Client interface {
    CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider adapts *openai.Client to the Client interface.
type OpenAIProvider struct {
    Inner *openai.Client
}

func (p *OpenAIProvider) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
    return p.Inner.CreateChatCompletion(ctx, request)
}

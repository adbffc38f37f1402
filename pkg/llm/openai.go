package llm

import (
	"context"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIClient calls the chat completions API through openai-go.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient builds a chat-completions client. An empty baseURL uses
// the public endpoint.
func NewOpenAIClient(apiKey, model, baseURL string) *OpenAIClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIClient{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (c *OpenAIClient) Name() string {
	return "openai"
}

func (c *OpenAIClient) Generate(ctx context.Context, req Request) (Response, error) {
	msgs := buildMessages(req.Prompt, req.Kind)
	params := openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(msgs[0].content),
			openai.UserMessage(msgs[1].content),
		}),
		Model:       openai.F(c.model),
		Temperature: openai.F(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.F(int64(req.MaxTokens))
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return Response{}, &ProviderError{Provider: c.Name(), Err: err}
	}
	if len(completion.Choices) == 0 {
		return Response{}, &ProviderError{Provider: c.Name(), Err: ErrEmptyCompletion}
	}
	return Response{
		Text:     strings.TrimSpace(completion.Choices[0].Message.Content),
		Provider: c.Name(),
	}, nil
}

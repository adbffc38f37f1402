package llm

import (
	"context"
	"strings"

	"github.com/yankeguo/zhipu"
)

// ZhipuClient talks to the GLM chat-completions API.
type ZhipuClient struct {
	client *zhipu.Client
	model  string
}

// NewZhipuClient builds a client for apiKey ("id.secret"). Extra options are
// passed to the SDK, e.g. zhipu.WithBaseURL.
func NewZhipuClient(apiKey, model string, opts ...zhipu.ClientOption) (*ZhipuClient, error) {
	client, err := zhipu.NewClient(append([]zhipu.ClientOption{zhipu.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &ZhipuClient{client: client, model: model}, nil
}

func (c *ZhipuClient) Name() string {
	return "zhipu"
}

func (c *ZhipuClient) Generate(ctx context.Context, req Request) (Response, error) {
	svc := c.client.ChatCompletion(c.model)
	for _, m := range buildMessages(req.Prompt, req.Kind) {
		role := zhipu.RoleUser
		if m.role == "system" {
			role = zhipu.RoleSystem
		}
		svc = svc.AddMessage(zhipu.ChatCompletionMessage{Role: role, Content: m.content})
	}
	if req.Temperature > 0 {
		svc = svc.SetTemperature(req.Temperature)
	}
	if req.MaxTokens > 0 {
		svc = svc.SetMaxTokens(req.MaxTokens)
	}

	completion, err := svc.Do(ctx)
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

package llm

import (
	"context"
	"errors"
	"time"

	"seo-ai/pkg/logger"
)

// FallbackClient serves requests from a primary provider and answers with
// the mock whenever the primary fails or its breaker is open.
type FallbackClient struct {
	primary Client
	mock    *MockClient
	breaker *CircuitBreaker
	timeout time.Duration
	log     *logger.Logger
}

// NewFallbackClient wraps primary. A nil primary always uses the mock.
func NewFallbackClient(primary Client, mock *MockClient, breaker *CircuitBreaker, timeout time.Duration) *FallbackClient {
	return &FallbackClient{
		primary: primary,
		mock:    mock,
		breaker: breaker,
		timeout: timeout,
		log:     logger.GetLogger().WithField("component", "llm"),
	}
}

func (c *FallbackClient) Name() string {
	if c.primary == nil {
		return c.mock.Name()
	}
	return c.primary.Name()
}

// Generate tries the primary under the breaker and the timeout. Any failure
// is logged and answered by the mock.
func (c *FallbackClient) Generate(ctx context.Context, req Request) (Response, error) {
	if c.primary == nil {
		return c.mock.Generate(ctx, req)
	}

	var resp Response
	err := c.breaker.Execute(func() error {
		callCtx := ctx
		if c.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}
		var err error
		resp, err = c.primary.Generate(callCtx, req)
		return err
	})
	if err == nil {
		return resp, nil
	}
	if ctx.Err() != nil {
		return Response{}, ctx.Err()
	}

	fields := map[string]interface{}{
		"provider": c.primary.Name(),
		"kind":     req.Kind,
	}
	if errors.Is(err, ErrCircuitOpen) {
		c.log.WithFields(fields).Debug("Circuit open, using mock output")
	} else {
		c.log.WithFields(fields).WithError(err).Warn("LLM call failed, using mock output")
	}
	return c.mock.Generate(ctx, req)
}

// Options selects and configures the primary provider.
type Options struct {
	Provider        string
	OpenAIKey       string
	OpenAIModel     string
	OpenAIBaseURL   string
	ZhipuKey        string
	ZhipuModel      string
	MockLatency     time.Duration
	Timeout         time.Duration
	BreakerFailures int
	BreakerReset    time.Duration
}

// New builds the client selected by opts. Providers without an API key
// resolve to the mock.
func New(opts Options) (*FallbackClient, error) {
	mock := NewMockClient(opts.MockLatency)
	breaker := NewCircuitBreaker(opts.BreakerFailures, opts.BreakerReset)

	var primary Client
	switch opts.Provider {
	case "openai":
		if opts.OpenAIKey != "" {
			primary = NewOpenAIClient(opts.OpenAIKey, opts.OpenAIModel, opts.OpenAIBaseURL)
		}
	case "zhipu":
		if opts.ZhipuKey != "" {
			z, err := NewZhipuClient(opts.ZhipuKey, opts.ZhipuModel)
			if err != nil {
				return nil, err
			}
			primary = z
		}
	}

	if primary == nil {
		logger.GetLogger().WithField("provider", opts.Provider).Info("No LLM API key configured, using mock provider")
	}
	return NewFallbackClient(primary, mock, breaker, opts.Timeout), nil
}

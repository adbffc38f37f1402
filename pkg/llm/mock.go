package llm

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"
)

// MockClient returns canned output shaped by the request kind.
type MockClient struct {
	latency time.Duration
}

func NewMockClient(latency time.Duration) *MockClient {
	return &MockClient{latency: latency}
}

func (m *MockClient) Name() string {
	return "mock"
}

// Generate waits for the configured latency, then echoes the prompt in the
// shape of the requested kind.
func (m *MockClient) Generate(ctx context.Context, req Request) (Response, error) {
	if m.latency > 0 {
		timer := time.NewTimer(m.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Response{}, ctx.Err()
		case <-timer.C:
		}
	}
	return Response{Text: MockOutput(req.Prompt, req.Kind), Provider: m.Name()}, nil
}

// MockOutput is the deterministic text for prompt and kind.
func MockOutput(prompt, kind string) string {
	p := trimmed(prompt)
	switch kind {
	case KindTitle:
		return snippet(p, 60) + " — SEO Optimized Title"
	case KindMeta:
		return snippet(p, 140) + " — concise meta description for SEO."
	case KindArticle:
		return fmt.Sprintf("Intro: %s\n\n"+
			"This is a demo-generated article used for offline testing. Replace this with a real LLM API call.\n\n"+
			"H2: Key points\n- Tip 1\n- Tip 2\n\nConclusion: Short call to action.", trimmed(firstN(p, 80)))
	default:
		return "[MOCK OUTPUT] " + firstN(p, 200)
	}
}

func snippet(s string, n int) string {
	if utf8.RuneCountInString(s) > n {
		return firstN(s, n) + "..."
	}
	return s
}

package llm

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

type stubClient struct {
	calls atomic.Int32
	err   error
	text  string
}

func (s *stubClient) Name() string { return "stub" }

func (s *stubClient) Generate(ctx context.Context, req Request) (Response, error) {
	s.calls.Add(1)
	if s.err != nil {
		return Response{}, s.err
	}
	return Response{Text: s.text, Provider: s.Name()}, nil
}

func TestMockOutput_ByKind(t *testing.T) {
	long := strings.Repeat("x", 250)

	title := MockOutput(long, KindTitle)
	if title != strings.Repeat("x", 60)+"... — SEO Optimized Title" {
		t.Errorf("Unexpected title: %q", title)
	}

	if got := MockOutput("  short prompt  ", KindMeta); got != "short prompt — concise meta description for SEO." {
		t.Errorf("Unexpected meta: %q", got)
	}

	article := MockOutput("Sourdough basics", KindArticle)
	if !strings.HasPrefix(article, "Intro: Sourdough basics\n\n") || !strings.Contains(article, "H2: Key points") {
		t.Errorf("Unexpected article: %q", article)
	}

	if got := MockOutput(long, "insight"); got != "[MOCK OUTPUT] "+strings.Repeat("x", 200) {
		t.Errorf("Unexpected generic output length %d", len(got))
	}
}

func TestBuildMessages(t *testing.T) {
	msgs := buildMessages("bakery", KindTitle)
	if len(msgs) != 2 || msgs[0].role != "system" || msgs[0].content != systemPrompt {
		t.Fatalf("Expected a system message first, got: %+v", msgs)
	}
	if msgs[1].content != "Write a short, click-enticing SEO title (<= 70 chars). bakery" {
		t.Errorf("Unexpected user message: %q", msgs[1].content)
	}
	if got := buildMessages("raw", "other")[1].content; got != "raw" {
		t.Errorf("Expected unprefixed prompt for unknown kinds, got: %q", got)
	}
}

func TestMockClient_HonoursContext(t *testing.T) {
	m := NewMockClient(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := m.Generate(ctx, Request{Prompt: "p"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got: %v", err)
	}
}

func TestCircuitBreaker_OpensAndRecovers(t *testing.T) {
	cb := NewCircuitBreaker(2, time.Minute)
	now := time.Now()
	cb.now = func() time.Time { return now }
	boom := errors.New("boom")

	_ = cb.Execute(func() error { return boom })
	if cb.State() != StateClosed {
		t.Fatalf("Expected closed after one failure, got %s", cb.State())
	}
	_ = cb.Execute(func() error { return boom })
	if cb.State() != StateOpen {
		t.Fatalf("Expected open after two failures, got %s", cb.State())
	}

	called := false
	if err := cb.Execute(func() error { called = true; return nil }); !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("Expected ErrCircuitOpen without calling fn, got: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if err := cb.Execute(func() error { return nil }); err != nil {
		t.Fatalf("Expected the half-open call to run, got: %v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("Expected closed after a successful half-open call, got %s", cb.State())
	}
}

func TestFallbackClient_UsesPrimary(t *testing.T) {
	primary := &stubClient{text: "real output"}
	c := NewFallbackClient(primary, NewMockClient(0), NewCircuitBreaker(3, time.Minute), time.Second)

	resp, err := c.Generate(context.Background(), Request{Prompt: "p", Kind: KindTitle})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if resp.Provider != "stub" || resp.Text != "real output" {
		t.Errorf("Expected primary output, got: %+v", resp)
	}
}

func TestFallbackClient_FallsBackAndTripsBreaker(t *testing.T) {
	primary := &stubClient{err: errors.New("quota exceeded")}
	c := NewFallbackClient(primary, NewMockClient(0), NewCircuitBreaker(2, time.Minute), 0)

	for i := 0; i < 4; i++ {
		resp, err := c.Generate(context.Background(), Request{Prompt: "bakery", Kind: KindMeta})
		if err != nil {
			t.Fatalf("Expected failures to be hidden, got: %v", err)
		}
		if resp.Provider != "mock" {
			t.Fatalf("Expected mock provider, got: %q", resp.Provider)
		}
	}
	if got := primary.calls.Load(); got != 2 {
		t.Errorf("Expected the breaker to stop calls after 2 failures, got %d calls", got)
	}
}

func TestNew_WithoutKeyUsesMock(t *testing.T) {
	c, err := New(Options{Provider: "openai", BreakerFailures: 3, BreakerReset: time.Minute})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if c.Name() != "mock" {
		t.Errorf("Expected mock provider without a key, got: %q", c.Name())
	}

	resp, _ := c.Generate(context.Background(), Request{Prompt: "hello"})
	if resp.Text != "[MOCK OUTPUT] hello" {
		t.Errorf("Unexpected output: %q", resp.Text)
	}
}

func TestNew_WithKeySelectsProvider(t *testing.T) {
	c, err := New(Options{Provider: "openai", OpenAIKey: "sk-test", OpenAIModel: "gpt-3.5-turbo"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if c.Name() != "openai" {
		t.Errorf("Expected openai provider, got: %q", c.Name())
	}
}

// Package llm talks to chat-completion providers and degrades to a
// deterministic mock when none is reachable.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const systemPrompt = "You are an expert SEO content writer. Produce concise, actionable, SEO-friendly content according to the user's instructions."

// Request kinds with dedicated instructions.
const (
	KindTitle   = "title"
	KindMeta    = "meta"
	KindArticle = "article"
	KindInsight = "insight"
)

// ErrEmptyCompletion is returned when a provider answers without text.
var ErrEmptyCompletion = errors.New("llm returned no choices")

// Request is one generation call. Kind selects the instruction set.
type Request struct {
	Prompt      string
	Kind        string
	MaxTokens   int
	Temperature float64
}

// Response carries the generated text and the provider that wrote it.
type Response struct {
	Text     string `json:"text"`
	Provider string `json:"provider"`
}

// Client generates text for a prompt.
type Client interface {
	Generate(ctx context.Context, req Request) (Response, error)
	Name() string
}

type message struct {
	role    string
	content string
}

func buildMessages(prompt, kind string) []message {
	user := prompt
	switch kind {
	case KindTitle:
		user = "Write a short, click-enticing SEO title (<= 70 chars). " + prompt
	case KindMeta:
		user = "Write a concise SEO meta description (<= 160 chars). " + prompt
	case KindArticle:
		user = "Write a helpful SEO-optimized article. Use short paragraphs, H2 headings, and a short conclusion with a call to action. " + prompt
	}
	return []message{
		{role: "system", content: systemPrompt},
		{role: "user", content: user},
	}
}

// ProviderError tags an upstream failure with the provider that produced it.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func firstN(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"

	"seo-ai/pkg/cache"
	"seo-ai/pkg/logger"
	"seo-ai/pkg/retry"
)

const maxRedirects = 5

// Page is a fetched HTML document decoded to UTF-8.
type Page struct {
	URL         string `json:"url"`
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type"`
	Body        string `json:"-"`
}

// StatusError reports an unacceptable HTTP status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.Code)
}

// Temporary marks throttling and server errors as retryable.
func (e *StatusError) Temporary() bool {
	return e.Code == fasthttp.StatusTooManyRequests || e.Code >= 500
}

// permanentError wraps failures that repeat identically on every attempt.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }
func (e *permanentError) Temporary() bool { return false }

// Options configures a Client. MaxBodyBytes rejects larger responses; zero
// means no limit.
type Options struct {
	UserAgent    string
	Timeout      time.Duration
	MaxBodyBytes int
	MaxRetries   int
	RetryDelay   time.Duration
	CacheSize    int
	CacheTTL     time.Duration
	// RequireOK rejects every status other than 200 instead of only >= 400.
	RequireOK bool
}

// Client fetches pages over fasthttp with retries and an optional page cache.
type Client struct {
	client *fasthttp.Client
	opts   Options
	retry  *retry.Retry
	cache  *cache.LRU[*Page]
	log    *logger.Logger
}

// New builds a Client. A non-positive timeout defaults to 10s.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	c := &Client{
		client: &fasthttp.Client{
			Name:                     opts.UserAgent,
			ReadTimeout:              opts.Timeout,
			WriteTimeout:             opts.Timeout,
			MaxResponseBodySize:      opts.MaxBodyBytes,
			NoDefaultUserAgentHeader: opts.UserAgent == "",
		},
		opts:  opts,
		retry: retry.New(opts.MaxRetries, opts.RetryDelay),
		log:   logger.GetLogger().WithField("component", "fetcher"),
	}
	if opts.CacheSize > 0 {
		c.cache = cache.New[*Page](opts.CacheSize, opts.CacheTTL)
	}
	return c
}

// Fetch downloads targetURL and returns its body decoded to UTF-8.
func (c *Client) Fetch(ctx context.Context, targetURL string) (*Page, error) {
	if c.cache != nil {
		if page, ok := c.cache.Get(targetURL); ok {
			c.log.WithField("url", logger.MaskURL(targetURL)).Debug("Page served from cache")
			return page, nil
		}
	}

	var page *Page
	start := time.Now()
	err := c.retry.Execute(ctx, func() error {
		p, err := c.do(ctx, targetURL)
		if err != nil {
			return err
		}
		page = p
		return nil
	})
	if err != nil {
		c.log.WithError(err).WithField("url", logger.MaskURL(targetURL)).Warn("Fetch failed")
		return nil, err
	}

	c.log.WithFields(map[string]interface{}{
		"url":         logger.MaskURL(targetURL),
		"status":      page.StatusCode,
		"bytes":       len(page.Body),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Fetched page")

	if c.cache != nil {
		c.cache.Set(targetURL, page)
	}
	return page, nil
}

func (c *Client) do(ctx context.Context, targetURL string) (*Page, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(targetURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	c.setRequestHeaders(req)
	req.SetTimeout(c.timeout(ctx))

	if err := c.client.DoRedirects(req, resp, maxRedirects); err != nil {
		switch {
		case errors.Is(err, fasthttp.ErrBodyTooLarge):
			return nil, &permanentError{fmt.Errorf("response body exceeds %d bytes: %w", c.opts.MaxBodyBytes, err)}
		case errors.Is(err, fasthttp.ErrTooManyRedirects):
			return nil, &permanentError{fmt.Errorf("more than %d redirects: %w", maxRedirects, err)}
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}

	code := resp.StatusCode()
	if code >= 400 || (c.opts.RequireOK && code != fasthttp.StatusOK) {
		return nil, &StatusError{Code: code}
	}

	raw, err := resp.BodyUncompressed()
	if err != nil {
		return nil, fmt.Errorf("failed to decompress body: %w", err)
	}

	contentType := string(resp.Header.ContentType())
	return &Page{
		URL:         targetURL,
		StatusCode:  code,
		ContentType: contentType,
		Body:        decodeBody(raw, contentType),
	}, nil
}

func (c *Client) setRequestHeaders(req *fasthttp.Request) {
	if c.opts.UserAgent != "" {
		req.Header.SetUserAgent(c.opts.UserAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip, deflate")
}

// timeout caps the configured timeout by the context deadline, since fasthttp
// does not take a context.
func (c *Client) timeout(ctx context.Context) time.Duration {
	d := c.opts.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < d {
			d = left
		}
	}
	if d <= 0 {
		d = time.Millisecond
	}
	return d
}

func decodeBody(raw []byte, contentType string) string {
	enc, name, _ := charset.DetermineEncoding(raw, contentType)
	if name == "utf-8" {
		return string(raw)
	}
	return decodeWith(enc, raw)
}

func decodeWith(enc encoding.Encoding, raw []byte) string {
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

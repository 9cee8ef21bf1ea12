package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/macropower/namify/pkg/log"
	"github.com/macropower/namify/pkg/version"
)

const (
	DefaultBaseURL         = "https://swapi.dev/api/people"
	DefaultTimeout         = 10 * time.Second
	DefaultSuggestionRate  = 10
	DefaultSuggestionBurst = 5

	tracerName = "github.com/macropower/namify/pkg/catalog"
)

// Fetcher is implemented by [*Client].
type Fetcher interface {
	FetchPage(ctx context.Context, page int) (*Page, error)
	FetchSuggestions(ctx context.Context, term string) ([]string, error)
}

// Client talks to the catalog service. Every call issues exactly one
// request; nothing is cached and nothing is retried.
type Client struct {
	http      *http.Client
	base      *url.URL
	limiter   *rate.Limiter
	tracer    trace.Tracer
	userAgent string
	timeout   time.Duration
}

// ClientOpt configures a [Client].
type ClientOpt func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOpt {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout bounds the wait for each request.
func WithTimeout(d time.Duration) ClientOpt {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithSuggestionLimit throttles suggestion requests to r per second with
// the given burst. Throttled requests wait; they are never dropped.
func WithSuggestionLimit(r float64, burst int) ClientOpt {
	return func(c *Client) {
		if r <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)

			return
		}

		c.limiter = rate.NewLimiter(rate.Limit(r), max(1, burst))
	}
}

// WithTracerProvider sets the provider used to create request spans.
func WithTracerProvider(tp trace.TracerProvider) ClientOpt {
	return func(c *Client) {
		c.tracer = tp.Tracer(tracerName)
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOpt {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a [Client] for the collection at baseURL.
func NewClient(baseURL string, opts ...ClientOpt) (*Client, error) {
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		http:      http.DefaultClient,
		base:      u,
		limiter:   rate.NewLimiter(DefaultSuggestionRate, DefaultSuggestionBurst),
		tracer:    otel.GetTracerProvider().Tracer(tracerName),
		userAgent: "namify/" + version.GetVersion(),
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the collection URL the client was created with.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// FetchPage requests the given 1-based page. Any failure is returned as a
// [*FetchError].
func (c *Client) FetchPage(ctx context.Context, page int) (*Page, error) {
	if page < 1 {
		return nil, &FetchError{Page: page, Err: ErrInvalidPage}
	}

	ctx, span := c.tracer.Start(ctx, "catalog.FetchPage",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.Int("catalog.page", page)),
	)
	defer span.End()

	var resp pageResponse

	err := c.getJSON(ctx, c.endpoint("page", strconv.Itoa(page)), &resp)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch page failed")

		return nil, &FetchError{Page: page, Err: err}
	}

	items, skipped := decodeItems(resp.Results)
	if skipped > 0 {
		log.FromContext(ctx).Warn("skipped malformed records",
			slog.Int("page", page),
			slog.Int("skipped", skipped),
		)
	}

	span.SetAttributes(
		attribute.Int("catalog.count", resp.Count),
		attribute.Int("catalog.results", len(items)),
		attribute.Int("catalog.skipped", skipped),
	)

	return &Page{
		Number:     page,
		Items:      items,
		TotalCount: resp.Count,
	}, nil
}

// FetchSuggestions returns the names of records the service matches for
// term, in server order and without deduplication. Any failure is returned
// as a [*SuggestionError].
func (c *Client) FetchSuggestions(ctx context.Context, term string) ([]string, error) {
	ctx, span := c.tracer.Start(ctx, "catalog.FetchSuggestions",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("catalog.term", term)),
	)
	defer span.End()

	if err := c.limiter.Wait(ctx); err != nil {
		span.RecordError(err)

		return nil, &SuggestionError{Term: term, Err: fmt.Errorf("wait for rate limiter: %w", err)}
	}

	var resp pageResponse

	err := c.getJSON(ctx, c.endpoint("search", term), &resp)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch suggestions failed")

		return nil, &SuggestionError{Term: term, Err: err}
	}

	items, _ := decodeItems(resp.Results)

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}

	return names, nil
}

func (c *Client) endpoint(key, value string) string {
	u := *c.base
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()

	return u.String()
}

func (c *Client) getJSON(ctx context.Context, target string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", requestID)

	trace.SpanFromContext(ctx).SetAttributes(attribute.String("http.request_id", requestID))

	logger := log.FromContext(ctx).With(
		slog.String("url", target),
		slog.String("request_id", requestID),
	)

	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w after %s", ErrTimeout, c.timeout)
		}

		return fmt.Errorf("send request: %w", err)
	}

	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("close response body", slog.Any("err", cerr))
		}
	}()

	logger.Debug("catalog response",
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w after %s", ErrTimeout, c.timeout)
		}

		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return nil
}

package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"robocon-bot/internal/application/port/output"
	"robocon-bot/internal/domain/entity"

	"github.com/ysmood/gson"
)

var _ output.LookupPort = (*Client)(nil)

const (
	maxErrorBody   = 400
	maxSummaryBody = 1 << 20
)

type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

func DefaultConfig() Config {
	return Config{
		BaseURL:   "https://en.wikipedia.org/api/rest_v1",
		UserAgent: "robocon-bot/1.0 (telegram bot)",
		Timeout:   10 * time.Second,
	}
}

// Client reads page summaries from the Wikipedia REST API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) Summary(ctx context.Context, subject string) (*entity.Summary, error) {
	title := strings.ReplaceAll(strings.TrimSpace(subject), " ", "_")
	endpoint := c.baseURL + "/page/summary/" + url.PathEscape(title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create summary request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("summary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", entity.ErrLookupNotFound, subject)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("summary status=%d body=%s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSummaryBody))
	if err != nil {
		return nil, fmt.Errorf("read summary: %w", err)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}
	if obj == nil {
		return nil, fmt.Errorf("decode summary: body is not an object")
	}

	doc := gson.NewFrom(string(body))
	extract := field(doc, "extract")
	if extract == "" {
		return nil, fmt.Errorf("%w: %s", entity.ErrLookupNotFound, subject)
	}

	return &entity.Summary{
		Title:       field(doc, "title"),
		Description: field(doc, "description"),
		Extract:     extract,
		URL:         field(doc, "content_urls", "desktop", "page"),
		Ambiguous:   field(doc, "type") == "disambiguation",
	}, nil
}

func field(doc gson.JSON, path ...interface{}) string {
	v, ok := doc.Gets(path...)
	if !ok || v.Nil() {
		return ""
	}
	return v.Str()
}

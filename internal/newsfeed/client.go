// Package newsfeed fetches top headlines from a NewsAPI-compatible service.
package newsfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/msomdec/truthguard/internal/config"
	"github.com/msomdec/truthguard/internal/domain"
	"github.com/msomdec/truthguard/internal/metrics"
)

const (
	// CategoryAll disables the category filter.
	CategoryAll     = "all"
	defaultCategory = "general"
	country         = "us"
	pageSize        = 20

	// errorBodyLimit bounds how much of a failed response is logged.
	errorBodyLimit = 512
)

// Client fetches headlines. A Client built without an API key fails every
// call with domain.ErrNotConfigured.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

// New creates a Client from the news section of the configuration.
func New(cfg config.NewsConfig) *Client {
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

// apiResponse mirrors the fields of the upstream top-headlines payload.
// Text fields are pointers because the feed sends explicit nulls.
type apiResponse struct {
	Status       string       `json:"status"`
	Message      string       `json:"message"`
	TotalResults int          `json:"totalResults"`
	Articles     []apiArticle `json:"articles"`
}

type apiArticle struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
	URLToImage  *string `json:"urlToImage"`
	PublishedAt *string `json:"publishedAt"`
	Source      struct {
		ID   *string `json:"id"`
		Name *string `json:"name"`
	} `json:"source"`
}

// Headlines returns one page of US top headlines. An empty category means
// general and CategoryAll drops the filter; pages below 1 are treated as 1.
func (c *Client) Headlines(ctx context.Context, category string, page int) (*domain.Headlines, error) {
	if c.apiKey == "" {
		return nil, domain.ErrNotConfigured
	}
	if category == "" {
		category = defaultCategory
	}
	page = max(page, 1)

	q := url.Values{}
	q.Set("apiKey", c.apiKey)
	q.Set("country", country)
	q.Set("pageSize", strconv.Itoa(pageSize))
	q.Set("page", strconv.Itoa(page))
	if category != CategoryAll {
		q.Set("category", category)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/top-headlines?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.fail("request headlines", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		slog.Error("news feed returned error status", "status", resp.StatusCode, "body", string(body))
		return nil, c.fail("request headlines", fmt.Errorf("status %d", resp.StatusCode))
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, c.fail("decode headlines", err)
	}
	if payload.Status != "ok" {
		return nil, c.fail("request headlines", fmt.Errorf("feed status %q: %s", payload.Status, payload.Message))
	}

	articleCategory := category
	if category == CategoryAll {
		articleCategory = defaultCategory
	}

	out := &domain.Headlines{
		Articles:     make([]domain.Article, len(payload.Articles)),
		TotalResults: payload.TotalResults,
	}
	for i, a := range payload.Articles {
		out.Articles[i] = domain.Article{
			Title:       deref(a.Title),
			Description: deref(a.Description),
			URL:         deref(a.URL),
			URLToImage:  deref(a.URLToImage),
			PublishedAt: deref(a.PublishedAt),
			Source: domain.ArticleSource{
				ID:   deref(a.Source.ID),
				Name: deref(a.Source.Name),
			},
			Category: articleCategory,
		}
	}
	return out, nil
}

func (c *Client) fail(op string, err error) error {
	metrics.UpstreamFailure(metrics.ServiceNewsFeed)
	return fmt.Errorf("%s: %w: %w", op, domain.ErrUpstream, err)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/msomdec/truthguard/internal/domain"
)

// HeadlinesFetcher returns a page of news headlines.
type HeadlinesFetcher interface {
	Headlines(ctx context.Context, category string, page int) (*domain.Headlines, error)
}

// NewsHandler serves live headlines from the news feed.
type NewsHandler struct {
	feed HeadlinesFetcher
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(feed HeadlinesFetcher) *NewsHandler {
	return &NewsHandler{feed: feed}
}

// HandleNews returns one page of top headlines.
// GET /api/news?category=general&page=1
func (h *NewsHandler) HandleNews(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		page = n
	}

	headlines, err := h.feed.Headlines(r.Context(), r.URL.Query().Get("category"), page)
	if err != nil {
		if errors.Is(err, domain.ErrNotConfigured) {
			slog.Error("news feed not configured")
			writeError(w, http.StatusInternalServerError, "News API key not configured")
			return
		}
		slog.Error("fetch headlines", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch news from external API")
		return
	}

	writeJSON(w, http.StatusOK, headlines)
}

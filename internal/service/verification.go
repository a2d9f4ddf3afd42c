package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/msomdec/truthguard/internal/domain"
	"github.com/msomdec/truthguard/internal/metrics"
)

const (
	trendingTitleRunes = 100
	anonymousSource    = "User Submission"
)

// TrendingItem is a verification reshaped for the public trending feed.
type TrendingItem struct {
	ID         string
	Title      string
	Source     string
	Status     domain.Verdict
	Confidence float64
	Degraded   bool
	VerifiedAt time.Time
}

// VerificationService classifies submitted content and manages the
// resulting records.
type VerificationService struct {
	repo       domain.VerificationRepository
	classifier domain.Classifier
	now        func() time.Time
}

// NewVerificationService creates a new VerificationService.
func NewVerificationService(repo domain.VerificationRepository, classifier domain.Classifier) *VerificationService {
	return &VerificationService{repo: repo, classifier: classifier, now: time.Now}
}

// Verify classifies content on behalf of userID and stores the outcome.
// A failed classification is not an error: the fallback analysis is stored
// with Degraded set.
func (s *VerificationService) Verify(ctx context.Context, userID, content, url string) (*domain.Verification, error) {
	analysis, err := s.classifier.Classify(ctx, content, url)
	if err != nil {
		if !errors.Is(err, domain.ErrUpstreamDegraded) {
			return nil, fmt.Errorf("classify: %w", err)
		}
		slog.Warn("classification degraded", "user_id", userID, "error", err)
		analysis.Degraded = true
	}

	v := &domain.Verification{
		ID:         uuid.NewString(),
		Content:    content,
		Result:     analysis.Result,
		Confidence: analysis.Confidence,
		Evidence:   analysis.Evidence,
		Degraded:   analysis.Degraded,
		Timestamp:  s.now().UTC(),
	}
	if userID != "" {
		v.UserID = &userID
	}
	if url != "" {
		v.URL = &url
	}
	sanitize(v)

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("store verification: %w", err)
	}
	metrics.ObserveVerification(string(v.Result), v.Degraded)
	return v, nil
}

// History returns the user's own verifications, newest first.
func (s *VerificationService) History(ctx context.Context, userID string) ([]domain.Verification, error) {
	list, err := s.repo.ListByUser(ctx, userID, domain.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return list, nil
}

// Trending returns the most recent verifications across all users.
func (s *VerificationService) Trending(ctx context.Context) ([]TrendingItem, error) {
	list, err := s.repo.ListRecent(ctx, domain.TrendingLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent: %w", err)
	}

	items := make([]TrendingItem, len(list))
	for i, v := range list {
		source := anonymousSource
		if v.URL != nil && *v.URL != "" {
			source = *v.URL
		}
		items[i] = TrendingItem{
			ID:         v.ID,
			Title:      trendingTitle(v.Content),
			Source:     source,
			Status:     v.Result,
			Confidence: v.Confidence,
			Degraded:   v.Degraded,
			VerifiedAt: v.Timestamp,
		}
	}
	return items, nil
}

// sanitize enforces the stored-record invariants regardless of which
// Classifier produced the analysis.
func sanitize(v *domain.Verification) {
	if !v.Result.Valid() {
		v.Result = domain.VerdictMisleading
	}
	switch {
	case math.IsNaN(v.Confidence):
		v.Confidence = 0
	case v.Confidence < 0:
		v.Confidence = 0
	case v.Confidence > 100:
		v.Confidence = 100
	}
}

func trendingTitle(content string) string {
	if utf8.RuneCountInString(content) <= trendingTitleRunes {
		return content
	}
	return string([]rune(content)[:trendingTitleRunes]) + "..."
}

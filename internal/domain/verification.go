package domain

import (
	"context"
	"time"
)

// Verdict is the classification assigned to a piece of news content.
type Verdict string

const (
	VerdictReal       Verdict = "Real"
	VerdictFake       Verdict = "Fake"
	VerdictMisleading Verdict = "Misleading"
)

// Valid reports whether v is one of the three canonical verdicts.
func (v Verdict) Valid() bool {
	switch v {
	case VerdictReal, VerdictFake, VerdictMisleading:
		return true
	}
	return false
}

const (
	HistoryLimit  = 100
	TrendingLimit = 20
)

// Verification is the stored outcome of one classification request.
type Verification struct {
	ID         string
	UserID     *string // nil for anonymous submissions
	Content    string
	URL        *string
	Result     Verdict
	Confidence float64 // always within [0, 100]
	Evidence   string
	Degraded   bool // true when Result is a fallback, not a model verdict
	Timestamp  time.Time
}

// VerificationRepository handles verification persistence. Records are
// append-only.
type VerificationRepository interface {
	Create(ctx context.Context, v *Verification) error
	// ListByUser returns the user's records, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]Verification, error)
	// ListRecent returns records across all users, newest first.
	ListRecent(ctx context.Context, limit int) ([]Verification, error)
}

// Analysis is the normalized reply of the classification service.
type Analysis struct {
	Result     Verdict
	Confidence float64
	Evidence   string
	Degraded   bool
}

// Classifier sends content to an external model for classification.
// It always returns a structurally valid Analysis; a non-nil error
// (wrapping ErrUpstreamDegraded) means the Analysis is a fallback.
type Classifier interface {
	Classify(ctx context.Context, content, url string) (Analysis, error)
}

package ai

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/msomdec/truthguard/internal/domain"
)

const (
	classificationPrefix = "CLASSIFICATION:"
	confidencePrefix     = "CONFIDENCE:"
	evidencePrefix       = "EVIDENCE:"

	defaultConfidence = 50
	defaultEvidence   = "Unable to fully analyze the content."

	// Replies at or below this many characters are too short to mine for
	// evidence when no EVIDENCE line was found.
	evidenceFallbackMinLen = 50
)

// ParseAnalysis extracts an Analysis from a model reply in the
// CLASSIFICATION/CONFIDENCE/EVIDENCE line format. Missing or malformed
// fields fall back to Misleading, 50 and a fixed evidence message.
func ParseAnalysis(reply string) domain.Analysis {
	reply = strings.TrimSpace(reply)

	a := domain.Analysis{
		Result:     domain.VerdictMisleading,
		Confidence: defaultConfidence,
	}
	var evidence string

	for line := range strings.Lines(reply) {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, classificationPrefix):
			a.Result = NormalizeVerdict(strings.TrimPrefix(line, classificationPrefix))
		case strings.HasPrefix(line, confidencePrefix):
			a.Confidence = parseConfidence(strings.TrimPrefix(line, confidencePrefix))
		case strings.HasPrefix(line, evidencePrefix):
			evidence = strings.TrimSpace(strings.TrimPrefix(line, evidencePrefix))
		}
	}

	if evidence == "" && utf8.RuneCountInString(reply) > evidenceFallbackMinLen {
		if _, after, found := strings.Cut(reply, evidencePrefix); found {
			evidence = strings.TrimSpace(after)
		}
		if evidence == "" {
			evidence = reply
		}
	}
	if evidence == "" {
		evidence = defaultEvidence
	}
	a.Evidence = evidence
	return a
}

// NormalizeVerdict maps a free-form label such as "[Fake]" or "**real**" to
// a Verdict. Unrecognized labels become Misleading.
func NormalizeVerdict(label string) domain.Verdict {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, label)

	switch strings.ToLower(strings.TrimSpace(cleaned)) {
	case "real":
		return domain.VerdictReal
	case "fake":
		return domain.VerdictFake
	default:
		return domain.VerdictMisleading
	}
}

func parseConfidence(s string) float64 {
	s = strings.Trim(strings.TrimSpace(s), "[]")
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return defaultConfidence
	}
	return min(max(f, 0), 100)
}

package ai

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/msomdec/truthguard/internal/domain"
)

func TestParseAnalysis(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  domain.Analysis
	}{
		{
			name:  "well formed",
			reply: "CLASSIFICATION: Fake\nCONFIDENCE: 92\nEVIDENCE: No credible outlet reports this.",
			want:  domain.Analysis{Result: domain.VerdictFake, Confidence: 92, Evidence: "No credible outlet reports this."},
		},
		{
			name:  "bracketed label and percent",
			reply: "CLASSIFICATION: [Real]\nCONFIDENCE: 75.5%\nEVIDENCE: Confirmed by the agency's press release.",
			want:  domain.Analysis{Result: domain.VerdictReal, Confidence: 75.5, Evidence: "Confirmed by the agency's press release."},
		},
		{
			name:  "markdown label and indented lines",
			reply: "  CLASSIFICATION: **misleading**\n  CONFIDENCE: 40\n  EVIDENCE: Partly true.",
			want:  domain.Analysis{Result: domain.VerdictMisleading, Confidence: 40, Evidence: "Partly true."},
		},
		{
			name:  "unknown label",
			reply: "CLASSIFICATION: Satire\nCONFIDENCE: 60\nEVIDENCE: Published by a humor site.",
			want:  domain.Analysis{Result: domain.VerdictMisleading, Confidence: 60, Evidence: "Published by a humor site."},
		},
		{
			name:  "unparseable confidence",
			reply: "CLASSIFICATION: Real\nCONFIDENCE: high\nEVIDENCE: ok",
			want:  domain.Analysis{Result: domain.VerdictReal, Confidence: 50, Evidence: "ok"},
		},
		{
			name:  "confidence clamped",
			reply: "CLASSIFICATION: Real\nCONFIDENCE: 140\nEVIDENCE: ok",
			want:  domain.Analysis{Result: domain.VerdictReal, Confidence: 100, Evidence: "ok"},
		},
		{
			name:  "NaN confidence",
			reply: "CLASSIFICATION: Fake\nCONFIDENCE: NaN\nEVIDENCE: ok",
			want:  domain.Analysis{Result: domain.VerdictFake, Confidence: 50, Evidence: "ok"},
		},
		{
			name:  "evidence on following lines",
			reply: "CLASSIFICATION: Fake\nCONFIDENCE: 80\nEVIDENCE:\nThe photo is from 2012.\nThe quote is fabricated.",
			want: domain.Analysis{
				Result:     domain.VerdictFake,
				Confidence: 80,
				Evidence:   "The photo is from 2012.\nThe quote is fabricated.",
			},
		},
		{
			name:  "free text reply",
			reply: "I cannot verify this claim because there are no reliable sources available for it.",
			want: domain.Analysis{
				Result:     domain.VerdictMisleading,
				Confidence: 50,
				Evidence:   "I cannot verify this claim because there are no reliable sources available for it.",
			},
		},
		{
			name:  "short free text reply",
			reply: "No idea.",
			want:  domain.Analysis{Result: domain.VerdictMisleading, Confidence: 50, Evidence: "Unable to fully analyze the content."},
		},
		{
			name:  "empty reply",
			reply: "",
			want:  domain.Analysis{Result: domain.VerdictMisleading, Confidence: 50, Evidence: "Unable to fully analyze the content."},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseAnalysis(tc.reply)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ParseAnalysis() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeVerdict(t *testing.T) {
	tests := map[string]domain.Verdict{
		"Real":         domain.VerdictReal,
		" FAKE ":       domain.VerdictFake,
		"[Misleading]": domain.VerdictMisleading,
		"*Fake*.":      domain.VerdictFake,
		"real!":        domain.VerdictReal,
		"Real/Fake":    domain.VerdictMisleading,
		"":             domain.VerdictMisleading,
		"True":         domain.VerdictMisleading,
	}

	for in, want := range tests {
		if got := NormalizeVerdict(in); got != want {
			t.Errorf("NormalizeVerdict(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestParseAnalysis_AlwaysValid(t *testing.T) {
	replies := []string{
		"CLASSIFICATION: ???\nCONFIDENCE: -Inf",
		"CONFIDENCE: 1e400",
		strings.Repeat("EVIDENCE:", 10),
	}
	for _, r := range replies {
		a := ParseAnalysis(r)
		if !a.Result.Valid() {
			t.Errorf("ParseAnalysis(%q) produced invalid verdict %q", r, a.Result)
		}
		if a.Confidence < 0 || a.Confidence > 100 {
			t.Errorf("ParseAnalysis(%q) produced confidence %v", r, a.Confidence)
		}
		if a.Evidence == "" {
			t.Errorf("ParseAnalysis(%q) produced empty evidence", r)
		}
	}
}

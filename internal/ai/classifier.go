package ai

import (
	"context"
	"fmt"

	"github.com/msomdec/truthguard/internal/domain"
	"github.com/msomdec/truthguard/internal/metrics"
	openai "github.com/sashabaranov/go-openai"
)

const classifyMaxTokens = 500

const classifySystemPrompt = `You are an expert fact-checker and fake news detector. Analyze the given news content and provide:
1. Classification: Real, Fake, or Misleading
2. Confidence score (0-100)
3. Evidence and reasoning for your classification

Provide your response in this exact format:
CLASSIFICATION: [Real/Fake/Misleading]
CONFIDENCE: [0-100]
EVIDENCE: [Your detailed reasoning and evidence]`

// Classify asks the model whether content is Real, Fake or Misleading.
//
// On any failure it returns the fallback analysis together with an error
// wrapping domain.ErrUpstreamDegraded, so the Analysis is always usable.
func (c *Client) Classify(ctx context.Context, content, url string) (domain.Analysis, error) {
	prompt := "Analyze this news content for authenticity:\n\n" + content
	if url != "" {
		prompt += "\n\nSource URL: " + url
	}

	reply, err := c.complete(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: classifySystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}, classifyMaxTokens)
	if err != nil {
		metrics.UpstreamFailure(metrics.ServiceClassifier)
		return domain.Analysis{
			Result:     domain.VerdictMisleading,
			Confidence: 0,
			Evidence:   "Analysis failed: " + err.Error(),
			Degraded:   true,
		}, fmt.Errorf("%w: %w", domain.ErrUpstreamDegraded, err)
	}

	return ParseAnalysis(reply), nil
}

package ai

import (
	"context"
	"fmt"

	"github.com/msomdec/truthguard/internal/domain"
	"github.com/msomdec/truthguard/internal/metrics"
	openai "github.com/sashabaranov/go-openai"
)

const (
	chatMaxTokens    = 300
	chatHistoryTurns = 5
)

// ChatApology is returned in place of a reply when the model cannot be
// reached.
const ChatApology = "I apologize, but I'm having trouble processing your request right now. Please try again in a moment."

const chatSystemPrompt = `You are TruthGuard Assistant, a helpful AI chatbot for the TruthGuard fake news detection platform.

ABOUT TRUTHGUARD:
- TruthGuard is an AI-powered fake news detection system
- Users can verify news headlines, articles, or URLs for authenticity
- Classification system: Real (verified), Misleading (partially true), or Fake (false)
- Each verification includes confidence scores (0-100%) and detailed evidence

KEY FEATURES:
1. Real-Time Detection: Instant AI-powered news verification
2. AI Fact Verification: Uses OpenAI GPT-4o-mini for advanced analysis
3. Confidence Scoring: Detailed scores with evidence-based reasoning
4. History Tracking: Users can view past verifications
5. Trending News: Real-time news from around the world with category filters
6. Trending Verifications: Community-wide recent verifications with filters

HOW IT WORKS:
1. User inputs news content or URL
2. AI analyzes content and cross-references information
3. The model classifies it as Real/Misleading/Fake
4. System displays result with confidence score and evidence

TECHNOLOGY:
- Powered by OpenAI's GPT-4o-mini
- Go backend with a SQL database
- JWT authentication for secure access
- NewsAPI integration for real-time news

AUTHENTICATION:
- Users can sign up with email and password
- Login required for verification and history features
- Trending and About pages are public

Your role is to:
- Answer questions about the platform
- Help users understand how to use TruthGuard
- Explain the verification process
- Provide information about fake news detection
- Be friendly, helpful, and concise

Keep responses clear and under 150 words unless detailed explanation is needed.`

// Reply answers message in the TruthGuard assistant persona, using at most
// the last five turns of history as context.
//
// On failure it returns ChatApology together with an error wrapping
// domain.ErrUpstreamDegraded.
func (c *Client) Reply(ctx context.Context, message string, history []domain.ChatTurn) (string, error) {
	reply, err := c.complete(ctx, chatMessages(message, history), chatMaxTokens)
	if err != nil {
		metrics.UpstreamFailure(metrics.ServiceChatbot)
		return ChatApology, fmt.Errorf("%w: %w", domain.ErrUpstreamDegraded, err)
	}
	return reply, nil
}

func chatMessages(message string, history []domain.ChatTurn) []openai.ChatCompletionMessage {
	if len(history) > chatHistoryTurns {
		history = history[len(history)-chatHistoryTurns:]
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: chatSystemPrompt})
	for _, turn := range history {
		role := openai.ChatMessageRoleUser
		if turn.Role == domain.ChatRoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Content})
	}
	return append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: message})
}

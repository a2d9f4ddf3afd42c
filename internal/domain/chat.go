package domain

// ChatTurn is one prior message in a chatbot conversation.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/truthguard/internal/domain"
)

// Chatbot answers questions about the platform.
type Chatbot interface {
	Reply(ctx context.Context, message string, history []domain.ChatTurn) (string, error)
}

// ChatHandler serves the assistant chat endpoint.
type ChatHandler struct {
	bot Chatbot
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(bot Chatbot) *ChatHandler {
	return &ChatHandler{bot: bot}
}

// HandleChat answers a chat message. A failed model call still yields a
// 200 carrying the bot's apology.
// POST /api/chatbot
// Request:  {"message":"...","history":[{"role":"user","content":"..."}]}
// Response: {"response":"..."}
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := h.bot.Reply(r.Context(), req.Message, req.History)
	if err != nil {
		if !errors.Is(err, domain.ErrUpstreamDegraded) {
			slog.Error("chatbot reply", "error", err)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
			return
		}
		slog.Warn("chatbot degraded", "error", err)
	}

	writeJSON(w, http.StatusOK, chatResponse{Response: reply})
}

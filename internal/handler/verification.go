package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/truthguard/internal/service"
)

// VerificationHandler serves verification, history and trending requests.
type VerificationHandler struct {
	verifications *service.VerificationService
}

// NewVerificationHandler creates a new VerificationHandler.
func NewVerificationHandler(verifications *service.VerificationService) *VerificationHandler {
	return &VerificationHandler{verifications: verifications}
}

// HandleVerify classifies the submitted content for the current user.
// POST /api/verify
// Request:  {"content":"...","url":"..."}
// Response: the stored verification record
func (h *VerificationHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req verifyRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var url string
	if req.URL != nil {
		url = *req.URL
	}

	v, err := h.verifications.Verify(r.Context(), user.ID, req.Content, url)
	if err != nil {
		slog.Error("verify content", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, toVerificationDTO(v))
}

// HandleHistory lists the current user's verifications, newest first.
// GET /api/history
func (h *VerificationHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	list, err := h.verifications.History(r.Context(), user.ID)
	if err != nil {
		slog.Error("list history", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, toVerificationDTOs(list))
}

// HandleTrending lists the most recent verifications from all users.
// GET /api/trending
func (h *VerificationHandler) HandleTrending(w http.ResponseWriter, r *http.Request) {
	items, err := h.verifications.Trending(r.Context())
	if err != nil {
		slog.Error("list trending", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, toTrendingDTOs(items))
}

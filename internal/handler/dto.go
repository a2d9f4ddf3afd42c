package handler

import (
	"time"

	"github.com/msomdec/truthguard/internal/domain"
	"github.com/msomdec/truthguard/internal/service"
)

// --- Requests ---

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
	Name     string `json:"name" validate:"required,max=200"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type verifyRequest struct {
	Content string  `json:"content"`
	URL     *string `json:"url"`
}

type chatRequest struct {
	Message string            `json:"message" validate:"required"`
	History []domain.ChatTurn `json:"history"`
}

// --- Responses ---

type userDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func toUserDTO(u *domain.User) userDTO {
	return userDTO{ID: u.ID, Email: u.Email, Name: u.Name}
}

type authResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type verificationDTO struct {
	ID         string    `json:"id"`
	UserID     *string   `json:"user_id"`
	Content    string    `json:"content"`
	URL        *string   `json:"url"`
	Result     string    `json:"result"`
	Confidence float64   `json:"confidence"`
	Evidence   string    `json:"evidence"`
	Degraded   bool      `json:"degraded,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func toVerificationDTO(v *domain.Verification) verificationDTO {
	return verificationDTO{
		ID:         v.ID,
		UserID:     v.UserID,
		Content:    v.Content,
		URL:        v.URL,
		Result:     string(v.Result),
		Confidence: v.Confidence,
		Evidence:   v.Evidence,
		Degraded:   v.Degraded,
		Timestamp:  v.Timestamp,
	}
}

func toVerificationDTOs(list []domain.Verification) []verificationDTO {
	out := make([]verificationDTO, len(list))
	for i := range list {
		out[i] = toVerificationDTO(&list[i])
	}
	return out
}

type trendingDTO struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Source     string    `json:"source"`
	Status     string    `json:"status"`
	Confidence float64   `json:"confidence"`
	Degraded   bool      `json:"degraded,omitempty"`
	VerifiedAt time.Time `json:"verified_at"`
}

func toTrendingDTOs(items []service.TrendingItem) []trendingDTO {
	out := make([]trendingDTO, len(items))
	for i, it := range items {
		out[i] = trendingDTO{
			ID:         it.ID,
			Title:      it.Title,
			Source:     it.Source,
			Status:     string(it.Status),
			Confidence: it.Confidence,
			Degraded:   it.Degraded,
			VerifiedAt: it.VerifiedAt,
		}
	}
	return out
}

type chatResponse struct {
	Response string `json:"response"`
}

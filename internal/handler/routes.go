package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/msomdec/truthguard/internal/metrics"
	"github.com/msomdec/truthguard/internal/service"
)

// Deps holds everything the router dispatches to.
type Deps struct {
	Auth          *service.AuthService
	Verifications *service.VerificationService
	News          HeadlinesFetcher
	Chat          Chatbot
	DB            Pinger

	CORSOrigins []string
	Logger      *slog.Logger
}

// NewRouter builds the HTTP handler for the whole API.
func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(metrics.Middleware)

	r.Get("/healthz", HandleHealthz)
	r.Get("/readyz", HandleReadyz(d.DB))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	authH := NewAuthHandler(d.Auth)
	verifyH := NewVerificationHandler(d.Verifications)
	newsH := NewNewsHandler(d.News)
	chatH := NewChatHandler(d.Chat)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authH.HandleRegister)
		r.Post("/auth/login", authH.HandleLogin)
		r.Get("/trending", verifyH.HandleTrending)
		r.Get("/news", newsH.HandleNews)
		r.Post("/chatbot", chatH.HandleChat)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(d.Auth))
			r.Get("/auth/me", authH.HandleMe)
			r.Post("/verify", verifyH.HandleVerify)
			r.Get("/history", verifyH.HandleHistory)
		})
	})

	return r
}

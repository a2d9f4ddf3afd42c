package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/msomdec/truthguard/internal/domain"
	"github.com/msomdec/truthguard/internal/handler"
	"github.com/msomdec/truthguard/internal/repository/sqlite"
	"github.com/msomdec/truthguard/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests-0123456789"

type fakeClassifier struct {
	analysis domain.Analysis
	err      error
}

func (f *fakeClassifier) Classify(_ context.Context, _, _ string) (domain.Analysis, error) {
	return f.analysis, f.err
}

type fakeNews struct {
	headlines *domain.Headlines
	err       error
	category  string
	page      int
}

func (f *fakeNews) Headlines(_ context.Context, category string, page int) (*domain.Headlines, error) {
	f.category, f.page = category, page
	return f.headlines, f.err
}

type fakeChat struct {
	reply   string
	err     error
	message string
	history []domain.ChatTurn
}

func (f *fakeChat) Reply(_ context.Context, message string, history []domain.ChatTurn) (string, error) {
	f.message, f.history = message, history
	return f.reply, f.err
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type testEnv struct {
	db         *sqlite.DB
	auth       *service.AuthService
	classifier *fakeClassifier
	news       *fakeNews
	chat       *fakeChat
	srv        *httptest.Server
}

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T, db *sqlite.DB) *service.AuthService {
	t.Helper()
	return service.NewAuthService(db.Users(), service.NewPasswordHasher(4), service.NewTokenService(testJWTSecret, 24*time.Hour))
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	env := &testEnv{
		db:   db,
		auth: newTestAuthService(t, db),
		classifier: &fakeClassifier{analysis: domain.Analysis{
			Result:     domain.VerdictReal,
			Confidence: 88,
			Evidence:   "Widely reported by reputable outlets.",
		}},
		news: &fakeNews{headlines: &domain.Headlines{Articles: []domain.Article{}}},
		chat: &fakeChat{reply: "Hello from TruthGuard."},
	}

	router := handler.NewRouter(handler.Deps{
		Auth:          env.auth,
		Verifications: service.NewVerificationService(db.Verifications(), env.classifier),
		News:          env.news,
		Chat:          env.chat,
		DB:            db,
		CORSOrigins:   []string{"http://localhost:3000"},
	})
	env.srv = httptest.NewServer(router)
	t.Cleanup(env.srv.Close)
	return env
}

// do sends a request to the test server, JSON-encoding body when non-nil.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, e.srv.URL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func (e *testEnv) register(t *testing.T, email, password, name string) string {
	t.Helper()
	_, token, err := e.auth.Register(context.Background(), email, password, name)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return token
}

var errBoom = errors.New("boom")

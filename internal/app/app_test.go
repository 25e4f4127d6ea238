package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"quizapp_backend/internal/config"
	"quizapp_backend/internal/util"
	"quizapp_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zapcore"
)

const testSecret = "app-test-secret"

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server:    config.ServerConfig{Port: "0", Mode: "test"},
		Database:  config.DatabaseConfig{Driver: config.DriverMemory},
		JWT:       config.JWTConfig{Secret: testSecret, ExpireTime: time.Hour},
		Log:       config.LogConfig{Level: "info", File: filepath.Join(t.TempDir(), "app.log"), MaxSize: 1},
		RateLimit: config.RateLimitConfig{MaxRequests: 1000, WindowMinutes: 1},
	}
	a, err := NewApp(cfg)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a
}

func call(t *testing.T, a *App, method, target, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	var out map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w.Code, out
}

func TestSubmitPersistsResultForAuthenticatedCaller(t *testing.T) {
	a := newTestApp(t)
	token, err := util.GenerateJWT("user-1", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	code, created := call(t, a, http.MethodPost, "/api/quizzes", token, map[string]interface{}{
		"title":      "Go basics",
		"technology": "go",
		"level":      "beginner",
		"questions": []map[string]interface{}{
			{"question": "Q1", "options": []string{"A", "B"}, "correctAnswer": "A"},
			{"question": "Q2", "options": []string{"B", "C"}, "correctAnswer": "B"},
		},
	})
	if code != http.StatusCreated {
		t.Fatalf("create quiz: expected 201, got %d (%v)", code, created)
	}
	quiz := created["quiz"].(map[string]interface{})
	if quiz["createdBy"] != "user-1" {
		t.Fatalf("expected createdBy user-1, got %v", quiz["createdBy"])
	}
	questions := quiz["questions"].([]interface{})
	q1 := questions[0].(map[string]interface{})["id"].(string)
	q2 := questions[1].(map[string]interface{})["id"].(string)

	code, submitted := call(t, a, http.MethodPost, "/api/quizzes/"+quiz["id"].(string)+"/submit", token, map[string]interface{}{
		"answers": []map[string]string{
			{"questionId": q1, "selectedAnswer": "A"},
			{"questionId": q2, "selectedAnswer": "C"},
		},
	})
	if code != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d (%v)", code, submitted)
	}
	if score := submitted["results"].(map[string]interface{})["score"].(float64); score != 50 {
		t.Fatalf("expected score 50, got %v", score)
	}

	code, listed := call(t, a, http.MethodGet, "/api/results?technology=ALL", token, nil)
	if code != http.StatusOK {
		t.Fatalf("list results: expected 200, got %d", code)
	}
	results := listed["results"].([]interface{})
	if len(results) != 1 {
		t.Fatalf("expected the submission to be recorded, got %d results", len(results))
	}
	if results[0].(map[string]interface{})["user"] != "user-1" {
		t.Fatalf("expected result owned by user-1, got %v", results[0])
	}
}

func TestResultsRequireToken(t *testing.T) {
	a := newTestApp(t)

	code, body := call(t, a, http.MethodGet, "/api/results", "", nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if body["message"] != "Not authorized" {
		t.Fatalf("expected Not authorized message, got %v", body["message"])
	}

	code, _ = call(t, a, http.MethodPost, "/api/results", "garbage", map[string]interface{}{"title": "t"})
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", code)
	}
}

func TestHealthAndMetricsRoutes(t *testing.T) {
	a := newTestApp(t)

	code, body := call(t, a, http.MethodGet, "/api/health", "", nil)
	if code != http.StatusOK || body["success"] != true {
		t.Fatalf("expected healthy response, got %d %v", code, body)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected metrics endpoint 200, got %d", w.Code)
	}
}

func TestApplyConfigChangesLogLevel(t *testing.T) {
	a := newTestApp(t)

	var seen *config.Config
	a.RegisterConfigCallback(func(cfg *config.Config) { seen = cfg })

	next := &config.Config{Server: config.ServerConfig{Mode: "release"}, Log: config.LogConfig{Level: "error"}}
	a.ApplyConfig(next)

	if logger.Level() != zapcore.ErrorLevel {
		t.Fatalf("expected error level, got %s", logger.Level())
	}
	if seen != next {
		t.Fatalf("expected callback to receive the new config")
	}
}

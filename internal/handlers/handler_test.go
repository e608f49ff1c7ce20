package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/ArtemKriachko/voidlink/internal/auth"
	"github.com/ArtemKriachko/voidlink/internal/config"
	"github.com/ArtemKriachko/voidlink/internal/models"
	"github.com/ArtemKriachko/voidlink/internal/repository"
	"github.com/ArtemKriachko/voidlink/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupTestHandler(t *testing.T) (*Handler, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	// A fresh pool connection would see a fresh in-memory database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Link{}, &models.AuditLog{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Config{
		BaseURL:   "http://localhost:8080",
		JWTSecret: "test-secret-12345678901234567890123456789012",
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret)
	audit := services.NewAuditService(db, logger)
	safety := services.NewSafetyService(cfg.SafetyCheckURL, cfg.SafetyCheckStrict, logger)
	links := repository.NewLinkRepository(db)
	shortener := services.NewShortenerService(links, nil, safety, audit, logger, cfg.BaseURL)

	h := NewHandler(cfg, logger, db, tokens, shortener, audit)
	return h, db
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return h.SetupRouter(nil)
}

func doJSON(r *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doForm(r *gin.Engine, path string, form string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, bytes.NewBufferString(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, r *gin.Engine, username, password string) string {
	w := doJSON(r, "POST", "/register", map[string]string{
		"username": username,
		"password": password,
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	form := "username=" + username + "&password=" + password
	req, _ := http.NewRequest("POST", "/token", bytes.NewBufferString(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "bearer", resp["token_type"])
	assert.NotEmpty(t, resp["access_token"])
	return resp["access_token"]
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

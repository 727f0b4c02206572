package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"finanzas/internal/logger"
	"finanzas/internal/metrics"
	"finanzas/internal/middleware"
	"finanzas/internal/services"
	"finanzas/internal/store"
	"finanzas/internal/testutil"
	"finanzas/internal/validator"
)

const testSecret = "integration-secret"

// testApp holds the full application stack for flow tests.
type testApp struct {
	DB       *gorm.DB
	Store    store.DocumentStore
	Sessions *services.SessionRegistry
	Router   *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init(logger.Config{Env: "test", Level: "error"})
	validator.Register()
}

// setupApp creates a full application stack on an isolated in-memory SQLite
// database with a short save debounce.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	// Debounced saves run in the background; one connection keeps SQLite
	// from reporting a locked table.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get underlying DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	docs := store.NewGormStore(db)
	m := metrics.New()
	gateway := services.NewPersistenceGateway(docs, nil, m)
	sessions := services.NewSessionRegistry(gateway, services.SessionConfig{
		SaveDebounce: 20 * time.Millisecond,
		SaveTimeout:  time.Second,
		IdleTTL:      time.Minute,
	}, m)
	t.Cleanup(sessions.Shutdown)

	router := NewRouter(Deps{
		Budget:    services.NewBudgetService(sessions),
		Snapshots: services.NewSnapshotService(gateway),
		Audit:     services.NewAuditService(db),
		Metrics:   m,
		JWTSecret: testSecret,
	})

	return &testApp{DB: db, Store: docs, Sessions: sessions, Router: router}
}

// token mints an identity token for userID.
func token(t *testing.T, userID string) string {
	t.Helper()
	tok, err := middleware.GenerateIdentityToken(testSecret, "", userID, time.Hour)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return tok
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

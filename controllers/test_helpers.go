package controllers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/ChurchPortal/initializers"
	"github.com/ChurchPortal/models"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
)

// SetupTestDB creates a mock database and sets it as the global DB for testing
func SetupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}

	originalDB := initializers.DB
	initializers.DB = goqu.New("postgres", db)

	cleanup := func() {
		db.Close()
		initializers.DB = originalDB
	}

	return db, mock, cleanup
}

// SetupTestContext creates a test Gin context with a response recorder
func SetupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c, w
}

// SetAuthenticatedUser sets the values the CheckAuth middleware would
func SetAuthenticatedUser(c *gin.Context, user models.User) {
	c.Set("currentUser", user)
	c.Set("admin", user.IsAdmin())
}

// SetJSONBody replaces the request with one carrying body as JSON. Strings
// are sent verbatim so tests can post malformed payloads.
func SetJSONBody(c *gin.Context, method string, body interface{}) {
	var raw []byte
	switch v := body.(type) {
	case string:
		raw = []byte(v)
	case nil:
	default:
		raw, _ = json.Marshal(v)
	}
	c.Request = httptest.NewRequest(method, "/", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
}

// SetupTestConfig installs a signing secret and a fresh in-memory session
// store, restoring both when the test ends.
func SetupTestConfig(t *testing.T) {
	originalConfig := initializers.Config
	originalSessions := initializers.Sessions

	initializers.Config.Secret = "test-secret-key"
	initializers.Sessions = initializers.NewMemorySessionStore()

	t.Cleanup(func() {
		initializers.Config = originalConfig
		initializers.Sessions = originalSessions
	})
}

package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/ChurchPortal/initializers"
	"github.com/ChurchPortal/models"
	"github.com/ChurchPortal/services"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(mock sqlmock.Sqlmock)
		expectedStatus int
		expectedRole   string
	}{
		{
			name: "first account becomes admin",
			body: models.Register{Name: "First Admin", Email: "first@example.com", Password: "secret123"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT COUNT").WillReturnRows(CountRows(0))
				mock.ExpectQuery("SELECT COUNT").WillReturnRows(CountRows(0))
				mock.ExpectExec(`INSERT INTO "app_user"`).WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedStatus: http.StatusOK,
			expectedRole:   models.RoleAdmin,
		},
		{
			name: "later accounts are regular users",
			body: models.Register{Name: "Second User", Email: "second@example.com", Password: "secret123"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT COUNT").WillReturnRows(CountRows(0))
				mock.ExpectQuery("SELECT COUNT").WillReturnRows(CountRows(4))
				mock.ExpectExec(`INSERT INTO "app_user"`).WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedStatus: http.StatusOK,
			expectedRole:   models.RoleUser,
		},
		{
			name: "duplicate email",
			body: models.Register{Name: "Second User", Email: "first@example.com", Password: "secret123"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT COUNT").WillReturnRows(CountRows(1))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "short password",
			body:           models.Register{Name: "Someone", Email: "someone@example.com", Password: "123"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			body:           "{invalid json}",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetupTestConfig(t)
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()
			if tt.setupMock != nil {
				tt.setupMock(mock)
			}

			c, w := SetupTestContext()
			SetJSONBody(c, http.MethodPost, tt.body)

			Register(c)

			if w.Code != tt.expectedStatus {
				t.Logf("Response body: %s", w.Body.String())
			}
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var response map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.NotEmpty(t, response["msg"])
				assert.NotEmpty(t, response["verificationToken"])
				assert.Equal(t, tt.expectedRole, response["user"].(map[string]interface{})["role"])
				assert.NotContains(t, w.Body.String(), "password")
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		user           *models.User
		requireVerify  bool
		expectedStatus int
	}{
		{
			name:           "valid credentials",
			body:           models.Login{Email: "test@example.com", Password: "password123"},
			user:           ptrUser(MockUserWithPassword("password123")),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong password",
			body:           models.Login{Email: "test@example.com", Password: "wrong"},
			user:           ptrUser(MockUserWithPassword("password123")),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unknown email",
			body:           models.Login{Email: "nobody@example.com", Password: "password123"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unverified account when verification is required",
			body:           models.Login{Email: "test@example.com", Password: "password123"},
			user:           ptrUser(MockUserWithPassword("password123")),
			requireVerify:  true,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing password",
			body:           map[string]interface{}{"email": "test@example.com"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetupTestConfig(t)
			initializers.Config.RequireEmailVerification = tt.requireVerify
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.expectedStatus != http.StatusBadRequest {
				if tt.user != nil {
					mock.ExpectQuery("SELECT").WillReturnRows(UserRows(*tt.user))
				} else {
					mock.ExpectQuery("SELECT").WillReturnRows(UserRows())
				}
			}

			c, w := SetupTestContext()
			SetJSONBody(c, http.MethodPost, tt.body)

			Login(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var response map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				token := response["token"].(string)
				assert.NotEmpty(t, token)
				assert.Contains(t, w.Header().Get("Set-Cookie"), services.TokenCookie+"=")

				claims, err := services.ParseToken(token)
				require.NoError(t, err)
				assert.Equal(t, MockUserID, claims.UserID)
				userID, ok, err := initializers.Sessions.Lookup(context.Background(), claims.SessionID)
				require.NoError(t, err)
				assert.True(t, ok)
				assert.Equal(t, MockUserID, userID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	SetupTestConfig(t)
	ctx := context.Background()
	require.NoError(t, initializers.Sessions.Create(ctx, "session-1", MockAdminID, time.Hour))

	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockAdminUser())
	c.Set("sessionID", "session-1")

	Logout(c)

	assert.Equal(t, http.StatusOK, w.Code)
	_, ok, err := initializers.Sessions.Lookup(ctx, "session-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetCurrentUser(t *testing.T) {
	tests := []struct {
		name          string
		user          models.User
		expectedAdmin bool
	}{
		{name: "admin", user: MockAdminUser(), expectedAdmin: true},
		{name: "regular user", user: MockUser(), expectedAdmin: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := SetupTestContext()
			SetAuthenticatedUser(c, tt.user)

			GetCurrentUser(c)

			assert.Equal(t, http.StatusOK, w.Code)
			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedAdmin, response["admin"])
			assert.Equal(t, tt.user.User_ID, response["user"].(map[string]interface{})["userId"])
		})
	}
}

func TestVerifyEmail(t *testing.T) {
	tests := []struct {
		name           string
		found          bool
		expectedStatus int
	}{
		{name: "matching token", found: true, expectedStatus: http.StatusOK},
		{name: "unknown token", found: false, expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.found {
				user := MockUser()
				user.Verification_Token = "verify-me"
				mock.ExpectQuery("SELECT").WillReturnRows(UserRows(user))
				mock.ExpectExec(`UPDATE "app_user"`).WillReturnResult(sqlmock.NewResult(0, 1))
			} else {
				mock.ExpectQuery("SELECT").WillReturnRows(UserRows())
			}

			c, w := SetupTestContext()
			SetJSONBody(c, http.MethodPost, models.VerifyEmailRequest{VerificationToken: "verify-me", Email: "test@example.com"})

			VerifyEmail(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func ptrUser(u models.User) *models.User {
	return &u
}

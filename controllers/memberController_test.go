package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMemberBody() map[string]interface{} {
	return map[string]interface{}{
		"surname":             "Doe",
		"other_names":         "John",
		"email":               "John@Example.com",
		"address":             "1 Church Road",
		"age":                 34,
		"gender":              "male",
		"marital_status":      "married",
		"number_of_children":  2,
		"ministry_membership": "Men's",
		"baptism_date":        "2010-04-04",
	}
}

func withField(body map[string]interface{}, key string, value interface{}) map[string]interface{} {
	body[key] = value
	return body
}

func TestGetMembers(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT").WillReturnRows(MemberRows(MockMember()))

	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockAdminUser())

	GetMembers(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["hits"])
	members := response["members"].([]interface{})
	require.Len(t, members, 1)
	assert.Equal(t, MockMemberID, members[0].(map[string]interface{})["_id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMember(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(mock sqlmock.Sqlmock)
		expectedStatus int
		invalidField   string
	}{
		{
			name: "creates member",
			body: validMemberBody(),
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT COUNT").WillReturnRows(CountRows(0))
				mock.ExpectExec(`INSERT INTO "member"`).WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "duplicate email is a validation error",
			body: validMemberBody(),
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT COUNT").WillReturnRows(CountRows(1))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing surname",
			body:           withField(validMemberBody(), "surname", ""),
			expectedStatus: http.StatusBadRequest,
			invalidField:   "surname",
		},
		{
			name:           "surname of only spaces",
			body:           withField(validMemberBody(), "surname", "   "),
			expectedStatus: http.StatusBadRequest,
			invalidField:   "surname",
		},
		{
			name:           "blank address",
			body:           withField(validMemberBody(), "address", " \t "),
			expectedStatus: http.StatusBadRequest,
			invalidField:   "address",
		},
		{
			name: "address is trimmed",
			body: withField(validMemberBody(), "address", "  1 Church Road  "),
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT COUNT").WillReturnRows(CountRows(0))
				mock.ExpectExec(`INSERT INTO "member" .*'1 Church Road'`).WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid email",
			body:           withField(validMemberBody(), "email", "not-an-email"),
			expectedStatus: http.StatusBadRequest,
			invalidField:   "email",
		},
		{
			name:           "unknown gender",
			body:           withField(validMemberBody(), "gender", "other"),
			expectedStatus: http.StatusBadRequest,
			invalidField:   "gender",
		},
		{
			name:           "unknown ministry",
			body:           withField(validMemberBody(), "ministry_membership", "Youth"),
			expectedStatus: http.StatusBadRequest,
			invalidField:   "ministry_membership",
		},
		{
			name:           "negative age",
			body:           withField(validMemberBody(), "age", -1),
			expectedStatus: http.StatusBadRequest,
			invalidField:   "age",
		},
		{
			name: "malformed baptism date",
			body: withField(validMemberBody(), "baptism_date", "04/04/2010"),
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT COUNT").WillReturnRows(CountRows(0))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			body:           "{invalid json}",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "database failure",
			body: validMemberBody(),
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT COUNT").WillReturnRows(CountRows(0))
				mock.ExpectExec(`INSERT INTO "member"`).WillReturnError(errors.New("connection reset"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()
			if tt.setupMock != nil {
				tt.setupMock(mock)
			}

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockAdminUser())
			SetJSONBody(c, http.MethodPost, tt.body)

			CreateMember(c)

			if w.Code != tt.expectedStatus {
				t.Logf("Response body: %s", w.Body.String())
			}
			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			if tt.expectedStatus == http.StatusOK {
				member := response["member"].(map[string]interface{})
				assert.Equal(t, "john@example.com", member["email"])
				assert.Equal(t, "Men's", member["ministry_membership"])
				assert.NotEmpty(t, member["_id"])
			} else {
				assert.NotEmpty(t, response["msg"])
			}
			if tt.invalidField != "" {
				details := response["details"].(map[string]interface{})
				assert.Contains(t, details, tt.invalidField)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetMember(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		setupMock      func(mock sqlmock.Sqlmock)
		expectedStatus int
	}{
		{
			name: "found",
			id:   MockMemberID,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT").WillReturnRows(MemberRows(MockMember()))
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unknown id",
			id:   UnknownID,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT").WillReturnRows(MemberRows())
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "malformed id",
			id:             "not-a-uuid",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "urn form id",
			id:             "urn:uuid:" + MockMemberID,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()
			if tt.setupMock != nil {
				tt.setupMock(mock)
			}

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockAdminUser())
			c.Params = gin.Params{{Key: "id", Value: tt.id}}

			GetMember(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUpdateMember(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		body           interface{}
		setupMock      func(mock sqlmock.Sqlmock)
		expectedStatus int
		expectedPhone  string
		invalidField   string
	}{
		{
			name: "updates supplied fields only",
			id:   MockMemberID,
			body: map[string]interface{}{"phone": "0811111111"},
			setupMock: func(mock sqlmock.Sqlmock) {
				updated := MockMember()
				updated.Phone = "0811111111"
				mock.ExpectQuery("SELECT").WillReturnRows(MemberRows(MockMember()))
				mock.ExpectExec(`UPDATE "member" SET .*"phone"='0811111111'`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery("SELECT").WillReturnRows(MemberRows(updated))
			},
			expectedStatus: http.StatusOK,
			expectedPhone:  "0811111111",
		},
		{
			name: "empty patch returns the member unchanged",
			id:   MockMemberID,
			body: map[string]interface{}{},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT").WillReturnRows(MemberRows(MockMember()))
			},
			expectedStatus: http.StatusOK,
			expectedPhone:  "0800000000",
		},
		{
			name: "email taken by another member",
			id:   MockMemberID,
			body: map[string]interface{}{"email": "jane@example.com"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT").WillReturnRows(MemberRows(MockMember()))
				mock.ExpectQuery("SELECT COUNT").WillReturnRows(CountRows(1))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "surname of only spaces",
			id:             MockMemberID,
			body:           map[string]interface{}{"surname": "  "},
			expectedStatus: http.StatusBadRequest,
			invalidField:   "surname",
		},
		{
			name:           "empty other names",
			id:             MockMemberID,
			body:           map[string]interface{}{"other_names": ""},
			expectedStatus: http.StatusBadRequest,
			invalidField:   "other_names",
		},
		{
			name:           "blank address",
			id:             MockMemberID,
			body:           map[string]interface{}{"address": "   "},
			expectedStatus: http.StatusBadRequest,
			invalidField:   "address",
		},
		{
			name: "surname is trimmed",
			id:   MockMemberID,
			body: map[string]interface{}{"surname": "  Smith "},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT").WillReturnRows(MemberRows(MockMember()))
				mock.ExpectExec(`UPDATE "member" SET .*"surname"='Smith'`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery("SELECT").WillReturnRows(MemberRows(MockMember()))
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid enum value",
			id:             MockMemberID,
			body:           map[string]interface{}{"marital_status": "complicated"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown member",
			id:   UnknownID,
			body: map[string]interface{}{"phone": "0811111111"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT").WillReturnRows(MemberRows())
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()
			if tt.setupMock != nil {
				tt.setupMock(mock)
			}

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockAdminUser())
			SetJSONBody(c, http.MethodPatch, tt.body)
			c.Params = gin.Params{{Key: "id", Value: tt.id}}

			UpdateMember(c)

			if w.Code != tt.expectedStatus {
				t.Logf("Response body: %s", w.Body.String())
			}
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedPhone != "" {
				var response map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Equal(t, tt.expectedPhone, response["member"].(map[string]interface{})["phone"])
			}
			if tt.invalidField != "" {
				var response map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Contains(t, response["details"], tt.invalidField)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDeleteMemberTwice(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT").WillReturnRows(MemberRows(MockMember()))
	mock.ExpectExec(`DELETE FROM "member"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT").WillReturnRows(MemberRows())

	for _, expected := range []int{http.StatusOK, http.StatusNotFound} {
		c, w := SetupTestContext()
		SetAuthenticatedUser(c, MockAdminUser())
		c.Params = gin.Params{{Key: "id", Value: MockMemberID}}

		DeleteMember(c)

		assert.Equal(t, expected, w.Code)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitlog/internal/model"
)

// MockUserService is a mock implementation of UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateOrFetch(ctx context.Context, username string) (*model.User, bool, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.User), args.Bool(1), args.Error(2)
}

func (m *MockUserService) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

type testValidator struct {
	validator *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.validator.Struct(i)
}

func newTestContext(e *echo.Echo, method, target, body, contentType string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

func TestUserHandler_CreateUser(t *testing.T) {
	userID := primitive.NewObjectID()

	tests := []struct {
		name           string
		body           string
		contentType    string
		setupMock      func(*MockUserService)
		expectedStatus int
	}{
		{
			name:        "creates user from form body",
			body:        "username=alice",
			contentType: echo.MIMEApplicationForm,
			setupMock: func(m *MockUserService) {
				m.On("CreateOrFetch", mock.Anything, "alice").
					Return(&model.User{ID: userID, Username: "alice"}, true, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:        "returns existing user with 200",
			body:        `{"username":"alice"}`,
			contentType: echo.MIMEApplicationJSON,
			setupMock: func(m *MockUserService) {
				m.On("CreateOrFetch", mock.Anything, "alice").
					Return(&model.User{ID: userID, Username: "alice"}, false, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "rejects missing username",
			body:           "",
			contentType:    echo.MIMEApplicationForm,
			setupMock:      func(m *MockUserService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "rejects empty username",
			body:           `{"username":""}`,
			contentType:    echo.MIMEApplicationJSON,
			setupMock:      func(m *MockUserService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockUserService)
			tt.setupMock(mockSvc)

			e := newTestEcho()
			c, rec := newTestContext(e, http.MethodPost, "/api/users", tt.body, tt.contentType)

			h := NewUserHandler(mockSvc)
			err := h.CreateUser(c)

			if tt.expectedStatus >= http.StatusBadRequest {
				require.Error(t, err)
				he, ok := err.(*echo.HTTPError)
				require.True(t, ok)
				assert.Equal(t, tt.expectedStatus, he.Code)
				mockSvc.AssertNotCalled(t, "CreateOrFetch", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedStatus, rec.Code)

				var resp UserResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, "alice", resp.Username)
				assert.Equal(t, userID.Hex(), resp.ID)
			}

			mockSvc.AssertExpectations(t)
		})
	}
}

func TestUserHandler_ListUsers(t *testing.T) {
	users := []model.User{
		{ID: primitive.NewObjectID(), Username: "alice"},
		{ID: primitive.NewObjectID(), Username: "bob"},
	}

	mockSvc := new(MockUserService)
	mockSvc.On("List", mock.Anything).Return(users, nil)

	e := newTestEcho()
	c, rec := newTestContext(e, http.MethodGet, "/api/users", "", "")

	h := NewUserHandler(mockSvc)
	require.NoError(t, h.ListUsers(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "alice", resp[0].Username)
	assert.Equal(t, users[0].ID.Hex(), resp[0].ID)
	assert.Equal(t, "bob", resp[1].Username)

	mockSvc.AssertExpectations(t)
}

func TestUserHandler_ListUsers_Empty(t *testing.T) {
	mockSvc := new(MockUserService)
	mockSvc.On("List", mock.Anything).Return([]model.User{}, nil)

	e := newTestEcho()
	c, rec := newTestContext(e, http.MethodGet, "/api/users", "", "")

	h := NewUserHandler(mockSvc)
	require.NoError(t, h.ListUsers(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

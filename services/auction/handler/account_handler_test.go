package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
	"auction-house/internal/session"
	"auction-house/services/auction/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

const testCookie = "session_token"

func newAccountRouter(t *testing.T, mockService *MockAccountServiceInterface, sessions *session.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewAccountHandler(mockService, sessions, testCookie, 3600)
	router.POST("/register", handler.RegisterHandler)
	router.POST("/login", handler.LoginHandler)
	router.POST("/logout", handler.LogoutHandler)
	return router
}

func sessionCookie(w interface{ Result() *http.Response }) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookie {
			return c
		}
	}
	return nil
}

// Test RegisterHandler
func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAccountServiceInterface(ctrl)
	sessions := session.NewStore()
	router := newAccountRouter(t, mockService, sessions)

	t.Run("success_creates_session", func(t *testing.T) {
		mockService.EXPECT().
			Register("alice", "alice@example.com", "hunter2", "hunter2").
			Return(model.User{UserID: 1, Username: "alice", Email: "alice@example.com"}, nil)

		resp, w := doJSON(t, router, http.MethodPost, "/register", helpers.RegisterRequest{
			Username:     "alice",
			Email:        "alice@example.com",
			Password:     "hunter2",
			Confirmation: "hunter2",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		data := resp["data"].(map[string]any)
		require.Equal(t, "alice", data["username"])

		cookie := sessionCookie(w)
		require.NotNil(t, cookie, "registration must log the user in")
		sess, err := sessions.Get(cookie.Value)
		require.NoError(t, err)
		require.Equal(t, int64(1), sess.UserID)
	})

	t.Run("password_mismatch", func(t *testing.T) {
		mockService.EXPECT().
			Register("alice", "alice@example.com", "hunter2", "hunter3").
			Return(model.User{}, auctionerrors.ErrPasswordMismatch)

		resp, w := doJSON(t, router, http.MethodPost, "/register", helpers.RegisterRequest{
			Username:     "alice",
			Email:        "alice@example.com",
			Password:     "hunter2",
			Confirmation: "hunter3",
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, "passwords must match", resp["message"])
	})

	t.Run("username_taken", func(t *testing.T) {
		mockService.EXPECT().
			Register("alice", "alice@example.com", "hunter2", "hunter2").
			Return(model.User{}, auctionerrors.ErrUsernameTaken)

		resp, w := doJSON(t, router, http.MethodPost, "/register", helpers.RegisterRequest{
			Username:     "alice",
			Email:        "alice@example.com",
			Password:     "hunter2",
			Confirmation: "hunter2",
		})
		require.Equal(t, http.StatusConflict, w.Code)
		require.Equal(t, "username already taken", resp["message"])
	})

	t.Run("missing_fields", func(t *testing.T) {
		_, w := doJSON(t, router, http.MethodPost, "/register", map[string]any{"username": "alice"})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// Test LoginHandler
func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAccountServiceInterface(ctrl)
	sessions := session.NewStore()
	router := newAccountRouter(t, mockService, sessions)

	t.Run("success", func(t *testing.T) {
		mockService.EXPECT().
			Authenticate("alice", "hunter2").
			Return(model.User{UserID: 1, Username: "alice"}, nil)

		_, w := doJSON(t, router, http.MethodPost, "/login", helpers.LoginRequest{Username: "alice", Password: "hunter2"})
		require.Equal(t, http.StatusOK, w.Code)

		cookie := sessionCookie(w)
		require.NotNil(t, cookie)
		sess, err := sessions.Get(cookie.Value)
		require.NoError(t, err)
		require.Equal(t, int64(1), sess.UserID)
	})

	t.Run("invalid_credentials", func(t *testing.T) {
		mockService.EXPECT().
			Authenticate("alice", "wrong").
			Return(model.User{}, auctionerrors.ErrInvalidCredentials)

		resp, w := doJSON(t, router, http.MethodPost, "/login", helpers.LoginRequest{Username: "alice", Password: "wrong"})
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Equal(t, "invalid username and/or password", resp["message"])
	})
}

// Test LogoutHandler
func TestLogoutHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAccountServiceInterface(ctrl)
	sessions := session.NewStore()
	router := newAccountRouter(t, mockService, sessions)

	sess := sessions.Create(1)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: sess.Token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	_, err := sessions.Get(sess.Token)
	require.ErrorIs(t, err, auctionerrors.ErrSessionNotFound, "logout destroys the server-side session")
}

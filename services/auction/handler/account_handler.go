package handler

import (
	"fmt"
	"net/http"

	model "auction-house/internal/models"
	"auction-house/internal/session"
	"auction-house/services/auction/helpers"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

type AccountServiceInterface interface {
	Register(username, email, password, confirmation string) (model.User, error)
	Authenticate(username, password string) (model.User, error)
}

type AccountHandler struct {
	service    AccountServiceInterface
	sessions   *session.Store
	cookieName string
	cookieAge  int
}

func NewAccountHandler(service AccountServiceInterface, sessions *session.Store, cookieName string, cookieAge int) *AccountHandler {
	return &AccountHandler{
		service:    service,
		sessions:   sessions,
		cookieName: cookieName,
		cookieAge:  cookieAge,
	}
}

func (h *AccountHandler) issueSession(c *gin.Context, userID int64) *session.Session {
	sess := h.sessions.Create(userID)
	c.SetCookie(h.cookieName, sess.Token, h.cookieAge, "/", "", false, true)
	return sess
}

// RegisterHandler handles POST /register. A successful registration logs the
// new user in straight away.
func (h *AccountHandler) RegisterHandler(c *gin.Context) {
	var req helpers.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterHandler", err)
		return
	}

	user, err := h.service.Register(req.Username, req.Email, req.Password, req.Confirmation)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("RegisterHandler: registration failed", map[string]any{"username": req.Username, "error": err.Error()})
		return
	}

	h.issueSession(c, user.UserID)

	resp := helpers.UserResponse{UserID: user.UserID, Username: user.Username, Email: user.Email}
	utils.JSONResponse(c, http.StatusCreated, resp, "registered successfully")
	helpers.LogSuccess("RegisterHandler", "registered successfully", map[string]any{
		"user_id":  user.UserID,
		"username": user.Username,
	})
}

// LoginHandler handles POST /login
func (h *AccountHandler) LoginHandler(c *gin.Context) {
	var req helpers.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LoginHandler", err)
		return
	}

	user, err := h.service.Authenticate(req.Username, req.Password)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("LoginHandler: login failed", map[string]any{"username": req.Username})
		return
	}

	h.issueSession(c, user.UserID)

	resp := helpers.UserResponse{UserID: user.UserID, Username: user.Username, Email: user.Email}
	utils.JSONResponse(c, http.StatusOK, resp, "logged in successfully")
	helpers.LogSuccess("LoginHandler", "logged in successfully", map[string]any{
		"user_id":  user.UserID,
		"username": user.Username,
	})
}

// LogoutHandler handles POST /logout. Logging out with no session is fine.
func (h *AccountHandler) LogoutHandler(c *gin.Context) {
	if token, err := c.Cookie(h.cookieName); err == nil {
		h.sessions.Delete(token)
	}
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)

	utils.JSONResponse(c, http.StatusOK, nil, "logged out successfully")
}

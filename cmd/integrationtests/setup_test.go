package integrationtests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	account "auction-house/internal/accountService"
	auction "auction-house/internal/auctionService"
	"auction-house/internal/config"
	"auction-house/internal/repository"
	"auction-house/internal/server"
	"auction-house/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testCookieName = "session_token"

// SetupTestRouter wires the full stack against an in-memory database.
func SetupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo, err := repository.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	sessions := session.NewStore()
	auctionSvc := auction.NewAuctionService(repo)
	accountSvc := account.NewAccountService(repo)

	cfg := &config.Config{}
	cfg.Session.CookieName = testCookieName
	cfg.Session.MaxAge = 3600

	return server.SetupRouter(auctionSvc, accountSvc, sessions, cfg)
}

// client is one browser-like caller: it carries its session cookie across
// requests so logged-in flows can be exercised end to end.
type client struct {
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

func newClient(router *gin.Engine) *client {
	return &client{router: router, cookies: make(map[string]*http.Cookie)}
}

// Do executes a request, updates stored cookies, and parses the JSON envelope.
func (cl *client) Do(t *testing.T, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	if body != nil {
		var err error
		reqBody, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cl.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	cl.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(cl.cookies, c.Name)
		} else {
			cl.cookies[c.Name] = c
		}
	}

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return resp, w
}

// Register signs a fresh user up and leaves the client logged in.
func (cl *client) Register(t *testing.T, username string) int64 {
	t.Helper()
	resp, w := cl.Do(t, http.MethodPost, "/register", map[string]any{
		"username":     username,
		"email":        fmt.Sprintf("%s@example.com", username),
		"password":     "hunter2",
		"confirmation": "hunter2",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return int64(resp["data"].(map[string]any)["user_id"].(float64))
}

// CreateListing creates a listing and returns its id.
func (cl *client) CreateListing(t *testing.T, title, category string, startingBid float64) int64 {
	t.Helper()
	resp, w := cl.Do(t, http.MethodPost, "/listings", map[string]any{
		"title":        title,
		"description":  "description of " + title,
		"starting_bid": startingBid,
		"category":     category,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return int64(resp["data"].(map[string]any)["listing_id"].(float64))
}

func data(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	d, ok := resp["data"].(map[string]any)
	require.True(t, ok, "response has no data object: %v", resp)
	return d
}

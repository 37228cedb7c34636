package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/session"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

// Gin context key holding the *session.Session attached by the session
// middleware. Lives here so both the server and handler packages can reach
// it without an import cycle.
const CtxSession = "session"

// CurrentSession returns the authenticated session attached to the request,
// if any.
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(CtxSession)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok
}

// ListingIDParam parses the :listing_id path parameter
func ListingIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("listing_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w - malformed listing id %q", auctionerrors.ErrValidation, c.Param("listing_id"))
	}
	return id, nil
}

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrListingNotFound):
		return http.StatusNotFound, "listing not found"
	case errors.Is(err, auctionerrors.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, auctionerrors.ErrNoBids):
		return http.StatusNotFound, "no bids found for listing"
	case errors.Is(err, auctionerrors.ErrNotWatched):
		return http.StatusNotFound, "listing not in watchlist"
	case errors.Is(err, auctionerrors.ErrValidation):
		return http.StatusBadRequest, "invalid input"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusBadRequest, "bid amount too low"
	case errors.Is(err, auctionerrors.ErrPasswordMismatch):
		return http.StatusBadRequest, "passwords must match"
	case errors.Is(err, auctionerrors.ErrUsernameTaken):
		return http.StatusConflict, "username already taken"
	case errors.Is(err, auctionerrors.ErrListingClosed):
		return http.StatusConflict, "listing is closed"
	case errors.Is(err, auctionerrors.ErrCannotClose):
		return http.StatusConflict, "cannot close a listing without bids"
	case errors.Is(err, auctionerrors.ErrNotOwner):
		return http.StatusForbidden, "only the listing owner may close it"
	case errors.Is(err, auctionerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid username and/or password"
	case errors.Is(err, auctionerrors.ErrAuthRequired), errors.Is(err, auctionerrors.ErrSessionNotFound):
		return http.StatusUnauthorized, "authentication required"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}

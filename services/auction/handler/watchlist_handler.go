package handler

import (
	"fmt"
	"net/http"

	"auction-house/internal/session"
	"auction-house/services/auction/helpers"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

// WatchlistHandler mutates the per-session watchlist and resolves it to
// listings for display
type WatchlistHandler struct {
	service  AuctionServiceInterface
	sessions *session.Store
}

func NewWatchlistHandler(service AuctionServiceInterface, sessions *session.Store) *WatchlistHandler {
	return &WatchlistHandler{service: service, sessions: sessions}
}

// GetWatchlistHandler handles GET /watchlist. Ids whose listing no longer
// resolves are skipped silently.
func (h *WatchlistHandler) GetWatchlistHandler(c *gin.Context) {
	sess, _ := helpers.CurrentSession(c)

	ids, err := h.sessions.Watchlist(sess.Token)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	listings, err := h.service.GetWatchedListings(ids)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("GetWatchlistHandler: failed to resolve watchlist", map[string]any{"user_id": sess.UserID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, listings, "watchlist retrieved successfully")
}

// AddToWatchlistHandler handles POST /watchlist/:listing_id. Adding a
// listing already watched is a no-op.
func (h *WatchlistHandler) AddToWatchlistHandler(c *gin.Context) {
	listingID, err := helpers.ListingIDParam(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err, "invalid listing id")
		return
	}

	sess, _ := helpers.CurrentSession(c)
	if err := h.sessions.AddToWatchlist(sess.Token, listingID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "listing added to watchlist")
	helpers.LogSuccess("AddToWatchlistHandler", "listing added to watchlist", map[string]any{
		"listing_id": listingID,
		"user_id":    sess.UserID,
	})
}

// RemoveFromWatchlistHandler handles DELETE /watchlist/:listing_id
func (h *WatchlistHandler) RemoveFromWatchlistHandler(c *gin.Context) {
	listingID, err := helpers.ListingIDParam(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err, "invalid listing id")
		return
	}

	sess, _ := helpers.CurrentSession(c)
	if err := h.sessions.RemoveFromWatchlist(sess.Token, listingID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("RemoveFromWatchlistHandler: failed to remove listing", map[string]any{
			"listing_id": listingID,
			"user_id":    sess.UserID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "listing removed from watchlist")
}

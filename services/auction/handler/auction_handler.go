package handler

import (
	"fmt"
	"net/http"
	"time"

	model "auction-house/internal/models"
	"auction-house/internal/session"
	"auction-house/services/auction/helpers"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

type AuctionServiceInterface interface {
	CreateListing(userID int64, title, description string, startingBid float64, imageURL, category string) (model.Listing, error)
	GetActiveListings() ([]model.Listing, error)
	GetListingDetail(listingID int64) (model.Listing, []model.Bid, []model.Comment, error)
	ListCategories() ([]string, error)
	GetListingsByCategory(category string) ([]model.Listing, error)
	GetWatchedListings(ids []int64) ([]model.Listing, error)
	PlaceBid(listingID, userID int64, amount float64) (model.Bid, error)
	CloseListing(listingID, userID int64) (model.Listing, error)
	AddComment(listingID, userID int64, content string) (model.Comment, error)
}

type AuctionHandler struct {
	service  AuctionServiceInterface
	sessions *session.Store
}

func NewAuctionHandler(service AuctionServiceInterface, sessions *session.Store) *AuctionHandler {
	return &AuctionHandler{service: service, sessions: sessions}
}

// GetActiveListingsHandler handles GET /listings
func (h *AuctionHandler) GetActiveListingsHandler(c *gin.Context) {
	listings, err := h.service.GetActiveListings()
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("GetActiveListingsHandler: failed to list active listings", map[string]any{"error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, listings, "active listings retrieved successfully")
}

// GetListingHandler handles GET /listings/:listing_id
func (h *AuctionHandler) GetListingHandler(c *gin.Context) {
	listingID, err := helpers.ListingIDParam(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err, "invalid listing id")
		return
	}

	listing, bids, comments, err := h.service.GetListingDetail(listingID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetListingHandler: failed to get listing", map[string]any{"listing_id": listingID, "error": err.Error()})
		return
	}

	resp := helpers.ListingDetailResponse{
		Listing:  listing,
		Bids:     bids,
		Comments: comments,
	}
	// Eligibility flags depend on who is looking.
	if sess, ok := helpers.CurrentSession(c); ok {
		resp.Closable = listing.Active && listing.UserID == sess.UserID
		resp.Watched = h.sessions.IsWatching(sess.Token, listingID)
		resp.Won = listing.WinnerID != nil && *listing.WinnerID == sess.UserID
	}

	utils.JSONResponse(c, http.StatusOK, resp, "listing retrieved successfully")
}

// CreateListingHandler handles POST /listings
func (h *AuctionHandler) CreateListingHandler(c *gin.Context) {
	var req helpers.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateListingHandler", err)
		return
	}

	sess, _ := helpers.CurrentSession(c)
	listing, err := h.service.CreateListing(sess.UserID, req.Title, req.Description, req.StartingBid, req.ImageURL, req.Category)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateListingHandler: failed to create listing", map[string]any{
			"user_id": sess.UserID,
			"title":   req.Title,
			"error":   err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, listing, "listing created successfully")
	helpers.LogSuccess("CreateListingHandler", "listing created successfully", map[string]any{
		"listing_id": listing.ListingID,
		"user_id":    sess.UserID,
		"title":      listing.Title,
	})
}

// PlaceBidHandler handles POST /listings/:listing_id/bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	listingID, err := helpers.ListingIDParam(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err, "invalid listing id")
		return
	}

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	sess, _ := helpers.CurrentSession(c)
	bid, err := h.service.PlaceBid(listingID, sess.UserID, req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("PlaceBidHandler: failed to place bid", map[string]any{
			"listing_id": listingID,
			"user_id":    sess.UserID,
			"amount":     req.Amount,
			"error":      err.Error(),
		})
		return
	}

	resp := helpers.BidResponse{
		BidID:     bid.BidID,
		ListingID: bid.ListingID,
		UserID:    bid.UserID,
		Amount:    bid.Amount,
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"bid_id":     bid.BidID,
		"listing_id": bid.ListingID,
		"user_id":    bid.UserID,
		"amount":     bid.Amount,
	})
}

// CloseListingHandler handles POST /listings/:listing_id/close
func (h *AuctionHandler) CloseListingHandler(c *gin.Context) {
	listingID, err := helpers.ListingIDParam(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err, "invalid listing id")
		return
	}

	sess, _ := helpers.CurrentSession(c)
	listing, err := h.service.CloseListing(listingID, sess.UserID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("CloseListingHandler: failed to close listing", map[string]any{
			"listing_id": listingID,
			"user_id":    sess.UserID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, listing, "listing closed successfully")
	helpers.LogSuccess("CloseListingHandler", "listing closed successfully", map[string]any{
		"listing_id": listing.ListingID,
		"winner_id":  *listing.WinnerID,
	})
}

// AddCommentHandler handles POST /listings/:listing_id/comments
func (h *AuctionHandler) AddCommentHandler(c *gin.Context) {
	listingID, err := helpers.ListingIDParam(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err, "invalid listing id")
		return
	}

	var req helpers.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AddCommentHandler", err)
		return
	}

	sess, _ := helpers.CurrentSession(c)
	comment, err := h.service.AddComment(listingID, sess.UserID, req.Content)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("AddCommentHandler: failed to add comment", map[string]any{
			"listing_id": listingID,
			"user_id":    sess.UserID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, comment, "comment added successfully")
	helpers.LogSuccess("AddCommentHandler", "comment added successfully", map[string]any{
		"comment_id": comment.CommentID,
		"listing_id": listingID,
		"user_id":    sess.UserID,
	})
}

// ListCategoriesHandler handles GET /categories
func (h *AuctionHandler) ListCategoriesHandler(c *gin.Context) {
	categories, err := h.service.ListCategories()
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("ListCategoriesHandler: failed to list categories", map[string]any{"error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, categories, "categories retrieved successfully")
}

// GetListingsByCategoryHandler handles GET /categories/:category
func (h *AuctionHandler) GetListingsByCategoryHandler(c *gin.Context) {
	category := c.Param("category")
	listings, err := h.service.GetListingsByCategory(category)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetListingsByCategoryHandler: failed to get listings", map[string]any{"category": category, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, listings, "listings retrieved successfully")
}

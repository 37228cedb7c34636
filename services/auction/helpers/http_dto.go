package helpers

import model "auction-house/internal/models"

// Request/Response DTOs
type RegisterRequest struct {
	Username     string `json:"username" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
	Confirmation string `json:"confirmation" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateListingRequest struct {
	Title       string  `json:"title" binding:"required,max=64"`
	Description string  `json:"description" binding:"required"`
	StartingBid float64 `json:"starting_bid" binding:"required,gt=0"`
	ImageURL    string  `json:"image_url" binding:"omitempty,url"`
	Category    string  `json:"category" binding:"omitempty,max=64"`
}

type PlaceBidRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type AddCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type UserResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type BidResponse struct {
	BidID     int64   `json:"bid_id"`
	ListingID int64   `json:"listing_id"`
	UserID    int64   `json:"user_id"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"created_at"`
}

// ListingDetailResponse is the full detail view of a listing: the record,
// its bid and comment history, and the viewer-dependent eligibility flags.
type ListingDetailResponse struct {
	Listing  model.Listing   `json:"listing"`
	Bids     []model.Bid     `json:"bids"`
	Comments []model.Comment `json:"comments"`
	Closable bool            `json:"closable"`
	Watched  bool            `json:"watched"`
	Won      bool            `json:"won"`
}

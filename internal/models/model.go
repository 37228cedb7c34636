package models

import "time"

// Timestamps carries creation/update times shared by every persisted entity.
type Timestamps struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User represents a registered account in the auction house
type User struct {
	UserID       int64  `json:"user_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Timestamps
}

// Listing represents an item up for auction. CurrentPrice starts at the
// seller's asking price and is overwritten with each accepted bid amount.
type Listing struct {
	ListingID    int64   `json:"listing_id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	CurrentPrice float64 `json:"current_price"`
	ImageURL     string  `json:"image_url,omitempty"`
	Category     string  `json:"category,omitempty"`
	UserID       int64   `json:"user_id"`
	Active       bool    `json:"active"`
	WinnerID     *int64  `json:"winner_id,omitempty"`
	Timestamps
}

// Bid represents a user's bid on a listing
type Bid struct {
	BidID     int64   `json:"bid_id"`
	ListingID int64   `json:"listing_id"`
	UserID    int64   `json:"user_id"`
	Amount    float64 `json:"amount"`
	Timestamps
}

// Comment represents free-text feedback a user left on a listing
type Comment struct {
	CommentID int64  `json:"comment_id"`
	ListingID int64  `json:"listing_id"`
	UserID    int64  `json:"user_id"`
	Content   string `json:"content"`
	Timestamps
}

package auction

import (
	"fmt"
	"strings"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/internal/repository"
)

const maxTitleLen = 64

// AuctionService defines the business logic for listings, bids, comments
// and closing auctions
type AuctionService struct {
	repo repository.AuctionDB
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(repo repository.AuctionDB) *AuctionService {
	return &AuctionService{
		repo: repo,
	}
}

// CreateListing validates and persists a new active listing owned by userID
func (s *AuctionService) CreateListing(userID int64, title, description string, startingBid float64, imageURL, category string) (models.Listing, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > maxTitleLen {
		return models.Listing{}, fmt.Errorf("service: %w - title must be 1-%d characters", auctionerrors.ErrValidation, maxTitleLen)
	}
	if strings.TrimSpace(description) == "" {
		return models.Listing{}, fmt.Errorf("service: %w - missing description", auctionerrors.ErrValidation)
	}
	if startingBid <= 0 {
		return models.Listing{}, fmt.Errorf("service: %w - starting bid must be positive", auctionerrors.ErrValidation)
	}

	listing := models.Listing{
		Title:        title,
		Description:  description,
		CurrentPrice: startingBid,
		ImageURL:     imageURL,
		Category:     category,
		UserID:       userID,
	}

	created, err := s.repo.CreateListing(listing)
	if err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to create listing for user %d: %w", userID, err)
	}
	return created, nil
}

// GetActiveListings returns every listing still open for bidding
func (s *AuctionService) GetActiveListings() ([]models.Listing, error) {
	listings, err := s.repo.GetActiveListings()
	if err != nil {
		return nil, fmt.Errorf("service: failed to get active listings: %w", err)
	}
	return listings, nil
}

// GetListingDetail returns a listing with its bids and comments
func (s *AuctionService) GetListingDetail(listingID int64) (models.Listing, []models.Bid, []models.Comment, error) {
	listing, err := s.repo.GetListingByID(listingID)
	if err != nil {
		return models.Listing{}, nil, nil, fmt.Errorf("service: failed to get listing %d: %w", listingID, err)
	}
	bids, err := s.repo.GetBidsByListing(listingID)
	if err != nil {
		return models.Listing{}, nil, nil, fmt.Errorf("service: failed to get bids for listing %d: %w", listingID, err)
	}
	comments, err := s.repo.GetCommentsByListing(listingID)
	if err != nil {
		return models.Listing{}, nil, nil, fmt.Errorf("service: failed to get comments for listing %d: %w", listingID, err)
	}
	return listing, bids, comments, nil
}

// ListCategories returns the distinct categories across all listings
func (s *AuctionService) ListCategories() ([]string, error) {
	categories, err := s.repo.ListCategories()
	if err != nil {
		return nil, fmt.Errorf("service: failed to list categories: %w", err)
	}
	return categories, nil
}

// GetListingsByCategory returns the active listings in an exact category
func (s *AuctionService) GetListingsByCategory(category string) ([]models.Listing, error) {
	if category == "" {
		return nil, fmt.Errorf("service: %w - empty category", auctionerrors.ErrValidation)
	}
	listings, err := s.repo.GetListingsByCategory(category)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get listings in category %s: %w", category, err)
	}
	return listings, nil
}

// GetWatchedListings resolves watchlist ids to listings, skipping stale ids
func (s *AuctionService) GetWatchedListings(ids []int64) ([]models.Listing, error) {
	listings, err := s.repo.GetListingsByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("service: failed to resolve watched listings: %w", err)
	}
	return listings, nil
}

// PlaceBid validates and records a user's bid on a listing. The
// price-comparison rules run inside the repository transaction; this layer
// only rejects inputs that can never be valid.
func (s *AuctionService) PlaceBid(listingID, userID int64, amount float64) (models.Bid, error) {
	if listingID <= 0 || userID <= 0 {
		return models.Bid{}, fmt.Errorf("service: %w - missing listing or user id", auctionerrors.ErrInvalidBid)
	}
	if amount <= 0 {
		return models.Bid{}, fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidBid)
	}

	bid, err := s.repo.RecordBidForListing(models.Bid{
		ListingID: listingID,
		UserID:    userID,
		Amount:    amount,
	})
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to record bid on listing %d by user %d: %w", listingID, userID, err)
	}
	return bid, nil
}

// CloseListing ends an auction on behalf of userID. Only the listing owner
// may close, and a listing without bids cannot be closed.
func (s *AuctionService) CloseListing(listingID, userID int64) (models.Listing, error) {
	listing, err := s.repo.GetListingByID(listingID)
	if err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to close listing %d: %w", listingID, err)
	}
	if listing.UserID != userID {
		return models.Listing{}, fmt.Errorf("service: user %d closing listing %d: %w", userID, listingID, auctionerrors.ErrNotOwner)
	}

	closed, err := s.repo.CloseListing(listingID)
	if err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to close listing %d: %w", listingID, err)
	}
	return closed, nil
}

// AddComment appends a comment by userID to an existing listing
func (s *AuctionService) AddComment(listingID, userID int64, content string) (models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return models.Comment{}, fmt.Errorf("service: %w - empty comment content", auctionerrors.ErrValidation)
	}

	if _, err := s.repo.GetListingByID(listingID); err != nil {
		return models.Comment{}, fmt.Errorf("service: failed to comment on listing %d: %w", listingID, err)
	}

	comment, err := s.repo.CreateComment(models.Comment{
		ListingID: listingID,
		UserID:    userID,
		Content:   content,
	})
	if err != nil {
		return models.Comment{}, fmt.Errorf("service: failed to comment on listing %d: %w", listingID, err)
	}
	return comment, nil
}

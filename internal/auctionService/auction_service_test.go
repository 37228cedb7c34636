package auction

import (
	"errors"
	"strings"
	"testing"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
	"auction-house/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

// Tests PlaceBid
func TestAuctionService_PlaceBid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionDB(ctrl)
	service := NewAuctionService(mockRepo)

	// Table-driven test cases
	tests := []struct {
		name          string
		listingID     int64
		userID        int64
		amount        float64
		mockSetup     func()
		expectedError error
	}{
		{
			name:      "valid_bid",
			listingID: 1,
			userID:    2,
			amount:    150,
			mockSetup: func() {
				mockRepo.EXPECT().
					RecordBidForListing(model.Bid{ListingID: 1, UserID: 2, Amount: 150}).
					Return(model.Bid{BidID: 7, ListingID: 1, UserID: 2, Amount: 150}, nil)
			},
			expectedError: nil,
		},
		{
			name:          "missing_listing_id",
			listingID:     0,
			userID:        2,
			amount:        150,
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrInvalidBid,
		},
		{
			name:          "missing_user_id",
			listingID:     1,
			userID:        0,
			amount:        150,
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrInvalidBid,
		},
		{
			name:          "zero_amount",
			listingID:     1,
			userID:        2,
			amount:        0,
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrInvalidBid,
		},
		{
			name:          "negative_amount",
			listingID:     1,
			userID:        2,
			amount:        -50,
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrInvalidBid,
		},
		{
			name:      "bid_too_low",
			listingID: 1,
			userID:    2,
			amount:    80,
			mockSetup: func() {
				mockRepo.EXPECT().
					RecordBidForListing(gomock.Any()).
					Return(model.Bid{}, auctionerrors.ErrBidTooLow)
			},
			expectedError: auctionerrors.ErrBidTooLow,
		},
		{
			name:      "unknown_listing",
			listingID: 99,
			userID:    2,
			amount:    80,
			mockSetup: func() {
				mockRepo.EXPECT().
					RecordBidForListing(gomock.Any()).
					Return(model.Bid{}, auctionerrors.ErrListingNotFound)
			},
			expectedError: auctionerrors.ErrListingNotFound,
		},
		{
			name:      "closed_listing",
			listingID: 1,
			userID:    2,
			amount:    200,
			mockSetup: func() {
				mockRepo.EXPECT().
					RecordBidForListing(gomock.Any()).
					Return(model.Bid{}, auctionerrors.ErrListingClosed)
			},
			expectedError: auctionerrors.ErrListingClosed,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			bid, err := service.PlaceBid(tc.listingID, tc.userID, tc.amount)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.expectedError), "expected error: %v, got: %v", tc.expectedError, err)
			} else {
				require.NoError(t, err)
				require.Equal(t, tc.listingID, bid.ListingID)
				require.Equal(t, tc.userID, bid.UserID)
				require.Equal(t, tc.amount, bid.Amount)
			}
		})
	}
}

// Tests CreateListing
func TestAuctionService_CreateListing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionDB(ctrl)
	service := NewAuctionService(mockRepo)

	longTitle := strings.Repeat("x", 65)

	tests := []struct {
		name          string
		title         string
		description   string
		startingBid   float64
		mockSetup     func()
		expectedError error
	}{
		{
			name:        "valid_listing",
			title:       "vintage clock",
			description: "keeps perfect time",
			startingBid: 100,
			mockSetup: func() {
				mockRepo.EXPECT().
					CreateListing(gomock.Any()).
					Return(model.Listing{ListingID: 1, Title: "vintage clock", CurrentPrice: 100, UserID: 5, Active: true}, nil)
			},
			expectedError: nil,
		},
		{
			name:          "empty_title",
			title:         "   ",
			description:   "desc",
			startingBid:   100,
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrValidation,
		},
		{
			name:          "title_too_long",
			title:         longTitle,
			description:   "desc",
			startingBid:   100,
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrValidation,
		},
		{
			name:          "empty_description",
			title:         "vintage clock",
			description:   "",
			startingBid:   100,
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrValidation,
		},
		{
			name:          "non_positive_starting_bid",
			title:         "vintage clock",
			description:   "desc",
			startingBid:   0,
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrValidation,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			listing, err := service.CreateListing(5, tc.title, tc.description, tc.startingBid, "", "")

			if tc.expectedError != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.expectedError), "expected error: %v, got: %v", tc.expectedError, err)
			} else {
				require.NoError(t, err)
				require.True(t, listing.Active)
				require.Equal(t, tc.startingBid, listing.CurrentPrice)
			}
		})
	}
}

// Tests CloseListing
func TestAuctionService_CloseListing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionDB(ctrl)
	service := NewAuctionService(mockRepo)

	winnerID := int64(9)

	tests := []struct {
		name          string
		listingID     int64
		userID        int64
		mockSetup     func()
		expectedError error
	}{
		{
			name:      "owner_closes_with_bids",
			listingID: 1,
			userID:    5,
			mockSetup: func() {
				mockRepo.EXPECT().GetListingByID(int64(1)).Return(model.Listing{ListingID: 1, UserID: 5, Active: true}, nil)
				mockRepo.EXPECT().CloseListing(int64(1)).Return(model.Listing{ListingID: 1, UserID: 5, Active: false, WinnerID: &winnerID}, nil)
			},
			expectedError: nil,
		},
		{
			name:      "non_owner_rejected",
			listingID: 1,
			userID:    6,
			mockSetup: func() {
				mockRepo.EXPECT().GetListingByID(int64(1)).Return(model.Listing{ListingID: 1, UserID: 5, Active: true}, nil)
			},
			expectedError: auctionerrors.ErrNotOwner,
		},
		{
			name:      "unknown_listing",
			listingID: 99,
			userID:    5,
			mockSetup: func() {
				mockRepo.EXPECT().GetListingByID(int64(99)).Return(model.Listing{}, auctionerrors.ErrListingNotFound)
			},
			expectedError: auctionerrors.ErrListingNotFound,
		},
		{
			name:      "no_bids",
			listingID: 1,
			userID:    5,
			mockSetup: func() {
				mockRepo.EXPECT().GetListingByID(int64(1)).Return(model.Listing{ListingID: 1, UserID: 5, Active: true}, nil)
				mockRepo.EXPECT().CloseListing(int64(1)).Return(model.Listing{}, auctionerrors.ErrCannotClose)
			},
			expectedError: auctionerrors.ErrCannotClose,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			listing, err := service.CloseListing(tc.listingID, tc.userID)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.expectedError), "expected error: %v, got: %v", tc.expectedError, err)
			} else {
				require.NoError(t, err)
				require.False(t, listing.Active)
				require.NotNil(t, listing.WinnerID)
				require.Equal(t, winnerID, *listing.WinnerID)
			}
		})
	}
}

// Tests AddComment
func TestAuctionService_AddComment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionDB(ctrl)
	service := NewAuctionService(mockRepo)

	tests := []struct {
		name          string
		content       string
		mockSetup     func()
		expectedError error
	}{
		{
			name:    "valid_comment",
			content: "is it authentic?",
			mockSetup: func() {
				mockRepo.EXPECT().GetListingByID(int64(1)).Return(model.Listing{ListingID: 1, Active: true}, nil)
				mockRepo.EXPECT().
					CreateComment(model.Comment{ListingID: 1, UserID: 2, Content: "is it authentic?"}).
					Return(model.Comment{CommentID: 3, ListingID: 1, UserID: 2, Content: "is it authentic?"}, nil)
			},
			expectedError: nil,
		},
		{
			name:          "empty_content",
			content:       "   ",
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrValidation,
		},
		{
			name:    "unknown_listing",
			content: "hello",
			mockSetup: func() {
				mockRepo.EXPECT().GetListingByID(int64(1)).Return(model.Listing{}, auctionerrors.ErrListingNotFound)
			},
			expectedError: auctionerrors.ErrListingNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			comment, err := service.AddComment(1, 2, tc.content)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.expectedError), "expected error: %v, got: %v", tc.expectedError, err)
			} else {
				require.NoError(t, err)
				require.Equal(t, tc.content, comment.Content)
			}
		})
	}
}

// Tests GetListingDetail
func TestAuctionService_GetListingDetail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionDB(ctrl)
	service := NewAuctionService(mockRepo)

	mockRepo.EXPECT().GetListingByID(int64(1)).Return(model.Listing{ListingID: 1, Title: "vintage clock", Active: true}, nil)
	mockRepo.EXPECT().GetBidsByListing(int64(1)).Return([]model.Bid{{BidID: 1, Amount: 150}}, nil)
	mockRepo.EXPECT().GetCommentsByListing(int64(1)).Return([]model.Comment{{CommentID: 1, Content: "nice"}}, nil)

	listing, bids, comments, err := service.GetListingDetail(1)
	require.NoError(t, err)
	require.Equal(t, "vintage clock", listing.Title)
	require.Len(t, bids, 1)
	require.Len(t, comments, 1)
}

// Tests category queries
func TestAuctionService_Categories(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionDB(ctrl)
	service := NewAuctionService(mockRepo)

	mockRepo.EXPECT().ListCategories().Return([]string{"antiques", "art"}, nil)
	categories, err := service.ListCategories()
	require.NoError(t, err)
	require.Equal(t, []string{"antiques", "art"}, categories)

	mockRepo.EXPECT().GetListingsByCategory("art").Return([]model.Listing{{ListingID: 2, Category: "art"}}, nil)
	listings, err := service.GetListingsByCategory("art")
	require.NoError(t, err)
	require.Len(t, listings, 1)

	_, err = service.GetListingsByCategory("")
	require.ErrorIs(t, err, auctionerrors.ErrValidation)
}

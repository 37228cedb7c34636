package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrListingNotFound = errors.New("listing not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrNoBids          = errors.New("no bids found for listing")
	ErrUsernameTaken   = errors.New("username already taken")
)

// business logic errors
var (
	ErrInvalidBid         = errors.New("invalid bid")
	ErrBidTooLow          = errors.New("bid amount too low")
	ErrListingClosed      = errors.New("listing is closed")
	ErrCannotClose        = errors.New("cannot close listing without bids")
	ErrNotOwner           = errors.New("only the listing owner may close it")
	ErrValidation         = errors.New("invalid input")
	ErrPasswordMismatch   = errors.New("passwords must match")
	ErrInvalidCredentials = errors.New("invalid username and/or password")
)

// session and access errors
var (
	ErrAuthRequired    = errors.New("authentication required")
	ErrSessionNotFound = errors.New("session not found")
	ErrNotWatched      = errors.New("listing not in watchlist")
)

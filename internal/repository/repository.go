package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"

	"github.com/mattn/go-sqlite3"
)

// AuctionDB defines the persistence interface for the auction house.
// Queries are explicit per-entity methods rather than a generic builder.
type AuctionDB interface {
	CreateUser(user model.User) (model.User, error)
	GetUserByUsername(username string) (model.User, error)
	GetUserByID(id int64) (model.User, error)

	CreateListing(listing model.Listing) (model.Listing, error)
	GetListingByID(id int64) (model.Listing, error)
	GetActiveListings() ([]model.Listing, error)
	GetListingsByCategory(category string) ([]model.Listing, error)
	GetListingsByIDs(ids []int64) ([]model.Listing, error)
	ListCategories() ([]string, error)

	RecordBidForListing(bid model.Bid) (model.Bid, error)
	GetBidsByListing(listingID int64) ([]model.Bid, error)
	GetWinningBid(listingID int64) (model.Bid, error)

	CloseListing(listingID int64) (model.Listing, error)

	CreateComment(comment model.Comment) (model.Comment, error)
	GetCommentsByListing(listingID int64) ([]model.Comment, error)
}

// starting_bid doubles as the current highest accepted bid once bids exist.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS listings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	starting_bid REAL NOT NULL,
	image_url TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	user_id INTEGER NOT NULL REFERENCES users(id),
	active INTEGER NOT NULL DEFAULT 1,
	winner INTEGER,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS bids (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	listing_id INTEGER NOT NULL REFERENCES listings(id),
	user_id INTEGER NOT NULL REFERENCES users(id),
	amount REAL NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS comments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	listing_id INTEGER NOT NULL REFERENCES listings(id),
	user_id INTEGER NOT NULL REFERENCES users(id),
	content TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

// SQLRepo is a SQLite-backed implementation of AuctionDB
type SQLRepo struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path and prepares the
// schema. The connection pool is capped at one connection so every
// transaction is fully serialized: under concurrent bidders at most one
// bid per listing can pass validation against any given prior maximum.
func Open(path string) (*SQLRepo, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLRepo{db: db}, nil
}

// Close releases the underlying database handle
func (r *SQLRepo) Close() error {
	return r.db.Close()
}

// CreateUser inserts a new user, failing with ErrUsernameTaken on duplicates
func (r *SQLRepo) CreateUser(user model.User) (model.User, error) {
	now := time.Now().UTC()
	res, err := r.db.Exec(
		`INSERT INTO users (username, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		user.Username, user.Email, user.PasswordHash, now, now,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return model.User{}, fmt.Errorf("create user %s: %w", user.Username, auctionerrors.ErrUsernameTaken)
		}
		return model.User{}, fmt.Errorf("create user %s: %w", user.Username, err)
	}
	user.UserID, _ = res.LastInsertId()
	user.CreatedAt, user.UpdatedAt = now, now
	return user, nil
}

// GetUserByUsername looks a user up by their unique username
func (r *SQLRepo) GetUserByUsername(username string) (model.User, error) {
	row := r.db.QueryRow(
		`SELECT id, username, email, password_hash, created_at, updated_at FROM users WHERE username = ?`,
		username,
	)
	return scanUser(row, username)
}

// GetUserByID looks a user up by id
func (r *SQLRepo) GetUserByID(id int64) (model.User, error) {
	row := r.db.QueryRow(
		`SELECT id, username, email, password_hash, created_at, updated_at FROM users WHERE id = ?`,
		id,
	)
	return scanUser(row, fmt.Sprintf("id %d", id))
}

func scanUser(row *sql.Row, ref any) (model.User, error) {
	var u model.User
	err := row.Scan(&u.UserID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, fmt.Errorf("get user %v: %w", ref, auctionerrors.ErrUserNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("get user %v: %w", ref, err)
	}
	return u, nil
}

// CreateListing persists a new listing as active with no winner
func (r *SQLRepo) CreateListing(listing model.Listing) (model.Listing, error) {
	now := time.Now().UTC()
	res, err := r.db.Exec(
		`INSERT INTO listings (title, description, starting_bid, image_url, category, user_id, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		listing.Title, listing.Description, listing.CurrentPrice, listing.ImageURL, listing.Category, listing.UserID, now, now,
	)
	if err != nil {
		return model.Listing{}, fmt.Errorf("create listing %q: %w", listing.Title, err)
	}
	listing.ListingID, _ = res.LastInsertId()
	listing.Active = true
	listing.WinnerID = nil
	listing.CreatedAt, listing.UpdatedAt = now, now
	return listing, nil
}

const listingColumns = `id, title, description, starting_bid, image_url, category, user_id, active, winner, created_at, updated_at`

func scanListing(scan func(dest ...any) error) (model.Listing, error) {
	var l model.Listing
	var winner sql.NullInt64
	err := scan(&l.ListingID, &l.Title, &l.Description, &l.CurrentPrice, &l.ImageURL,
		&l.Category, &l.UserID, &l.Active, &winner, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return model.Listing{}, err
	}
	if winner.Valid {
		l.WinnerID = &winner.Int64
	}
	return l, nil
}

// GetListingByID returns a single listing regardless of its active state
func (r *SQLRepo) GetListingByID(id int64) (model.Listing, error) {
	row := r.db.QueryRow(`SELECT `+listingColumns+` FROM listings WHERE id = ?`, id)
	l, err := scanListing(row.Scan)
	if err == sql.ErrNoRows {
		return model.Listing{}, fmt.Errorf("get listing %d: %w", id, auctionerrors.ErrListingNotFound)
	}
	if err != nil {
		return model.Listing{}, fmt.Errorf("get listing %d: %w", id, err)
	}
	return l, nil
}

// GetActiveListings returns all open listings in insertion order
func (r *SQLRepo) GetActiveListings() ([]model.Listing, error) {
	return r.queryListings(`SELECT `+listingColumns+` FROM listings WHERE active = 1 ORDER BY id`)
}

// GetListingsByCategory returns open listings with an exact category match
func (r *SQLRepo) GetListingsByCategory(category string) ([]model.Listing, error) {
	return r.queryListings(
		`SELECT `+listingColumns+` FROM listings WHERE active = 1 AND category = ? ORDER BY id`,
		category,
	)
}

func (r *SQLRepo) queryListings(query string, args ...any) ([]model.Listing, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()

	listings := []model.Listing{}
	for rows.Next() {
		l, err := scanListing(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// GetListingsByIDs resolves ids to listings, preserving input order and
// silently skipping ids that no longer resolve.
func (r *SQLRepo) GetListingsByIDs(ids []int64) ([]model.Listing, error) {
	listings := make([]model.Listing, 0, len(ids))
	for _, id := range ids {
		l, err := r.GetListingByID(id)
		if err != nil {
			if errors.Is(err, auctionerrors.ErrListingNotFound) {
				continue
			}
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, nil
}

// ListCategories returns the distinct non-empty categories across all
// listings, active or not.
func (r *SQLRepo) ListCategories() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT category FROM listings WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// RecordBidForListing validates and records a bid in one transaction: the
// listing must exist and be active, the amount must be at least the current
// price and strictly above every prior bid. On success the listing's current
// price becomes the bid amount. The single-connection pool guarantees no two
// bids are validated against the same stale maximum.
func (r *SQLRepo) RecordBidForListing(bid model.Bid) (model.Bid, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return model.Bid{}, fmt.Errorf("record bid for listing %d: %w", bid.ListingID, err)
	}
	defer tx.Rollback()

	var price float64
	var active bool
	err = tx.QueryRow(`SELECT starting_bid, active FROM listings WHERE id = ?`, bid.ListingID).Scan(&price, &active)
	if err == sql.ErrNoRows {
		return model.Bid{}, fmt.Errorf("record bid for listing %d: %w", bid.ListingID, auctionerrors.ErrListingNotFound)
	}
	if err != nil {
		return model.Bid{}, fmt.Errorf("record bid for listing %d: %w", bid.ListingID, err)
	}
	if !active {
		return model.Bid{}, fmt.Errorf("record bid for listing %d: %w", bid.ListingID, auctionerrors.ErrListingClosed)
	}

	var priorBids int64
	var maxBid float64
	err = tx.QueryRow(`SELECT COUNT(*), COALESCE(MAX(amount), 0) FROM bids WHERE listing_id = ?`, bid.ListingID).Scan(&priorBids, &maxBid)
	if err != nil {
		return model.Bid{}, fmt.Errorf("record bid for listing %d: %w", bid.ListingID, err)
	}
	if bid.Amount < price || (priorBids > 0 && bid.Amount <= maxBid) {
		return model.Bid{}, fmt.Errorf("record bid for listing %d: %w - current price is %.2f", bid.ListingID, auctionerrors.ErrBidTooLow, price)
	}

	now := time.Now().UTC()
	res, err := tx.Exec(
		`INSERT INTO bids (listing_id, user_id, amount, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		bid.ListingID, bid.UserID, bid.Amount, now, now,
	)
	if err != nil {
		return model.Bid{}, fmt.Errorf("record bid for listing %d: %w", bid.ListingID, err)
	}
	if _, err := tx.Exec(`UPDATE listings SET starting_bid = ?, updated_at = ? WHERE id = ?`, bid.Amount, now, bid.ListingID); err != nil {
		return model.Bid{}, fmt.Errorf("record bid for listing %d: %w", bid.ListingID, err)
	}
	if err := tx.Commit(); err != nil {
		return model.Bid{}, fmt.Errorf("record bid for listing %d: %w", bid.ListingID, err)
	}

	bid.BidID, _ = res.LastInsertId()
	bid.CreatedAt, bid.UpdatedAt = now, now
	return bid, nil
}

// GetBidsByListing returns all bids on a listing, oldest first
func (r *SQLRepo) GetBidsByListing(listingID int64) ([]model.Bid, error) {
	rows, err := r.db.Query(
		`SELECT id, listing_id, user_id, amount, created_at, updated_at FROM bids WHERE listing_id = ? ORDER BY id`,
		listingID,
	)
	if err != nil {
		return nil, fmt.Errorf("get bids for listing %d: %w", listingID, err)
	}
	defer rows.Close()

	bids := []model.Bid{}
	for rows.Next() {
		var b model.Bid
		if err := rows.Scan(&b.BidID, &b.ListingID, &b.UserID, &b.Amount, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bid: %w", err)
		}
		bids = append(bids, b)
	}
	return bids, rows.Err()
}

// GetWinningBid returns the highest bid for a listing, earliest on ties
func (r *SQLRepo) GetWinningBid(listingID int64) (model.Bid, error) {
	row := r.db.QueryRow(
		`SELECT id, listing_id, user_id, amount, created_at, updated_at FROM bids
		 WHERE listing_id = ? ORDER BY amount DESC, id ASC LIMIT 1`,
		listingID,
	)
	var b model.Bid
	err := row.Scan(&b.BidID, &b.ListingID, &b.UserID, &b.Amount, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Bid{}, fmt.Errorf("get winning bid for listing %d: %w", listingID, auctionerrors.ErrNoBids)
	}
	if err != nil {
		return model.Bid{}, fmt.Errorf("get winning bid for listing %d: %w", listingID, err)
	}
	return b, nil
}

// CloseListing ends an auction in one transaction: the listing must still be
// active and have at least one bid; the highest bidder becomes the winner
// and active/winner are written exactly once.
func (r *SQLRepo) CloseListing(listingID int64) (model.Listing, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return model.Listing{}, fmt.Errorf("close listing %d: %w", listingID, err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`SELECT `+listingColumns+` FROM listings WHERE id = ?`, listingID)
	l, err := scanListing(row.Scan)
	if err == sql.ErrNoRows {
		return model.Listing{}, fmt.Errorf("close listing %d: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	if err != nil {
		return model.Listing{}, fmt.Errorf("close listing %d: %w", listingID, err)
	}
	if !l.Active {
		return model.Listing{}, fmt.Errorf("close listing %d: %w", listingID, auctionerrors.ErrListingClosed)
	}

	var winnerID int64
	err = tx.QueryRow(
		`SELECT user_id FROM bids WHERE listing_id = ? ORDER BY amount DESC, id ASC LIMIT 1`,
		listingID,
	).Scan(&winnerID)
	if err == sql.ErrNoRows {
		return model.Listing{}, fmt.Errorf("close listing %d: %w", listingID, auctionerrors.ErrCannotClose)
	}
	if err != nil {
		return model.Listing{}, fmt.Errorf("close listing %d: %w", listingID, err)
	}

	now := time.Now().UTC()
	if _, err := tx.Exec(`UPDATE listings SET active = 0, winner = ?, updated_at = ? WHERE id = ?`, winnerID, now, listingID); err != nil {
		return model.Listing{}, fmt.Errorf("close listing %d: %w", listingID, err)
	}
	if err := tx.Commit(); err != nil {
		return model.Listing{}, fmt.Errorf("close listing %d: %w", listingID, err)
	}

	l.Active = false
	l.WinnerID = &winnerID
	l.UpdatedAt = now
	return l, nil
}

// CreateComment appends a comment to a listing
func (r *SQLRepo) CreateComment(comment model.Comment) (model.Comment, error) {
	now := time.Now().UTC()
	res, err := r.db.Exec(
		`INSERT INTO comments (listing_id, user_id, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		comment.ListingID, comment.UserID, comment.Content, now, now,
	)
	if err != nil {
		return model.Comment{}, fmt.Errorf("create comment on listing %d: %w", comment.ListingID, err)
	}
	comment.CommentID, _ = res.LastInsertId()
	comment.CreatedAt, comment.UpdatedAt = now, now
	return comment, nil
}

// GetCommentsByListing returns all comments on a listing, oldest first
func (r *SQLRepo) GetCommentsByListing(listingID int64) ([]model.Comment, error) {
	rows, err := r.db.Query(
		`SELECT id, listing_id, user_id, content, created_at, updated_at FROM comments WHERE listing_id = ? ORDER BY id`,
		listingID,
	)
	if err != nil {
		return nil, fmt.Errorf("get comments for listing %d: %w", listingID, err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.CommentID, &c.ListingID, &c.UserID, &c.Content, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

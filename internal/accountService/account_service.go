package account

import (
	"errors"
	"fmt"
	"strings"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AccountService defines registration and credential checking
type AccountService struct {
	repo repository.AuctionDB
}

// NewAccountService creates a new AccountService instance
func NewAccountService(repo repository.AuctionDB) *AccountService {
	return &AccountService{
		repo: repo,
	}
}

// Register creates a new account. The password must match its confirmation
// and the username must not already be taken.
func (s *AccountService) Register(username, email, password, confirmation string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, fmt.Errorf("service: %w - username and password required", auctionerrors.ErrValidation)
	}
	if password != confirmation {
		return models.User{}, fmt.Errorf("service: register %s: %w", username, auctionerrors.ErrPasswordMismatch)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("service: failed to hash password for %s: %w", username, err)
	}

	user, err := s.repo.CreateUser(models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return models.User{}, fmt.Errorf("service: failed to register %s: %w", username, err)
	}
	return user, nil
}

// Authenticate checks a username/password pair. Unknown usernames and wrong
// passwords are indistinguishable to the caller.
func (s *AccountService) Authenticate(username, password string) (models.User, error) {
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrUserNotFound) {
			return models.User{}, fmt.Errorf("service: authenticate %s: %w", username, auctionerrors.ErrInvalidCredentials)
		}
		return models.User{}, fmt.Errorf("service: failed to authenticate %s: %w", username, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("service: authenticate %s: %w", username, auctionerrors.ErrInvalidCredentials)
	}
	return user, nil
}

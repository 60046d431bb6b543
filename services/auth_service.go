package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/acai-pdv/models"
	"github.com/yeremiapane/acai-pdv/utils"
	"golang.org/x/crypto/bcrypt"
)

// AuthService checks operator credentials against the known accounts and
// the store's shared password.
type AuthService struct {
	accounts     map[string]models.User
	passwordHash []byte
	delay        time.Duration
}

// NewAuthService hashes sharedPassword once; Authenticate only compares.
func NewAuthService(accounts []models.User, sharedPassword string, delay time.Duration) (*AuthService, error) {
	if sharedPassword == "" {
		return nil, errors.New("shared password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(sharedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	byEmail := make(map[string]models.User, len(accounts))
	for _, u := range accounts {
		byEmail[normalizeEmail(u.Email)] = u
	}
	return &AuthService{accounts: byEmail, passwordHash: hash, delay: delay}, nil
}

// Authenticate returns ErrInvalidCredentials for an unknown email and for a
// wrong password alike.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return models.User{}, ctx.Err()
		case <-timer.C:
		}
	}

	user, ok := s.accounts[normalizeEmail(email)]
	if !ok {
		utils.InfoLogger.WithField("email", email).Warn("login attempt for unknown account")
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		utils.InfoLogger.WithFields(logrus.Fields{
			"email":   email,
			"user_id": user.ID,
		}).Warn("login attempt with wrong password")
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// FindUser looks an account up by id.
func (s *AuthService) FindUser(id string) (models.User, bool) {
	for _, u := range s.accounts {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

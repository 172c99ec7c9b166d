// Package services holds the business rules of the API. Each service
// declares the store interfaces it needs and returns apperr-classified
// failures.
package services

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/pizzeria/app/apperr"
	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/pkg/auth"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/metrics"
)

const (
	msgEmailIncorrect     = "Email incorrect"
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "User/password incorrect"
	msgPasswordTooLong    = "Password must be at most 72 bytes"
)

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

type TokenIssuer interface {
	Issue(subject, name, email string) (string, error)
}

// Session is the result of a successful login.
type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

type UserService struct {
	users  UserStore
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewUserService(users UserStore, hasher PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{users: users, hasher: hasher, tokens: tokens}
}

// Register creates an account. The password is stored as a bcrypt hash and
// never returned.
func (s *UserService) Register(ctx context.Context, name, email, password string) (models.PublicUser, error) {
	if email == "" {
		return models.PublicUser{}, apperr.New(apperr.InvalidInput, msgEmailIncorrect)
	}

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return models.PublicUser{}, apperr.New(apperr.AlreadyExists, msgUserExists)
	case !errors.Is(err, apperr.NotFound):
		return models.PublicUser{}, err
	}

	hash, err := s.hasher.Hash(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return models.PublicUser{}, apperr.Wrap(apperr.InvalidInput, err, msgPasswordTooLong)
	}
	if err != nil {
		return models.PublicUser{}, apperr.Wrap(apperr.Upstream, err, "")
	}

	user := &models.User{Name: name, Email: email, Password: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return models.PublicUser{}, err
	}

	logger.WithCtx(ctx).Info("user registered", "user_id", user.ID)
	return user.Public(), nil
}

// Authenticate checks the credentials and issues a signed token. Unknown
// email and wrong password fail identically.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (Session, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, apperr.NotFound) {
		return Session{}, s.rejectLogin(ctx, "unknown email")
	}
	if err != nil {
		return Session{}, err
	}

	if err := s.hasher.Compare(user.Password, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return Session{}, s.rejectLogin(ctx, "password mismatch")
		}
		return Session{}, apperr.Wrap(apperr.Upstream, err, "")
	}

	token, err := s.tokens.Issue(user.ID, user.Name, user.Email)
	if err != nil {
		return Session{}, apperr.Wrap(apperr.Upstream, err, "")
	}

	return Session{ID: user.ID, Name: user.Name, Email: user.Email, Token: token}, nil
}

func (s *UserService) rejectLogin(ctx context.Context, reason string) error {
	metrics.AuthFailures.WithLabelValues("session").Inc()
	logger.WithCtx(ctx).Debug("login rejected", "reason", reason)
	return apperr.New(apperr.InvalidCredentials, msgInvalidCredentials)
}

// Detail returns the public view of the user with the given id.
func (s *UserService) Detail(ctx context.Context, userID string) (models.PublicUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return models.PublicUser{}, err
	}
	return user.Public(), nil
}

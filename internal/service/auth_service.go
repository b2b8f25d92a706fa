package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Eursukkul/session-booking/internal/models"
	"github.com/Eursukkul/session-booking/internal/repository"
	"github.com/Eursukkul/session-booking/pkg/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	EnsureAdmin(ctx context.Context, email, password string) error
}

type authService struct {
	userRepo repository.UserRepository
	issuer   *auth.TokenIssuer
	cost     int
	log      *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, issuer *auth.TokenIssuer, log *zap.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		issuer:   issuer,
		cost:     bcrypt.DefaultCost,
		log:      log,
	}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" {
		return nil, "", fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !isEmail(email) {
		return nil, "", fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	user, err := s.createUser(ctx, name, email, password, models.RoleClient)
	if err != nil {
		return nil, "", err
	}
	token, err := s.issue(user)
	if err != nil {
		return nil, "", err
	}
	s.log.Info("user registered", zap.String("user_id", user.ID))
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", storageErr("find user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storageErr("find user", err)
	}
	return user, nil
}

// EnsureAdmin makes sure an admin account exists for email. An existing user
// is promoted; the stored password is left untouched.
func (s *authService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	user, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if user.Role == models.RoleAdmin {
			return nil
		}
		if err := s.userRepo.UpdateRole(ctx, user.ID, models.RoleAdmin); err != nil {
			return storageErr("promote admin", err)
		}
		s.log.Info("promoted user to admin", zap.String("email", email))
		return nil
	case !errors.Is(err, repository.ErrNotFound):
		return storageErr("find admin", err)
	}

	if password == "" {
		return fmt.Errorf("%w: admin password is required", ErrValidation)
	}
	if _, err := s.createUser(ctx, "Administrator", email, password, models.RoleAdmin); err != nil {
		return err
	}
	s.log.Info("seeded admin user", zap.String("email", email))
	return nil
}

func (s *authService) createUser(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, storageErr("create user", err)
	}
	return user, nil
}

func (s *authService) issue(user *models.User) (string, error) {
	return s.issuer.Issue(auth.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package services

import (
	"context"
	"errors"

	"dine-on-time-api/models"
	"dine-on-time-api/store"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	store  *store.Store
	tokens TokenIssuer
	logger *log.Entry
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     models.UserRole
}

// Register creates an account and returns it with a fresh token. An empty
// role registers a customer.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	if in.Role == "" {
		in.Role = models.RoleCustomer
	}
	if !in.Role.Valid() {
		return nil, "", invalidInput("Invalid role. Must be: customer or restaurant-owner")
	}
	email := normalizeEmail(in.Email)

	_, err := s.store.Users.FindByEmail(ctx, email)
	if err == nil {
		return nil, "", conflict("Email already registered")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, "", storeFailure(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", &Error{Kind: ErrInvalidInput, Message: "Failed to hash password", Err: err}
	}

	user := models.User{
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
	}
	if err := s.store.Users.Create(ctx, &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, "", conflict("Email already registered")
		}
		return nil, "", storeFailure(err)
	}

	token, err := s.tokens.GenerateToken(&user)
	if err != nil {
		return nil, "", upstream("Failed to generate token", err)
	}
	s.logger.WithFields(log.Fields{"user_id": user.ID, "role": user.Role}).Info("user registered")
	return &user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.store.Users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, "", unauthorized("Invalid email or password")
	}
	if err != nil {
		return nil, "", storeFailure(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", unauthorized("Invalid email or password")
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, "", upstream("Failed to generate token", err)
	}
	return user, token, nil
}

func (s *AuthService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.store.Users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("User not found")
	}
	if err != nil {
		return nil, storeFailure(err)
	}
	return user, nil
}

// ListUsers returns all accounts. Password hashes never leave the model.
func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.store.Users.List(ctx)
	if err != nil {
		return nil, storeFailure(err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

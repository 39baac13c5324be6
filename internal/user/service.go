package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mechoci-be/internal/logger"

	"go.uber.org/zap"
)

// ValidationError reports a rejected profile field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type Service interface {
	Register(ctx context.Context, name, email, password string) (string, User, error)
	Login(ctx context.Context, email, password string) (string, User, error)
	Profile(ctx context.Context, userID string) (User, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, name, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx)

	email = strings.ToLower(strings.TrimSpace(email))

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	u, err := s.repo.Create(ctx, name, email, hashed)
	if err != nil {
		if !errors.Is(err, ErrEmailExists) {
			log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		}
		return "", User{}, err
	}

	token, err := GenerateJWT(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.ID), zap.Error(err))
		return "", User{}, err
	}

	log.Info("register service completed",
		zap.String("user_id", u.ID),
		zap.String("email", email),
	)

	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx)

	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		log.Debug("login: email not found", zap.String("email", email))
		return "", User{}, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Debug("login: password mismatch", zap.String("email", email))
		return "", User{}, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return "", User{}, err
	}

	return token, u, nil
}

func (s *service) Profile(ctx context.Context, userID string) (User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (User, error) {
	for _, a := range input.Addresses {
		if a.Latitude < -90 || a.Latitude > 90 {
			return User{}, &ValidationError{Field: "deliveryAddresses.latitude", Message: "must be between -90 and 90"}
		}
		if a.Longitude < -180 || a.Longitude > 180 {
			return User{}, &ValidationError{Field: "deliveryAddresses.longitude", Message: "must be between -180 and 180"}
		}
	}

	return s.repo.UpdateProfile(ctx, userID, input)
}

package category

import (
	"context"
	"errors"
	"strings"

	"mechoci-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	SeedDefaults(ctx context.Context) error
	List(ctx context.Context, includeInactive bool) ([]Category, error)
	Get(ctx context.Context, id string) (*Category, error)
	Create(ctx context.Context, c Category) (*Category, error)
	Update(ctx context.Context, id string, input UpdateInput) (*Category, error)
	SetActive(ctx context.Context, id string, active bool) (*Category, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// SeedDefaults inserts the default category set when the table is empty.
// Safe to call on every startup.
func (s *service) SeedDefaults(ctx context.Context) error {
	log := logger.FromCtx(ctx)

	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, c := range DefaultCategories {
		if _, err := s.repo.Create(ctx, c); err != nil {
			// Another instance may have seeded concurrently.
			if errors.Is(err, ErrCategoryExists) {
				continue
			}
			log.Error("failed to seed category", zap.String("category_id", c.ID), zap.Error(err))
			return err
		}
	}

	log.Info("default categories initialized", zap.Int("count", len(DefaultCategories)))
	return nil
}

func (s *service) List(ctx context.Context, includeInactive bool) ([]Category, error) {
	return s.repo.GetAll(ctx, !includeInactive)
}

func (s *service) Get(ctx context.Context, id string) (*Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, c Category) (*Category, error) {
	c.ID = strings.TrimSpace(c.ID)
	c.Name = strings.TrimSpace(c.Name)

	if c.ID == "" {
		return nil, &ValidationError{Field: "id", Message: "cannot be empty"}
	}
	if len([]rune(c.Name)) < 2 {
		return nil, &ValidationError{Field: "name", Message: "must be at least 2 characters"}
	}

	return s.repo.Create(ctx, c)
}

func (s *service) Update(ctx context.Context, id string, input UpdateInput) (*Category, error) {
	if id == "" {
		return nil, &ValidationError{Field: "id", Message: "is required"}
	}
	if input.Name != nil && len([]rune(strings.TrimSpace(*input.Name))) < 2 {
		return nil, &ValidationError{Field: "name", Message: "must be at least 2 characters"}
	}
	if input.Name == nil && input.Description == nil && input.IsActive == nil {
		return nil, &ValidationError{Field: "update", Message: "no fields to update"}
	}

	return s.repo.Update(ctx, id, input)
}

func (s *service) SetActive(ctx context.Context, id string, active bool) (*Category, error) {
	return s.repo.SetActive(ctx, id, active)
}

package product

import (
	"context"
	"errors"
	"strings"
	"time"

	"mechoci-be/internal/category"
	"mechoci-be/internal/logger"
	"mechoci-be/internal/utils"

	"go.uber.org/zap"
)

// Categories is the slice of the category service the catalog needs.
type Categories interface {
	Get(ctx context.Context, id string) (*category.Category, error)
}

type Service interface {
	List(ctx context.Context, includeUnavailable bool) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, p Product) (*Product, error)
	Update(ctx context.Context, id string, input UpdateInput) (*Product, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo       Repository
	categories Categories
}

func NewService(repo Repository, categories Categories) Service {
	return &service{repo: repo, categories: categories}
}

func (s *service) List(ctx context.Context, includeUnavailable bool) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListProducts"),
	)

	start := time.Now()

	products, err := s.repo.GetAll(ctx, !includeUnavailable)
	if err != nil {
		log.Error("failed to fetch product list",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	log.Debug("product list fetched",
		zap.Int("count", len(products)),
		zap.Duration("duration", time.Since(start)),
	)

	return products, nil
}

func (s *service) Get(ctx context.Context, id string) (*Product, error) {
	if id == "" {
		return nil, ErrProductNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, p Product) (*Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)

	if err := s.validate(ctx, p.Name, p.Description, p.Price, p.ImageURL, p.Category); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, p)
}

func (s *service) Update(ctx context.Context, id string, input UpdateInput) (*Product, error) {
	if id == "" {
		return nil, &ValidationError{Field: "id", Message: "is required"}
	}
	if !input.hasAnyField() {
		return nil, &ValidationError{Field: "update", Message: "no fields to update"}
	}

	if input.Name != nil && len([]rune(strings.TrimSpace(*input.Name))) < 2 {
		return nil, &ValidationError{Field: "name", Message: "must be at least 2 characters"}
	}
	if input.Description != nil && len([]rune(strings.TrimSpace(*input.Description))) < 10 {
		return nil, &ValidationError{Field: "description", Message: "must be at least 10 characters"}
	}
	if input.Price != nil && *input.Price < 0 {
		return nil, &ValidationError{Field: "price", Message: "must not be negative"}
	}
	if input.ImageURL != nil && !utils.IsValidURL(*input.ImageURL) {
		return nil, &ValidationError{Field: "imageUrl", Message: "must be a valid URL"}
	}
	if input.Category != nil {
		if err := s.checkCategory(ctx, *input.Category); err != nil {
			return nil, err
		}
	}

	return s.repo.Update(ctx, id, input)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrProductNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) validate(ctx context.Context, name, description string, price int64, imageURL, categoryID string) error {
	if len([]rune(name)) < 2 {
		return &ValidationError{Field: "name", Message: "must be at least 2 characters"}
	}
	if len([]rune(description)) < 10 {
		return &ValidationError{Field: "description", Message: "must be at least 10 characters"}
	}
	if price < 0 {
		return &ValidationError{Field: "price", Message: "must not be negative"}
	}
	if !utils.IsValidURL(imageURL) {
		return &ValidationError{Field: "imageUrl", Message: "must be a valid URL"}
	}
	return s.checkCategory(ctx, categoryID)
}

func (s *service) checkCategory(ctx context.Context, id string) error {
	c, err := s.categories.Get(ctx, id)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			return &ValidationError{Field: "category", Message: "is not a valid category"}
		}
		return err
	}
	if !c.IsActive {
		return &ValidationError{Field: "category", Message: "is not active"}
	}
	return nil
}

package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"mechoci-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetAll(ctx context.Context, onlyActive bool) ([]Category, error)
	GetByID(ctx context.Context, id string) (*Category, error)
	Create(ctx context.Context, c Category) (*Category, error)
	Update(ctx context.Context, id string, input UpdateInput) (*Category, error)
	SetActive(ctx context.Context, id string, active bool) (*Category, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAll(ctx context.Context, onlyActive bool) ([]Category, error) {
	query := `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM categories
	`
	if onlyActive {
		query += " WHERE is_active = true"
	}
	query += " ORDER BY name ASC"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.FromCtx(ctx).Error("DB query failed GetAll categories", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}

	return categories, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id string) (*Category, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM categories WHERE id = $1
	`, id)

	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	return c, err
}

func (r *repository) Create(ctx context.Context, c Category) (*Category, error) {
	log := logger.FromCtx(ctx).With(zap.String("category_id", c.ID))

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO categories (id, name, description, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, description, is_active, created_at, updated_at
	`, c.ID, c.Name, c.Description, c.IsActive)

	created, err := scanCategory(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrCategoryExists
		}
		log.Error("AddCategory DB query failed", zap.Error(err))
		return nil, fmt.Errorf("add category failed: %w", err)
	}

	log.Info("category created", zap.String("name", created.Name))
	return created, nil
}

func (r *repository) Update(ctx context.Context, id string, input UpdateInput) (*Category, error) {
	set := []string{"updated_at = NOW()"}
	args := []interface{}{}

	if input.Name != nil {
		set = append(set, fmt.Sprintf("name = $%d", len(args)+1))
		args = append(args, *input.Name)
	}
	if input.Description != nil {
		set = append(set, fmt.Sprintf("description = $%d", len(args)+1))
		args = append(args, *input.Description)
	}
	if input.IsActive != nil {
		set = append(set, fmt.Sprintf("is_active = $%d", len(args)+1))
		args = append(args, *input.IsActive)
	}

	query := fmt.Sprintf(`
		UPDATE categories SET %s WHERE id = $%d
		RETURNING id, name, description, is_active, created_at, updated_at
	`, strings.Join(set, ", "), len(args)+1)
	args = append(args, id)

	row := r.db.QueryRowContext(ctx, query, args...)

	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	return c, err
}

func (r *repository) SetActive(ctx context.Context, id string, active bool) (*Category, error) {
	return r.Update(ctx, id, UpdateInput{IsActive: &active})
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCategory(row rowScanner) (*Category, error) {
	var c Category
	var desc sql.NullString

	err := row.Scan(&c.ID, &c.Name, &desc, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if desc.Valid {
		c.Description = &desc.String
	}
	return &c, nil
}

package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"mechoci-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	GetAll(ctx context.Context, onlyAvailable bool) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, p Product) (*Product, error)
	Update(ctx context.Context, id string, input UpdateInput) (*Product, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = "id, name, description, price, image_url, available, category, created_at, updated_at"

func (r *repository) GetAll(ctx context.Context, onlyAvailable bool) ([]Product, error) {
	log := logger.FromCtx(ctx)

	query := fmt.Sprintf("SELECT %s FROM products", productColumns)
	if onlyAvailable {
		query += " WHERE available = true"
	}
	query += " ORDER BY name ASC"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price,
			&p.ImageURL, &p.Available, &p.Category,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			log.Error("failed to scan product row", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns), id,
	).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price,
		&p.ImageURL, &p.Available, &p.Category,
		&p.CreatedAt, &p.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p Product) (*Product, error) {
	log := logger.FromCtx(ctx)

	err := r.db.QueryRowContext(ctx, fmt.Sprintf(`
		INSERT INTO products (id, name, description, price, image_url, available, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s
	`, productColumns),
		uuid.NewString(), p.Name, p.Description, p.Price, p.ImageURL, p.Available, p.Category,
	).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price,
		&p.ImageURL, &p.Available, &p.Category,
		&p.CreatedAt, &p.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to insert product", zap.String("name", p.Name), zap.Error(err))
		return nil, err
	}

	return &p, nil
}

func (r *repository) Update(ctx context.Context, id string, input UpdateInput) (*Product, error) {
	set := []string{"updated_at = NOW()"}
	args := []interface{}{}

	addSet := func(column string, value interface{}) {
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)+1))
		args = append(args, value)
	}

	if input.Name != nil {
		addSet("name", *input.Name)
	}
	if input.Description != nil {
		addSet("description", *input.Description)
	}
	if input.Price != nil {
		addSet("price", *input.Price)
	}
	if input.ImageURL != nil {
		addSet("image_url", *input.ImageURL)
	}
	if input.Available != nil {
		addSet("available", *input.Available)
	}
	if input.Category != nil {
		addSet("category", *input.Category)
	}

	query := fmt.Sprintf(
		"UPDATE products SET %s WHERE id = $%d RETURNING %s",
		strings.Join(set, ", "), len(args)+1, productColumns,
	)
	args = append(args, id)

	var p Product
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price,
		&p.ImageURL, &p.Available, &p.Category,
		&p.CreatedAt, &p.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

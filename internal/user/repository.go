package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"mechoci-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, name, email, passwordHash string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, email, passwordHash string) (User, error) {
	log := logger.FromCtx(ctx)

	var u User
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (id, name, email, password, is_admin)
		VALUES ($1, $2, $3, $4, false)
		RETURNING id, name, email, password, is_admin, created_at, updated_at
	`, uuid.NewString(), name, email, passwordHash).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return User{}, ErrEmailExists
		}
		log.Error("db: failed to insert user",
			zap.String("email", email),
			zap.Error(err),
		)
		return User{}, err
	}

	return u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	var u User
	var phone sql.NullString

	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password, is_admin, phone, created_at, updated_at
		FROM users WHERE email = $1
	`, email).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.IsAdmin, &phone, &u.CreatedAt, &u.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}

	if phone.Valid {
		u.Phone = &phone.String
	}
	return u, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (User, error) {
	var u User
	var phone sql.NullString

	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password, is_admin, phone, created_at, updated_at
		FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.IsAdmin, &phone, &u.CreatedAt, &u.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}

	if phone.Valid {
		u.Phone = &phone.String
	}

	addresses, err := r.loadAddresses(ctx, id)
	if err != nil {
		return User{}, err
	}
	u.Addresses = addresses

	return u, nil
}

func (r *repository) loadAddresses(ctx context.Context, userID string) ([]DeliveryAddress, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, address, latitude, longitude
		FROM delivery_addresses
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addresses []DeliveryAddress
	for rows.Next() {
		var a DeliveryAddress
		if err := rows.Scan(&a.ID, &a.Address, &a.Latitude, &a.Longitude); err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}

	return addresses, rows.Err()
}

func (r *repository) UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateProfile"),
		zap.String("user_id", id),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return User{}, err
	}
	defer tx.Rollback()

	set := []string{"updated_at = NOW()"}
	args := []interface{}{}

	if input.Name != nil {
		set = append(set, fmt.Sprintf("name = $%d", len(args)+1))
		args = append(args, *input.Name)
	}
	if input.Phone != nil {
		set = append(set, fmt.Sprintf("phone = $%d", len(args)+1))
		args = append(args, *input.Phone)
	}

	query := fmt.Sprintf(
		"UPDATE users SET %s WHERE id = $%d",
		strings.Join(set, ", "), len(args)+1,
	)
	args = append(args, id)

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update user", zap.Error(err))
		return User{}, err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return User{}, ErrUserNotFound
	}

	if input.Addresses != nil {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM delivery_addresses WHERE user_id = $1`, id,
		); err != nil {
			log.Error("failed to clear delivery addresses", zap.Error(err))
			return User{}, err
		}

		for _, a := range input.Addresses {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO delivery_addresses (id, user_id, address, latitude, longitude)
				VALUES ($1, $2, $3, $4, $5)
			`, uuid.NewString(), id, a.Address, a.Latitude, a.Longitude); err != nil {
				log.Error("failed to insert delivery address", zap.Error(err))
				return User{}, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return User{}, err
	}

	return r.FindByID(ctx, id)
}

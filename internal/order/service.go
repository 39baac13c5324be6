package order

import (
	"context"
	"errors"
	"time"

	"mechoci-be/internal/logger"
	"mechoci-be/internal/product"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Catalog is the read contract the order service consumes. Satisfied by
// product.Repository.
type Catalog interface {
	GetByID(ctx context.Context, id string) (*product.Product, error)
}

type Service interface {
	Create(ctx context.Context, userID string, input CreateInput) (*Order, error)
	UpdateStatus(ctx context.Context, orderID string, requested Status, callerIsAdmin bool) (*Order, error)
	List(ctx context.Context, callerID string, callerIsAdmin bool) ([]*Order, error)
	Get(ctx context.Context, orderID, callerID string, callerIsAdmin bool) (*Order, error)
}

type service struct {
	repo    Repository
	catalog Catalog
}

func NewService(repo Repository, catalog Catalog) Service {
	return &service{repo: repo, catalog: catalog}
}

// Create validates the request, re-prices every line item against the
// live catalog and persists the order with status pending. Client-supplied
// prices are never trusted. Any missing or unavailable product aborts the
// whole order; nothing is persisted.
func (s *service) Create(ctx context.Context, userID string, input CreateInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.String("user_id", userID),
		zap.Int("item_count", len(input.Items)),
	)

	if userID == "" {
		return nil, ErrForbidden
	}

	if err := validateCreateInput(input); err != nil {
		log.Warn("order input rejected", zap.Error(err))
		return nil, err
	}

	// Items are priced in input order so the first offending product
	// wins deterministically when several are invalid. A concurrent
	// price update landing between two lookups is accepted: the total
	// is computed from the snapshots actually read.
	items := make([]Item, 0, len(input.Items))
	var total int64

	for i, in := range input.Items {
		p, err := s.catalog.GetByID(ctx, in.ProductID)
		if err != nil {
			if errors.Is(err, product.ErrProductNotFound) {
				log.Warn("order references unknown product",
					zap.Int("index", i),
					zap.String("product_id", in.ProductID),
				)
				return nil, &UnavailableProductError{ProductID: in.ProductID}
			}
			log.Error("failed to look up product",
				zap.String("product_id", in.ProductID),
				zap.Error(err),
			)
			return nil, err
		}

		if !p.Available {
			log.Warn("order references unavailable product",
				zap.Int("index", i),
				zap.String("product_id", in.ProductID),
			)
			return nil, &UnavailableProductError{ProductID: in.ProductID}
		}

		items = append(items, Item{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    in.Quantity,
			Price:       p.Price,
		})
		total += p.Price * int64(in.Quantity)
	}

	o := &Order{
		ID:               uuid.NewString(),
		UserID:           userID,
		Items:            items,
		Total:            total,
		Status:           StatusPending,
		DeliveryLocation: input.DeliveryLocation,
		DeliveryTime:     input.DeliveryTime,
	}

	if err := s.repo.Insert(ctx, o); err != nil {
		return nil, err
	}

	log.Info("order created",
		zap.String("order_id", o.ID),
		zap.Int64("total", o.Total),
	)

	return o, nil
}

func validateCreateInput(input CreateInput) error {
	if len(input.Items) == 0 {
		return &ValidationError{Field: "items", Message: "order must have at least one item"}
	}
	for _, item := range input.Items {
		if item.ProductID == "" {
			return &ValidationError{Field: "items.productId", Message: "is required"}
		}
		if item.Quantity < 1 {
			return &ValidationError{Field: "items.quantity", Message: "must be at least 1"}
		}
	}

	loc := input.DeliveryLocation
	if loc.Latitude < -90 || loc.Latitude > 90 {
		return &ValidationError{Field: "deliveryLocation.latitude", Message: "must be between -90 and 90"}
	}
	if loc.Longitude < -180 || loc.Longitude > 180 {
		return &ValidationError{Field: "deliveryLocation.longitude", Message: "must be between -180 and 180"}
	}

	if !input.DeliveryTime.After(time.Now()) {
		return &ValidationError{Field: "deliveryTime", Message: "must be in the future"}
	}

	return nil
}

// UpdateStatus applies one legal move of the order status machine.
// Admin only.
func (s *service) UpdateStatus(ctx context.Context, orderID string, requested Status, callerIsAdmin bool) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateOrderStatus"),
		zap.String("order_id", orderID),
		zap.String("requested_status", string(requested)),
	)

	if !callerIsAdmin {
		return nil, ErrForbidden
	}

	if !requested.Valid() {
		return nil, &ValidationError{Field: "status", Message: "is not a valid status"}
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !o.Status.CanTransitionTo(requested) {
		log.Warn("illegal status transition rejected",
			zap.String("current_status", string(o.Status)),
		)
		return nil, &TransitionError{From: o.Status, To: requested}
	}

	ok, err := s.repo.UpdateStatus(ctx, orderID, o.Status, requested)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrStatusConflict
	}

	o.Status = requested

	log.Info("order status updated")
	return o, nil
}

// List returns all orders for admins, and only the caller's own orders
// otherwise. Newest first.
func (s *service) List(ctx context.Context, callerID string, callerIsAdmin bool) ([]*Order, error) {
	if callerIsAdmin {
		return s.repo.List(ctx, nil)
	}
	if callerID == "" {
		return nil, ErrForbidden
	}
	return s.repo.List(ctx, &callerID)
}

func (s *service) Get(ctx context.Context, orderID, callerID string, callerIsAdmin bool) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !callerIsAdmin && o.UserID != callerID {
		return nil, ErrForbidden
	}

	return o, nil
}

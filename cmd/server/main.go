package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"mechoci-be/internal/category"
	"mechoci-be/internal/config"
	"mechoci-be/internal/db"
	"mechoci-be/internal/logger"
	"mechoci-be/internal/order"
	"mechoci-be/internal/product"
	"mechoci-be/internal/rest"
	"mechoci-be/internal/user"
)

// Seams for tests.
var (
	initDBFunc      = db.InitDB
	startServerFunc = http.ListenAndServe
	seedFunc        = func(ctx context.Context, svc category.Service) error {
		return svc.SeedDefaults(ctx)
	}
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	categorySvc := category.NewService(category.NewRepository(database))
	if err := seedFunc(context.Background(), categorySvc); err != nil {
		return fmt.Errorf("failed to initialize default categories: %w", err)
	}

	router := newServer(database, categorySvc)

	log.Printf("Server running on port %s", cfg.AppPort)
	return startServerFunc(":"+cfg.AppPort, router)
}

func newServer(database *sql.DB, categorySvc category.Service) http.Handler {
	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, categorySvc)

	userSvc := user.NewService(user.NewRepository(database))

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, productRepo)

	return rest.NewRouter(rest.Services{
		Users:      userSvc,
		Products:   productSvc,
		Categories: categorySvc,
		Orders:     orderSvc,
	})
}

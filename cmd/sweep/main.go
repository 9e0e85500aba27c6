// Command sweep runs one billing sweep: terminal orders that have not
// been billed yet are synced to the invoicing provider and flagged as
// processed. Intended to run on a schedule (cron).
package main

import (
	"context"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"unihop/internal/app"
	"unihop/internal/billing"
	"unihop/internal/config"
	"unihop/internal/repository/postgres"
	"unihop/internal/service"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := app.NewDatabase(ctx, cfg.Database, nil)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	orderRepo := postgres.NewOrderRepository(db)
	gateway := billing.NewStripeGateway(cfg.Stripe.SecretKey)
	invoicer := billing.NewInvoicer(gateway, logger)
	sweep := service.NewSweepService(orderRepo, invoicer, logger)

	result, err := sweep.Run(ctx)
	if err != nil {
		logger.Fatal("billing sweep aborted", zap.Error(err))
	}

	if result.Failed > 0 {
		os.Exit(1)
	}
}

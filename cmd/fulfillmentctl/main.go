package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Gunvolt24/merch_fulfillment/config"
	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
	"github.com/Gunvolt24/merch_fulfillment/internal/ports"
	"github.com/Gunvolt24/merch_fulfillment/internal/repo/postgres"
	"github.com/joho/godotenv"
)

// CLI оператора: просмотр заказа и ручная постановка заданий конвейера.
func main() {
	orderID := flag.String("order", "", "order id")
	action := flag.String("action", "status", "status|requeue-draft|confirm-now")
	flag.Parse()

	if *orderID == "" {
		fmt.Fprintln(os.Stderr, "-order is required")
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load(".env.local")
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, 2)
	if err != nil {
		fmt.Fprintf(os.Stderr, "postgres: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	err = run(ctx, postgres.NewOrderRepository(pool), postgres.NewJobRepository(pool), *orderID, *action)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", *action, err)
		pool.Close()
		os.Exit(1)
	}
}

var errWrongStatus = errors.New("order is not in the required status")

func run(ctx context.Context, repo ports.OrderRepository, jobs ports.Scheduler, orderID, action string) error {
	order, err := repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrOrderNotFound
	}

	switch action {
	case "status":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(order)

	case "requeue-draft":
		// failed — конечный статус: черновик такого заказа не пересоздаётся
		if order.Status != domain.StatusPaid {
			return fmt.Errorf("%w: want %s, got %s", errWrongStatus, domain.StatusPaid, order.Status)
		}
		if order.DraftClaimedAt != nil {
			fmt.Fprintf(os.Stderr, "draft was claimed at %s, the job will look it up at the provider by external id\n",
				order.DraftClaimedAt.Format(time.RFC3339))
		}
		if err := jobs.ScheduleAfter(ctx, 0, domain.JobCreateDraft, domain.DraftJob{OrderID: order.ID}); err != nil {
			return err
		}

	case "confirm-now":
		if order.Status != domain.StatusFulfilling || order.FulfillmentOrderID == "" {
			return fmt.Errorf("%w: want %s with a draft, got %s", errWrongStatus, domain.StatusFulfilling, order.Status)
		}
		job := domain.ConfirmJob{OrderID: order.ID, FulfillmentOrderID: order.FulfillmentOrderID}
		if err := jobs.ScheduleAfter(ctx, 0, domain.JobConfirmOrder, job); err != nil {
			return err
		}

	default:
		return fmt.Errorf("unknown action %q", action)
	}

	fmt.Fprintf(os.Stdout, "%s scheduled for order %s\n", action, order.ID)
	return nil
}

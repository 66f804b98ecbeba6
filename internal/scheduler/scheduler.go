package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/crucial707/expense-tracker/internal/metrics"
	"github.com/crucial707/expense-tracker/internal/repo"
	"github.com/robfig/cron/v3"
)

// Run starts a background collector that refreshes the user and expense
// count gauges from the database on the given cron spec (e.g. "@every 1m").
// It returns the running cron so callers can Stop it.
func Run(cronSpec string, users *repo.UserRepo, expenses *repo.ExpenseRepo) (*cron.Cron, error) {
	c := cron.New()

	collect := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if n, err := users.Count(ctx); err != nil {
			slog.Warn("stats: count users", "err", err)
		} else {
			metrics.SetUsersTotal(n)
		}

		if n, err := expenses.Count(ctx); err != nil {
			slog.Warn("stats: count expenses", "err", err)
		} else {
			metrics.SetExpensesTotal(n)
		}
	}

	if _, err := c.AddFunc(cronSpec, collect); err != nil {
		return nil, err
	}

	// Prime the gauges once at startup instead of waiting for the first tick.
	collect()
	c.Start()
	return c, nil
}

package main

import (
	"context"
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/joestump/wellspring"
	"github.com/joestump/wellspring/internal/config"
	"github.com/joestump/wellspring/internal/metrics"
)

func newCheckCmd() *cobra.Command {
	var (
		count       int
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Create connections with the configured provider and report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			factoryCfg, err := cfg.Factory()
			if err != nil {
				return err
			}

			factory, err := wellspring.New(factoryCfg, wellspring.LogListener{}, metrics.Listener{})
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			// One connection through the stdlib pool first, with a probe
			// query, to prove end-to-end wiring.
			db := sqlx.NewDb(sql.OpenDB(factory.Connector()), cfg.Driver)
			defer func() { _ = db.Close() }()

			var one int
			if err := db.GetContext(ctx, &one, "SELECT 1"); err != nil {
				return err
			}
			log.Printf("probe ok: mode=%s url=%s", factory.Mode(), cfg.URL)

			if count > 1 {
				runStorm(ctx, factory, count, concurrency)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 1, "number of connections to create")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "concurrent creators")
	return cmd
}

// runStorm creates count connections across concurrency goroutines. Each
// connection is independent; this exercises concurrent CreateConnection
// calls against one factory.
func runStorm(ctx context.Context, factory *wellspring.Factory, count, concurrency int) {
	if concurrency < 1 {
		concurrency = 1
	}

	jobs := make(chan struct{}, count)
	for i := 0; i < count; i++ {
		jobs <- struct{}{}
	}
	close(jobs)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		created  int
		failures int
	)
	start := time.Now()

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				begin := time.Now()
				handle, err := factory.CreateConnection(ctx)
				metrics.ObserveCreation(factory.Mode().String(), err, time.Since(begin))

				mu.Lock()
				if err != nil {
					failures++
				} else {
					created++
				}
				mu.Unlock()

				if err != nil {
					log.Printf("create error: %v", err)
					continue
				}
				_ = handle.Close()
			}
		}()
	}
	wg.Wait()

	log.Printf("created %d connections (%d failures) in %s", created, failures, time.Since(start).Round(time.Millisecond))
}

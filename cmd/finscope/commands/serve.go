package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/finscope/finscope/internal/api"
	"github.com/finscope/finscope/internal/api/handlers"
	"github.com/finscope/finscope/internal/scheduler"
	"github.com/finscope/finscope/internal/scheduler/jobs"
	"github.com/finscope/finscope/internal/screening"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts the HTTP API server serving screening, valuation, health and
market-data endpoints under /api/v1. When the scheduler is enabled in the
configuration, a periodic cache-refresh job warms fundamentals for the
whole universe.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := setup()
	if err != nil {
		return err
	}
	log := app.log

	universe := screening.DefaultUniverse()

	screenHandler := handlers.NewScreenHandler(app.engine, universe, log)
	analysisHandler := handlers.NewAnalysisHandler(app.engine, log)
	marketHandler := handlers.NewMarketHandler(app.cache, log)

	router := api.NewRouter(screenHandler, analysisHandler, marketHandler, log)
	server := api.New(app.cfg, log, router)

	var sched *scheduler.Scheduler
	if app.cfg.Scheduler.Enabled {
		sched = scheduler.New(log)
		job := jobs.NewRefreshJob(app.cache, universe, app.cfg.Scheduler.RefreshCron, log)
		if err := sched.AddJob(job); err != nil {
			return err
		}
		sched.Start()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if sched != nil {
			sched.Stop()
		}
		return err
	case sig := <-sigCh:
		log.WithField("signal", sig.String()).Info("Shutdown signal received")
	}

	if sched != nil {
		sched.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

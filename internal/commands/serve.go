package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"PriceOutlook/internal/logger"
	"PriceOutlook/internal/monitoring"
	"PriceOutlook/internal/notifier"
	"PriceOutlook/internal/scheduler"
)

var serveRunOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run scheduled forecasts with Telegram delivery",
	Long: `Start the long-running service:
• cron-scheduled forecasts for every configured symbol
• Telegram delivery and chat commands (/forecast, /optimal, /history, /help)
• Prometheus metrics on metrics.addr when set

Examples:
  outlook serve
  outlook serve --run-on-start`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveRunOnStart, "run-on-start", os.Getenv("RUN_ON_START") == "true", "run the daily job immediately")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if err := cfg.ValidateNotifier(); err != nil {
		return err
	}
	log.Info("🚀 PriceOutlook starting")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := monitoring.NewMetrics(reg)

	rec := openRecorder(cfg, log)
	defer rec.Close()

	runner, err := newRunner(cfg, log, rec, metrics)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, logger.WithComponent(log, "telegram"))

	sched := scheduler.NewScheduler(ctx, runner, tn, rec, cfg.DataSource.Symbols, logger.WithComponent(log, "scheduler"))
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Info("telegram polling started")

	var srv *http.Server
	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", monitoring.Handler(reg))
		srv = &http.Server{Addr: cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("metrics server failed")
			}
		}()
		log.WithField("addr", cfg.Metrics.Addr).Info("metrics endpoint listening")
	}

	if serveRunOnStart {
		log.Info("run-on-start enabled, executing daily job now")
		go sched.RunNow()
	}

	log.Info("PriceOutlook is running. Press Ctrl+C to stop.")
	<-ctx.Done()
	log.Info("shutdown signal received, stopping...")

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("metrics server shutdown")
		}
	}
	return nil
}

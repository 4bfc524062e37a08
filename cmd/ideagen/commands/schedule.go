package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/ideagen/internal/scheduler"
	"github.com/wonny/ideagen/internal/scheduler/jobs"
)

var scheduleRunNow bool

// scheduleCmd keeps the process alive and rebuilds ideas on a cron schedule
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Rebuild ideas on a cron schedule",
	Long: `스케줄러를 시작하고 SCHEDULE_CRON 마다 build를 실행합니다.

METRICS_ENABLED=true 이면 :METRICS_PORT/metrics 에서 Prometheus 지표를 노출합니다.
Ctrl+C로 종료할 수 있습니다.

Example:
  SCHEDULE_CRON="0 30 22 * * 1-5" go run ./cmd/ideagen schedule
  go run ./cmd/ideagen schedule --run-now`,
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().BoolVar(&scheduleRunNow, "run-now", false, "run one build immediately before waiting for the schedule")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()

	var srv *http.Server
	if a.cfg.MetricsEnabled {
		srv = startMetricsServer(a)
		printKeyValue(out, "Metrics", fmt.Sprintf("http://localhost:%s/metrics", a.cfg.MetricsPort), 10)
	}

	sched := scheduler.New(a.logger, scheduler.WithLocation(time.UTC))
	job := jobs.NewBuildJob(a.engine, a.cfg.ScheduleCron, a.logger)
	if err := sched.AddJob(job); err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	if scheduleRunNow {
		result, err := sched.RunJob(ctx, job.Name())
		if err != nil {
			return err
		}
		if !result.Success {
			printWarning(out, fmt.Sprintf("Initial build failed: %s", result.Error))
		}
	}

	sched.Start()
	next, _ := sched.NextRun(job.Name())
	printSuccess(out, "Scheduler started")
	printKeyValue(out, "Schedule", a.cfg.ScheduleCron+" (UTC)", 10)
	printKeyValue(out, "Next run", next.Format(time.RFC3339), 10)

	<-ctx.Done()

	fmt.Fprintln(out, "Shutting down scheduler...")
	sched.Stop()

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.WithError(err).Warn("Metrics server shutdown failed")
		}
	}

	for name, st := range sched.GetJobStats() {
		printKeyValue(out, name, fmt.Sprintf("%d runs, %d failed", st.TotalRuns, st.FailureCount), 10)
	}
	return nil
}

func startMetricsServer(a *app) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics.Handler())

	srv := &http.Server{
		Addr:              ":" + a.cfg.MetricsPort,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.WithError(err).Error("Metrics server failed")
		}
	}()

	a.logger.WithField("port", a.cfg.MetricsPort).Info("Metrics server started")
	return srv
}

package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/ideagen/internal/pipeline"
	"github.com/wonny/ideagen/pkg/logger"
)

// Runner executes one idea generation run
type Runner interface {
	Run(ctx context.Context) (*pipeline.Result, error)
}

// BuildJob regenerates the idea payload after the US close
// ⭐ SSOT: 아이디어 생성 스케줄은 이 Job에서만
type BuildJob struct {
	runner   Runner
	schedule string
	logger   *logger.Logger
}

// NewBuildJob creates a new build job
func NewBuildJob(runner Runner, schedule string, log *logger.Logger) *BuildJob {
	return &BuildJob{
		runner:   runner,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *BuildJob) Name() string {
	return "daily_ideas"
}

// Schedule returns the cron schedule (with seconds)
func (j *BuildJob) Schedule() string {
	return j.schedule
}

// Run executes one idea generation run
func (j *BuildJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled idea generation")

	result, err := j.runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("idea generation: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"run_id":      result.Payload.RunID,
		"short_ideas": result.Payload.Counts.Short,
		"long_ideas":  result.Payload.Counts.Long,
		"evaluated":   result.Stats.Evaluated,
	}).Info("Scheduled idea generation finished")

	return nil
}

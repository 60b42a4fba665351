package workers

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Task is one unit of housekeeping run on every cycle. It reports how many
// items it handled.
type Task struct {
	Name string
	Fn   func(ctx context.Context) (int, error)
}

// CycleReport summarises one pass over a worker's tasks.
type CycleReport struct {
	Worker   string
	Counts   map[string]int
	Failed   []string
	Duration time.Duration
}

// RunCycle executes tasks in order. A failing task is logged and does not
// stop the ones after it.
func RunCycle(ctx context.Context, worker string, tasks []Task) CycleReport {
	startedAt := time.Now()
	report := CycleReport{Worker: worker, Counts: make(map[string]int, len(tasks))}

	for _, task := range tasks {
		if ctx.Err() != nil {
			break
		}
		count, err := task.Fn(ctx)
		report.Counts[task.Name] = count
		if err != nil {
			report.Failed = append(report.Failed, task.Name)
			zap.L().Error("Worker task failed",
				zap.String("worker", worker),
				zap.String("task", task.Name),
				zap.Error(err))
		}
	}

	report.Duration = time.Since(startedAt)
	return report
}

// RunPeriodically runs one cycle right away and then one per interval until
// ctx is cancelled.
func RunPeriodically(ctx context.Context, worker string, interval time.Duration, tasks []Task) {
	zap.L().Info("Starting worker", zap.String("worker", worker), zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		logReport(RunCycle(ctx, worker, tasks))

		select {
		case <-ctx.Done():
			zap.L().Info("Worker stopped", zap.String("worker", worker))
			return
		case <-ticker.C:
		}
	}
}

func logReport(report CycleReport) {
	fields := []zap.Field{
		zap.String("worker", report.Worker),
		zap.Any("counts", report.Counts),
		zap.Duration("duration", report.Duration),
	}
	if len(report.Failed) > 0 {
		zap.L().Warn("Worker cycle finished with failures", append(fields, zap.Strings("failed", report.Failed))...)
		return
	}
	zap.L().Debug("Worker cycle finished", fields...)
}

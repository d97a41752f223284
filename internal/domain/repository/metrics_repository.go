package repository

import (
	"context"
	"time"

	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
)

// MetricsRecorder records the outcome of report runs.
type MetricsRecorder interface {
	ObserveRun(success bool, duration time.Duration)
	ObserveTable(table entity.CombinedTable)
	Push(ctx context.Context) error
}

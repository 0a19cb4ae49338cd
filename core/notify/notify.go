package notify

import (
	"context"
	"fmt"
	"time"

	"change-detector/core/storage"

	"go.uber.org/zap"
)

// Notifier delivers a change report.
type Notifier interface {
	Send(ctx context.Context, subject, body string) error
}

// Subject returns the notification subject of a run finished at t.
func Subject(t time.Time) string {
	return "The GIS team Made changes to the data " + t.Format("2006-01-02 15:04:05")
}

// New creates the notifier selected by cfg.Driver.
// A nil notifier is returned for the "none" driver.
func New(cfg Config, client storage.Client, bucket string, logger *zap.Logger) (Notifier, error) {
	switch cfg.Driver {
	case DriverSMTP:
		if len(cfg.Recipients()) == 0 {
			return nil, fmt.Errorf("smtp notifier requires at least one recipient")
		}
		return NewSMTP(cfg), nil
	case DriverStorage:
		if client == nil {
			return nil, fmt.Errorf("storage notifier requires a storage client")
		}
		return NewBucket(client, bucket, cfg.ReportPrefix), nil
	case DriverLog, "":
		return NewLog(logger), nil
	case DriverNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown notify driver: %s", cfg.Driver)
	}
}

// Log writes reports to the application logger.
type Log struct {
	logger *zap.Logger
}

// NewLog creates a logging notifier.
func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger}
}

// Send logs the report.
func (l *Log) Send(ctx context.Context, subject, body string) error {
	l.logger.Info(subject, zap.String("report", body))
	return nil
}

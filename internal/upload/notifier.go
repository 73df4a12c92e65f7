package upload

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// Notifier receives the user-facing outcome notifications the orchestrator
// emits (the storefront surfaces these as toasts).
type Notifier interface {
	Info(ctx context.Context, message string)
	Success(ctx context.Context, message string)
	Failure(ctx context.Context, message string)
}

type logNotifier struct{}

// NewLogNotifier returns a Notifier that writes notifications to the
// service log.
func NewLogNotifier() Notifier {
	return logNotifier{}
}

func (logNotifier) Info(ctx context.Context, message string) {
	logutil.GetLogger(ctx).Info("upload notice", zap.String("message", message))
}

func (logNotifier) Success(ctx context.Context, message string) {
	logutil.GetLogger(ctx).Info("upload success", zap.String("message", message))
}

func (logNotifier) Failure(ctx context.Context, message string) {
	logutil.GetLogger(ctx).Warn("upload failure", zap.String("message", message))
}

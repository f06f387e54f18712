package composables

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/fieldtrak/fieldtrak/pkg/constants"
)

// UseLogger returns the request-scoped logger from the context, falling back
// to the standard logger so background callers (CLI, tests) keep working.
func UseLogger(ctx context.Context) *logrus.Entry {
	logger := ctx.Value(constants.LoggerKey)
	if logger == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return logger.(*logrus.Entry)
}

func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}

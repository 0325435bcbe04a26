package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	service "github.com/okian/lfgmenu/internal/app"
	"github.com/okian/lfgmenu/pkg/logger"
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fields := []logger.Field{logger.Error(err)}
		if stage, ok := service.FailedStage(err); ok {
			fields = append(fields, logger.String("stage", stage))
		}
		logger.Get().Error(ctx, "menu generation failed", fields...)
		_ = logger.Sync()
		os.Exit(1)
	}
}

// Aesthetic Filter Generator
// Creates ten stylistic variations of one image and saves them as JPEG.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"aesthetic-filters/internal/app"
)

const (
	AppName    = "aesthetic"
	AppVersion = "1.0.0"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs the root command and maps its outcome to an exit code
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
	case errors.Is(err, app.ErrUsage):
		fmt.Fprintf(stderr, "✗ %v\n", err)
		fmt.Fprintln(stderr, "Run with --help for usage.")
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(stderr, "✗ Interrupted")
	}
	return app.ExitCode(err)
}

// initLogger initializes the logger with appropriate level
func initLogger(debugMode bool, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.WarnLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}

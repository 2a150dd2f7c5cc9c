package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var errFailedRequests = errors.New("some requests failed")

type options struct {
	target   string
	path     string
	workers  int
	requests int
	rps      float64
	timeout  time.Duration
	verbose  bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "loadclient",
		Short:        "Send concurrent GET /load requests to drive CPU based autoscaling",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLoad(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.target, "target", "http://localhost:8080", "base URL of the service")
	f.StringVar(&opts.path, "path", "/load", "path requested on the target")
	f.IntVarP(&opts.workers, "workers", "w", 4, "concurrent requests in flight")
	f.IntVarP(&opts.requests, "requests", "n", 20, "total requests to send")
	f.Float64Var(&opts.rps, "rps", 0, "max requests started per second, 0 for unpaced")
	f.DurationVar(&opts.timeout, "timeout", 30*time.Second, "per request timeout")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log every response")

	return cmd
}

func runLoad(cmd *cobra.Command, opts options) error {
	if opts.workers <= 0 || opts.requests <= 0 {
		return errors.New("workers and requests must be > 0")
	}
	if opts.rps < 0 {
		return errors.New("rps must be >= 0")
	}

	logger := zap.NewNop()
	if opts.verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()
	}

	d := driver{
		client:   &http.Client{Timeout: opts.timeout},
		url:      strings.TrimRight(opts.target, "/") + "/" + strings.TrimLeft(opts.path, "/"),
		workers:  opts.workers,
		requests: opts.requests,
		logger:   logger,
	}
	if opts.rps > 0 {
		d.limiter = rate.NewLimiter(rate.Limit(opts.rps), 1)
	}

	sum := d.run(cmd.Context())
	fmt.Fprintln(cmd.OutOrStdout(), sum)

	if sum.failed > 0 || sum.sent < opts.requests {
		return errFailedRequests
	}
	return nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}

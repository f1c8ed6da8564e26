package start

import (
	"context"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/snipframe-cloud/snipframe/api"
	"github.com/snipframe-cloud/snipframe/internal/download"
	"github.com/snipframe-cloud/snipframe/internal/export"
	"github.com/snipframe-cloud/snipframe/internal/highlight"
	"github.com/snipframe-cloud/snipframe/internal/render"
	"github.com/snipframe-cloud/snipframe/internal/session"
	"github.com/snipframe-cloud/snipframe/internal/storage"
	"github.com/snipframe-cloud/snipframe/internal/sweeper"
	"github.com/snipframe-cloud/snipframe/internal/theme"
	"github.com/snipframe-cloud/snipframe/pkg/env"
	"github.com/snipframe-cloud/snipframe/pkg/log"
	"github.com/snipframe-cloud/snipframe/pkg/ratelimit"
	"github.com/snipframe-cloud/snipframe/pkg/retry"
)

const (
	usage   = "start"
	short   = "Start a snipframe rendering instance"
	long    = "This command starts a snipframe rendering instance"
	example = "snipframe start"
)

var (
	// Cmd is the start command.
	Cmd = &cobra.Command{
		Use:        usage,
		Short:      short,
		Long:       long,
		Aliases:    []string{"s"},
		SuggestFor: []string{"launch", "boot", "up", "run", "serve"},
		Example:    example,
		RunE:       start,
	}
)

var cancel context.CancelFunc

func start(cmd *cobra.Command, args []string) error {
	signalChan := make(chan os.Signal, 1)

	go func() {
		for s := range signalChan {
			switch s {
			case syscall.SIGUSR1:
				log.Info("dumping stack traces due to SIGUSR1 signal")
				if profile := pprof.Lookup("goroutine"); profile != nil {
					if err := profile.WriteTo(os.Stdout, 1); err != nil {
						log.Error("write goroutine profile", "error", err)
					}
				}
			case syscall.SIGINT:
				log.Info("gracefully shutting down due to SIGINT signal")
				shutdown()
				os.Exit(0)
			}
		}
	}()

	signal.Notify(signalChan, syscall.SIGUSR1, syscall.SIGINT)

	var errs = make(chan error)
	ctx, cancelFunc := context.WithCancel(context.Background())
	cancel = cancelFunc

	vars := env.Variables()

	store, err := storage.NewDisk(vars.TempDir)
	if err != nil {
		log.Fatal("artifact storage initialization failure", "error", err)
	}

	themes := theme.NewManager()
	if vars.ThemeDir != "" {
		loaded, err := themes.LoadDir(vars.ThemeDir)
		if err != nil {
			log.Fatal("theme directory load failure", "dir", vars.ThemeDir, "error", err)
		}
		log.Info("loaded custom themes", "dir", vars.ThemeDir, "count", loaded)
	}

	exporter := export.New(
		highlight.New(),
		render.New(),
		vars.RenderCacheSize,
		vars.RenderCacheTTL,
	)

	downloads := download.NewManager(download.Config{
		MaxConcurrent:     vars.MaxConcurrentExports,
		ArtifactRetention: vars.ArtifactTTL,
		JobRetention:      vars.JobRetention,
		RetryPolicy: retry.Policy{
			Attempts:   vars.ExportAttempts,
			Delay:      vars.ExportBackoff,
			Multiplier: 2,
		},
	}, exporter, store)

	sessions := session.NewManager(vars.SessionTTL)

	limiter := ratelimit.New(ratelimit.Config{
		MaxRequests: vars.RateLimitRequests,
		Window:      vars.RateLimitWindow,
		RetryAfter:  vars.RateLimitRetry,
	})

	sweep, err := sweeper.New(vars.SweepSchedule,
		sweeper.Task{Name: "artifacts", Run: downloads.ReclaimExpired},
		sweeper.Task{Name: "sessions", Run: sessions.SweepExpired},
		sweeper.Task{Name: "rate_windows", Run: limiter.SweepExpired},
		sweeper.Task{Name: "render_cache", Run: exporter.SweepCache},
		sweeper.Task{Name: "orphaned_files", Run: func() int {
			removed, err := store.SweepOld(vars.ArtifactTTL)
			if err != nil {
				log.Error("orphaned file sweep failure", "error", err)
			}
			return removed
		}},
	)
	if err != nil {
		log.Fatal("sweep schedule configuration failure", "error", err)
	}

	go func() {
		log.Info("spinning up api")
		errs <- api.Start(api.Deps{
			Downloads: downloads,
			Themes:    themes,
			Sessions:  sessions,
			Limiter:   limiter,
		})
	}()

	go func() {
		log.Info("launching sweep routine")
		errs <- sweep.Start(ctx)
	}()

	defer shutdown()

	return <-errs
}

func shutdown() {
	if cancel != nil {
		cancel()
	}

	ctx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()

	if err := api.Shutdown(ctx); err != nil {
		log.Error("api shutdown failure", "error", err)
	}
}

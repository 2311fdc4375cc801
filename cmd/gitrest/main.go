package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/kurobon/gitrest/internal/config"
	"github.com/kurobon/gitrest/internal/git"
	"github.com/kurobon/gitrest/internal/server"
	"github.com/kurobon/gitrest/internal/workspace"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()
	cmd := &cobra.Command{
		Use:           "gitrest",
		Short:         "Git repositories over HTTP",
		Long:          `gitrest serves per-session git workspaces as a JSON API on top of the git command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Prefix = config.NormalizePrefix(cfg.Prefix)
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}
	bindFlags(cmd.Flags(), cfg)
	return cmd
}

// bindFlags exposes cfg on fs. Environment values already in cfg are the defaults.
func bindFlags(fs *pflag.FlagSet, cfg *config.Config) {
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.Prefix, "prefix", cfg.Prefix, "route prefix, e.g. /git")
	fs.StringVar(&cfg.DataRoot, "data-root", cfg.DataRoot, "directory holding session workspaces")
	fs.StringVar(&cfg.GitBinary, "git", cfg.GitBinary, "git executable")
	fs.DurationVar(&cfg.CommandTimeout, "command-timeout", cfg.CommandTimeout, "timeout of a single git command")
	fs.StringVar(&cfg.DefaultBranch, "default-branch", cfg.DefaultBranch, "initial branch of new repositories")
	fs.Int64Var(&cfg.MaxUploadBytes, "max-upload", cfg.MaxUploadBytes, "maximum size of an uploaded file in bytes")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "log every git command")
}

func run(ctx context.Context, cfg *config.Config) error {
	runner := git.NewCLI(cfg.GitBinary, cfg.CommandTimeout, cfg.Verbose)
	version, err := git.Version(ctx, runner)
	if err != nil {
		return fmt.Errorf("git not usable: %w", err)
	}
	log.Printf("Using git %s (%s)", version, cfg.GitBinary)

	wm, err := workspace.NewManager(cfg.DataRoot)
	if err != nil {
		return err
	}
	log.Printf("Workspaces under %s", wm.Root())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.NewServer(cfg, wm, runner),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Server listening on %s%s", cfg.Addr, cfg.Prefix)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

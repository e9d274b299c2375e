package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/thiagokokada/gitprompt-go/internal/buildinfo"
	"github.com/thiagokokada/gitprompt-go/internal/git"
	"github.com/thiagokokada/gitprompt-go/internal/prompt"
	"github.com/thiagokokada/gitprompt-go/internal/watch"
)

const name = "gitprompt-go"

func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("verbose", false, "enable verbose logging")
	showVersion := fs.Bool("version", false, "print version information and exit")
	watchRepo := fs.Bool("watch", false, "print again whenever the repository changes")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", name, buildinfo.VersionWithTags())
		fmt.Fprintf(stdout, "backend: %s\n", git.BackendVersion())
		return nil
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	svc, err := git.Open(".")
	if err != nil {
		return err
	}
	report := prompt.Collect(svc, git.DefaultUpstreamRemote)
	if _, err := report.WriteTo(stdout); err != nil {
		return err
	}
	if !*watchRepo {
		return report.Err()
	}

	slog.Debug("watching repository", slog.String("path", svc.RepoPath()))
	return watch.Run(ctx, svc.RepoPath(), svc.GitDir(), watch.DefaultDebounceDelay, func() {
		report := prompt.Collect(svc, git.DefaultUpstreamRemote)
		if _, err := io.WriteString(stdout, "\n"); err != nil {
			slog.Error("write output", slog.Any("error", err))
			return
		}
		if _, err := report.WriteTo(stdout); err != nil {
			slog.Error("write output", slog.Any("error", err))
		}
	})
}

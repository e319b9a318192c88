// Package main implements a disassembler for C166 firmware images
package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/retroenv/c166disasm/internal/cli"
	"github.com/retroenv/c166disasm/internal/config"
	"github.com/retroenv/c166disasm/internal/fileprocessor"
	"github.com/retroenv/c166disasm/internal/options"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()
	os.Exit(run(ctx, os.Args[1:], os.Stdout))
}

// run executes the disassembler and returns the process exit code.
func run(ctx context.Context, args []string, stdout io.Writer) int {
	versionString := buildinfo.Version(version, commit, date)

	cmd := cli.NewRootCommand(versionString, func(ctx context.Context, opts options.Program) error {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		fileprocessor.PrintBanner(logger, opts, versionString)
		fileprocessor.PrintInfo(logger, opts)

		err := fileprocessor.ProcessFile(ctx, logger, opts, stdout)
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
		}
		return err
	})

	if err := cli.Execute(ctx, cmd, config.CreateLogger(false, false), args, stdout); err != nil {
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage(stdout)
		}
		return 1
	}
	return 0
}

package main

import (
	"context"
	"io"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"

	"github.com/macropower/namify/internal/cli"
	"github.com/macropower/namify/pkg/version"
)

func main() {
	if err := Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// Execute runs the namify command line with args.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := cli.NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	return fang.Execute(ctx, cmd, //nolint:wrapcheck // Rendered by the error handler.
		fang.WithVersion(version.String()),
		fang.WithErrorHandler(cli.ErrorHandler),
		fang.WithColorSchemeFunc(cli.ColorSchemeFunc),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	)
}

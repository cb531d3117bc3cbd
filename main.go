package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"
	cmd "github.com/idlab-discover/berryroc/cmd/berryroc"
	"github.com/idlab-discover/berryroc/internal/apperr"
	"github.com/idlab-discover/berryroc/internal/ui"
)

// Version is set at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd.SetVersion(Version)
	err := fang.Execute(ctx, cmd.GetRootCmd(), fang.WithColorSchemeFunc(ui.FangColorScheme))
	if errors.Is(err, apperr.ErrCancelled) {
		fmt.Fprintln(os.Stderr, ui.Dim.Render("Cancelled."))
	}
	return apperr.ExitCode(err)
}

// Command vsort sorts numbers or bytes from stdin with the adaptive engine,
// and benchmarks or calibrates it on the current machine.
package main

import (
	"context"
	"os"

	"github.com/agbru/vsort/internal/app"
	apperrors "github.com/agbru/vsort/internal/errors"
)

func main() {
	application, err := app.New(os.Args, os.Stderr, app.WithStdin(os.Stdin))
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(apperrors.ExitCode(err))
	}

	exitCode := application.Run(context.Background(), os.Stdout)
	os.Exit(exitCode)
}

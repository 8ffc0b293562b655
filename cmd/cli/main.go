package main

import (
	"fmt"
	"log"
	"os"

	"abplayground/internal/config"
	"abplayground/internal/errors"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	exitFailure      = 1
	exitInvalidInput = 2
)

func main() {
	_ = godotenv.Load()

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := newRootCmd(appConfig).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

func newRootCmd(appConfig *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "abtest",
		Short:         "Evaluate A/B conversion experiments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newRunCmd(appConfig),
		newBatchCmd(appConfig),
	)
	return rootCmd
}

// exitCode maps rejected input to status 2 and everything else to 1
func exitCode(err error) int {
	if errors.IsUserError(err) || errors.GetCode(err) == errors.CodeValidationError {
		return exitInvalidInput
	}
	return exitFailure
}

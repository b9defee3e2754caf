// Package main provides the simkit CLI entry point.
// simkit is a deterministic startup-simulation core: it runs generated
// boardroom meetings and turns their product ideas into scheduled work plans.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/strtupify/simkit/cmd"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "simkit",
	Short: "Startup simulation toolkit",
	Long: `simkit simulates the early life of a startup.

A boardroom meeting walks a fixed stage sequence with generated dialogue
until the room agrees on a product idea; the work planner turns task drafts
into a precedence-ordered, business-hours schedule per employee.

COMMON WORKFLOWS:
  Run a meeting:       simkit boardroom run --roster team.yaml
  Plan the work:       simkit plan --file plan.yaml
  Reproducible runs:   add --offline --seed 7

Configuration lives in ~/.simkit/config.yaml; every setting has a
SIMKIT_* environment override. The oracle API key is read from the
system keyring or the SIMKIT_API_KEY / OPENAI_API_KEY variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(cmd.NewBoardroomCommand(nil))
	rootCmd.AddCommand(cmd.NewPlanCommand(nil))
	rootCmd.AddCommand(cmd.NewVersionCommand())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

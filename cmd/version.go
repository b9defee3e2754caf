package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strtupify/simkit/pkg/buildinfo"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			info := buildinfo.Get("simkit")
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (go %s)\n", info.ServiceName, buildinfo.String(), info.GoVersion)
		},
	}
}

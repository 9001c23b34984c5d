// Command jterm runs the jterm demo application or its diagnostic console.
//
// Usage:
//
//	jterm [run] [--dev] [--config path]   Run the demo
//	jterm console                          Print log lines from --dev apps
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grindlemire/jterm/internal/config"
)

const version = "0.1.0"

type options struct {
	dev        bool
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "jterm",
		Short:         "Terminal widget toolkit demo",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().BoolVar(&opts.dev, "dev", false, "stream debug logs to the console")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Run the demo application (default)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runDemo(cmd.Context(), opts)
			},
		},
		&cobra.Command{
			Use:   "console",
			Short: "Start the diagnostic console",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runConsole(cmd.Context(), opts)
			},
		},
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

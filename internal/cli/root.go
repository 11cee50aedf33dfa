// Package cli defines the Cobra command tree for the nexcai CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// version, commit, date are set via -ldflags at build time.
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "nexcai",
	Short: "Personal AI assistant with routed agents and persistent memory",
	Long: `NEXCAI is a personal assistant shell around a local or hosted LLM.

It routes each query to a weather, calendar, or general conversation
agent, keeps a short-term conversation buffer, and remembers personal
facts across sessions in a semantic long-term memory.

Run 'nexcai chat' to start a conversation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute(v, c, d string) {
	version, commit, date = v, c, d
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(
		newInitCmd(),
		newChatCmd(),
		newAskCmd(),
		newRememberCmd(),
		newRecallCmd(),
		newImportCmd(),
		newStatusCmd(),
		newSetupCmd(),
		newMCPCmd(),
		newVersionCmd(),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("nexcai %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the frontdesk application
var rootCmd = &cobra.Command{
	Use:   "frontdesk",
	Short: "MCP front-desk assistant for a small business",
	Long: `frontdesk is an MCP (Model Context Protocol) server that gives AI
assistants the tools of a small-business front desk: checking calendar
availability, booking appointments, searching the business document
corpus, and generating marketing collateral.

All appointment times are interpreted in the business's home time zone.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "frontdesk version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}

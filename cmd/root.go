package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the cursor-todo application
var rootCmd = &cobra.Command{
	Use:   "cursor-todo",
	Short: "Daily to-do web app backed by a hosted table store",
	Long: `cursor-todo serves a per-day to-do list as a small web application.

Tasks live in a hosted table store and accounts authenticate against its
auth endpoint; this process holds no state of its own beyond the
signed-in browser sessions.`,
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
	rootCmd.SetVersionTemplate(`{{printf "cursor-todo version %s\n" .Version}}`)

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

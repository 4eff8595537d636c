package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pactlens/pactlens/internal/cli/commands"
	"github.com/pactlens/pactlens/internal/logger"
)

var version = "dev" // Will be set during build

var rootCmd = &cobra.Command{
	Use:   "pactlens",
	Short: "Pactlens - terminal client for the contract review service",
	Long: `Pactlens CLI - Administer contract reviews from the terminal.

Authenticate once, then move between views (dashboard, contracts, reviews,
rules, users). Recently used accounts are kept for one-step switching.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := os.Getenv("LOG_LEVEL")
		if level == "" {
			level = "warn"
		}
		logger.Init(level, os.Getenv("LOG_FORMAT"))
	},
}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("pactlens version %s\n", version)
		},
	})

	rootCmd.AddCommand(commands.NewInitCmd())
	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewWhoamiCmd())
	rootCmd.AddCommand(commands.NewAccountsCmd())
	rootCmd.AddCommand(commands.NewSwitchCmd())
	rootCmd.AddCommand(commands.NewForgetCmd())
	rootCmd.AddCommand(commands.NewOpenCmd())
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

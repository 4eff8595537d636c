package commands

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/pactlens/pactlens/internal/cli/userconfig"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <server-url>",
		Short: "Configure the Pactlens server to connect to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(args[0])
		},
	}
}

func runInit(serverURL string) error {
	u, err := url.Parse(serverURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server URL %q (expected e.g. https://review.example.com)", serverURL)
	}

	if err := userconfig.SetServerURL(serverURL); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Printf("Configured server %s\n", serverURL)
	fmt.Println("Run 'pactlens login' to authenticate.")
	return nil
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout()
		},
	}
}

func runLogout() error {
	s, err := buildStack()
	if err != nil {
		return err
	}

	if !s.session.HasCredential() {
		fmt.Println("Not logged in.")
		return nil
	}

	s.session.Logout()
	fmt.Println("✓ Logged out. The account remains available for 'pactlens switch'.")
	return nil
}

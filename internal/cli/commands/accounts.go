package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewAccountsCmd creates the accounts command
func NewAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List recently used accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccounts()
		},
	}
}

func runAccounts() error {
	s, err := buildStack()
	if err != nil {
		return err
	}

	if p := s.session.Profile(); p == nil && s.session.HasCredential() {
		// Best effort; the listing works without a profile, the active
		// account just cannot be excluded then.
		if err := s.session.FetchProfile(); err != nil {
			fmt.Println("Note: could not verify the active session.")
		}
	}

	entries := s.session.Recents()
	if len(entries) == 0 {
		fmt.Println("No other recent accounts.")
		return nil
	}

	fmt.Println("Recent accounts (switch with 'pactlens switch <username>'):")
	for _, e := range entries {
		fmt.Printf("  %-20s %-25s %-10s last login %s\n",
			e.Username, e.Email, e.Role, e.LoginAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

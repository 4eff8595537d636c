package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewForgetCmd creates the forget command
func NewForgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forget <username>",
		Short: "Remove an account from the recent accounts list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForget(args[0])
		},
	}
}

func runForget(username string) error {
	s, err := buildStack()
	if err != nil {
		return err
	}

	entry, ok := findRecent(s.recents.List(), username)
	if !ok {
		fmt.Printf("No recent account %q.\n", username)
		return nil
	}

	if err := s.recents.Remove(entry.ID); err != nil {
		return err
	}

	fmt.Printf("✓ Forgot account %s\n", username)
	return nil
}

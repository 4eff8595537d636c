package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami()
		},
	}
}

func runWhoami() error {
	s, err := buildStack()
	if err != nil {
		return err
	}

	if !s.session.HasCredential() {
		return fmt.Errorf("not logged in. Run 'pactlens login' first")
	}

	if s.session.Profile() == nil {
		if err := s.session.FetchProfile(); err != nil {
			return err
		}
	}

	p := s.session.Profile()
	fmt.Printf("%s (%s)\n", p.DisplayName(), p.Username)
	fmt.Printf("  Email: %s\n", p.Email)
	fmt.Printf("  Role:  %s", p.Role)
	if p.ReviewerLevel != "" {
		fmt.Printf(" (%s)", p.ReviewerLevel)
	}
	fmt.Println()
	return nil
}

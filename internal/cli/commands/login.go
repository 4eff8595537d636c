package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the Pactlens server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(username, password)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (or set PACTLENS_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set PACTLENS_PASSWORD, will prompt if not provided)")

	return cmd
}

func runLogin(username, password string) error {
	// Environment variables are an alternative for CI use
	if username == "" {
		username = os.Getenv("PACTLENS_USERNAME")
	}
	if password == "" {
		password = os.Getenv("PACTLENS_PASSWORD")
	}

	if username == "" {
		return fmt.Errorf("username is required (use --username flag or PACTLENS_USERNAME env var)")
	}

	if password == "" {
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Println()
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or PACTLENS_PASSWORD env var)")
		}
	}

	s, err := buildStack()
	if err != nil {
		return err
	}

	if err := s.session.Login(username, password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Println("✓ Login successful!")
	if p := s.session.Profile(); p != nil {
		fmt.Printf("  User: %s (%s)\n", p.DisplayName(), p.Email)
		fmt.Printf("  Role: %s", p.Role)
		if p.ReviewerLevel != "" {
			fmt.Printf(" (%s)", p.ReviewerLevel)
		}
		fmt.Println()
	}

	return nil
}

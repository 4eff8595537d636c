package commands

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/pactlens/pactlens/internal/cli/recents"
)

// NewSwitchCmd creates the switch command
func NewSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switch [username]",
		Short: "Switch to a recently used account without re-entering credentials",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := ""
			if len(args) == 1 {
				username = args[0]
			}
			return runSwitch(username)
		},
	}
}

func runSwitch(username string) error {
	s, err := buildStack()
	if err != nil {
		return err
	}

	entries := s.session.Recents()
	if len(entries) == 0 {
		return fmt.Errorf("no recent accounts to switch to. Run 'pactlens login' first")
	}

	var entry recents.Entry
	if username != "" {
		e, ok := findRecent(entries, username)
		if !ok {
			return fmt.Errorf("no recent account %q. See 'pactlens accounts'", username)
		}
		entry = e
	} else {
		e, err := promptAccountSelection(entries)
		if err != nil {
			return err
		}
		entry = e
	}

	if err := s.session.SwitchAccount(entry); err != nil {
		return err
	}

	p := s.session.Profile()
	fmt.Printf("✓ Switched to %s (%s)\n", p.DisplayName(), p.Username)
	return nil
}

// promptAccountSelection shows an interactive prompt over the recent accounts
func promptAccountSelection(entries []recents.Entry) (recents.Entry, error) {
	type accountOption struct {
		Label string
		Entry recents.Entry
	}

	options := make([]accountOption, len(entries))
	for i, e := range entries {
		options[i] = accountOption{
			Label: fmt.Sprintf("%s (%s, %s)", e.DisplayName(), e.Username, e.Role),
			Entry: e,
		}
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ .Label | cyan }}",
		Inactive: "  {{ .Label }}",
		Selected: "{{ .Label | green }}",
	}

	prompt := promptui.Select{
		Label:     "Select an account",
		Items:     options,
		Templates: templates,
		Size:      recents.MaxRecent,
	}

	index, _, err := prompt.Run()
	if err != nil {
		return recents.Entry{}, fmt.Errorf("account selection cancelled: %w", err)
	}

	return options[index].Entry, nil
}

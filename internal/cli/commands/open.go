package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pactlens/pactlens/internal/cli/nav"
)

// NewOpenCmd creates the open command
func NewOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <view>",
		Short: "Open an application view (dashboard, contracts, reviews, rules, users)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(args[0])
		},
	}
}

func runOpen(view string) error {
	s, err := buildStack()
	if err != nil {
		return err
	}

	decision, err := s.guard.CheckName(view)
	if err != nil {
		return err
	}

	// Follow at most one redirect; redirect targets never redirect again for
	// the same session state.
	target := view
	if decision.Action == nav.Redirect {
		if decision.Target == nav.LoginRoute {
			return fmt.Errorf("cannot open %s: %s. Run 'pactlens login'", view, decision.Reason)
		}
		fmt.Printf("Cannot open %s (%s); showing %s instead.\n", view, decision.Reason, decision.Target)
		target = decision.Target
	}

	return s.render(target)
}

// render fetches and prints the listing behind a view. Rendering is plain
// CRUD display; all interesting behavior happened in the guard and the
// HTTP client by the time we get here.
func (s *stack) render(view string) error {
	switch view {
	case nav.LoginRoute:
		fmt.Println("Run 'pactlens login' to authenticate.")
		return nil
	case nav.DefaultRoute:
		return s.renderDashboard()
	case "contracts":
		contracts, err := s.client.ListContracts()
		if err != nil {
			return err
		}
		fmt.Printf("Contracts (%d):\n", len(contracts))
		for _, c := range contracts {
			fmt.Printf("  %-30s %-12s created %s\n", c.Title, c.Status, c.CreatedAt.Local().Format("2006-01-02"))
		}
		return nil
	case "reviews":
		reviews, err := s.client.ListReviews()
		if err != nil {
			return err
		}
		fmt.Printf("Reviews (%d):\n", len(reviews))
		for _, r := range reviews {
			fmt.Printf("  contract %-26s %-12s reviewer %s\n", r.ContractID, r.Status, r.Reviewer)
		}
		return nil
	case "rules":
		rules, err := s.client.ListRules()
		if err != nil {
			return err
		}
		fmt.Printf("Rules (%d):\n", len(rules))
		for _, r := range rules {
			state := "disabled"
			if r.Enabled {
				state = "enabled"
			}
			fmt.Printf("  %-30s risk=%-8s %s\n", r.Name, r.RiskLevel, state)
		}
		return nil
	case "users":
		users, err := s.client.ListUsers()
		if err != nil {
			return err
		}
		fmt.Printf("Users (%d):\n", len(users))
		for _, u := range users {
			level := u.ReviewerLevel
			if level == "" {
				level = "-"
			}
			fmt.Printf("  %-20s %-25s %-10s %s\n", u.Username, u.Email, u.Role, level)
		}
		return nil
	default:
		return fmt.Errorf("view %q has no renderer", view)
	}
}

func (s *stack) renderDashboard() error {
	contracts, err := s.client.ListContracts()
	if err != nil {
		return err
	}
	reviews, err := s.client.ListReviews()
	if err != nil {
		return err
	}

	pending := 0
	for _, r := range reviews {
		if strings.EqualFold(r.Status, "pending") {
			pending++
		}
	}

	fmt.Println("Dashboard")
	fmt.Printf("  Contracts:       %d\n", len(contracts))
	fmt.Printf("  Reviews:         %d (%d pending)\n", len(reviews), pending)
	if p := s.session.Profile(); p != nil {
		fmt.Printf("  Signed in as:    %s (%s)\n", p.DisplayName(), p.Role)
	}
	return nil
}

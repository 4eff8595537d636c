package api

import "time"

// Roles assigned by the server.
const (
	RoleAdmin    = "admin"
	RoleReviewer = "reviewer"
	RoleDrafter  = "drafter"
)

// Profile represents the authenticated user as returned by
// GET /api/users/users/me/. Immutable once received; replaced wholesale on
// re-fetch.
type Profile struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	RealName      string `json:"real_name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	ReviewerLevel string `json:"reviewer_level,omitempty"`
}

// DisplayName returns the name to show in listings, falling back to the
// username when no real name is set.
func (p Profile) DisplayName() string {
	if p.RealName != "" {
		return p.RealName
	}
	return p.Username
}

// Contract represents a contract summary row
type Contract struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Review represents a contract review summary row
type Review struct {
	ID         string `json:"id"`
	ContractID string `json:"contract_id"`
	Status     string `json:"status"`
	Reviewer   string `json:"reviewer"`
}

// Rule represents a review rule
type Rule struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	RiskLevel string `json:"risk_level"`
	Enabled   bool   `json:"enabled"`
}

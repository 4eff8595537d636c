package devserver

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// seed creates the first admin user and a small working set of records when
// the database is empty, so a freshly started devserver is usable right away.
func (s *Server) seed() error {
	var count int64
	if err := s.db.Model(&User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.config.Auth.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &User{
		Username:     s.config.Auth.AdminUsername,
		Email:        s.config.Auth.AdminEmail,
		RealName:     "Administrator",
		Role:         "admin",
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}
	s.logger.Info().Str("username", admin.Username).Msg("Seeded admin user")

	contracts := []Contract{
		{Title: "Master Services Agreement - Acme", Status: "in_review"},
		{Title: "NDA - Globex", Status: "approved"},
		{Title: "Supply Contract - Initech", Status: "draft"},
	}
	if err := s.db.Create(&contracts).Error; err != nil {
		return err
	}

	reviews := []Review{
		{ContractID: contracts[0].ID, Status: "pending", Reviewer: admin.Username},
		{ContractID: contracts[1].ID, Status: "completed", Reviewer: admin.Username},
	}
	if err := s.db.Create(&reviews).Error; err != nil {
		return err
	}

	rules := []Rule{
		{Name: "Unlimited liability clause", RiskLevel: "high", Enabled: true},
		{Name: "Auto-renewal term", RiskLevel: "medium", Enabled: true},
		{Name: "Missing governing law", RiskLevel: "low", Enabled: false},
	}
	return s.db.Create(&rules).Error
}

// CreateUser inserts a user with a bcrypt-hashed password. Used by tests and
// local tooling to add accounts beyond the seeded admin.
func (s *Server) CreateUser(username, email, realName, role, reviewerLevel, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Username:      username,
		Email:         email,
		RealName:      realName,
		Role:          role,
		ReviewerLevel: reviewerLevel,
		PasswordHash:  string(hash),
		IsActive:      true,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

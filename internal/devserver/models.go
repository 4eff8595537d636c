package devserver

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// BaseModel provides common fields and an auto-generated ULID for all models
type BaseModel struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(26)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = ulid.Make().String()
	}
	return nil
}

// User represents an account on the development server
type User struct {
	BaseModel
	Username      string `json:"username" gorm:"uniqueIndex;not null"`
	Email         string `json:"email" gorm:"uniqueIndex;not null"`
	RealName      string `json:"real_name"`
	Role          string `json:"role" gorm:"not null;default:drafter"`
	ReviewerLevel string `json:"reviewer_level,omitempty"`
	PasswordHash  string `json:"-" gorm:"not null"`
	IsActive      bool   `json:"is_active" gorm:"not null;default:true"`
}

// Contract represents a contract under review
type Contract struct {
	BaseModel
	Title  string `json:"title" gorm:"not null"`
	Status string `json:"status" gorm:"not null;default:draft"`
}

// Review represents a review of a contract
type Review struct {
	BaseModel
	ContractID string `json:"contract_id" gorm:"not null;index"`
	Status     string `json:"status" gorm:"not null;default:pending"`
	Reviewer   string `json:"reviewer"`
}

// Rule represents a review rule
type Rule struct {
	BaseModel
	Name      string `json:"name" gorm:"uniqueIndex;not null"`
	RiskLevel string `json:"risk_level" gorm:"not null;default:medium"`
	Enabled   bool   `json:"enabled" gorm:"not null;default:true"`
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Contract{},
		&Review{},
		&Rule{},
	)
}

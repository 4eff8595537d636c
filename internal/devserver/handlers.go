package devserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/pactlens/pactlens/internal/auth"
)

const tokenTTL = 24 * time.Hour

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse mirrors the collaborator's token endpoint shape
type LoginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func (s *Server) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	var user User
	if err := s.db.Where("username = ? AND is_active = ?", req.Username, true).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "No active account found with the given credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "No active account found with the given credentials"})
		return
	}

	access, err := auth.GenerateToken(user.ID, user.Username, user.Role, tokenTTL)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate access token")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	refresh, err := auth.GenerateToken(user.ID, user.Username, user.Role, 7*24*time.Hour)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate refresh token")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Access: access, Refresh: refresh})
}

func (s *Server) me(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication required"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) listUsers(c *gin.Context) {
	var users []User
	if err := s.db.Order("created_at").Find(&users).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list users")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) listContracts(c *gin.Context) {
	var contracts []Contract
	if err := s.db.Order("created_at desc").Find(&contracts).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list contracts")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, contracts)
}

func (s *Server) listReviews(c *gin.Context) {
	var reviews []Review
	if err := s.db.Order("created_at desc").Find(&reviews).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list reviews")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (s *Server) listRules(c *gin.Context) {
	var rules []Rule
	if err := s.db.Order("name").Find(&rules).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list rules")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, rules)
}

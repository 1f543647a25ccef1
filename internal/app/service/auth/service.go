package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/irontrack/gymdesk/internal/clock"
	"github.com/irontrack/gymdesk/internal/models"
	"github.com/irontrack/gymdesk/pkg/apperr"
	"github.com/irontrack/gymdesk/pkg/config"
	"github.com/irontrack/gymdesk/pkg/tool"
)

// Service authenticates back-office users and issues bearer tokens. Gym
// members never log in; this is staff-facing only.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
	cfg *config.Config
	clk clock.Clock
}

func NewService(db *gorm.DB, log *zap.SugaredLogger, cfg *config.Config, clk clock.Clock) *Service {
	return &Service{db: db, log: log, cfg: cfg, clk: clk}
}

type LoginResult struct {
	Token string          `json:"token"`
	Role  models.UserRole `json:"role"`
}

func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, apperr.Validation("email and password are required")
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.State("invalid credentials")
		}
		return nil, apperr.Internal(fmt.Errorf("load user: %w", err))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.State("invalid credentials")
	}

	now := s.clk.Now()
	ttl := time.Duration(s.cfg.Auth.TokenTTLHours) * time.Hour
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(s.cfg.Auth.JWTSecret))
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("sign token: %w", err))
	}
	return &LoginResult{Token: signed, Role: user.Role}, nil
}

// EnsureAdminUser bootstraps the configured admin account on startup so a
// fresh deployment is reachable without manual inserts.
func EnsureAdminUser(cfg *config.Config, db *gorm.DB, log *zap.SugaredLogger) error {
	if cfg.Auth.AdminEmail == "" || cfg.Auth.AdminPassword == "" {
		return nil
	}
	ctx := context.Background()

	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", cfg.Auth.AdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Auth.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &models.User{
		ID:           tool.GenerateUUIDV7(),
		Email:        cfg.Auth.AdminEmail,
		PasswordHash: string(hash),
		Role:         models.UserRoleAdmin,
	}
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}
	log.Infow("admin user created", "email", cfg.Auth.AdminEmail)
	return nil
}

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/luckyroue/wheelplay-backend/internal/config"
	"github.com/luckyroue/wheelplay-backend/internal/models"
	"github.com/luckyroue/wheelplay-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceImpl authenticates staff users and issues JWTs.
type AuthServiceImpl struct {
	userRepo repositories.StaffUserRepository
	jwtCfg   config.JWTConfig
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(userRepo repositories.StaffUserRepository, jwtCfg config.JWTConfig) *AuthServiceImpl {
	return &AuthServiceImpl{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login checks credentials and returns a signed JWT. Bad email and bad
// password produce the same error.
func (s *AuthServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", ErrInvalidCredentials
		}
		slog.Error("Failed to fetch staff user", "error", err)
		return "", fmt.Errorf("failed to fetch user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		slog.Error("Failed to sign JWT", "error", err, "userId", user.ID)
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	slog.Info("Staff user logged in", "userId", user.ID, "role", user.Role)
	return token, nil
}

// Register creates a staff account with a bcrypt-hashed password.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password, role string, tenantID primitive.ObjectID) (*models.StaffUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	switch role {
	case models.RoleSuperAdmin, models.RoleTenantOwner, models.RoleTenantStaff:
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.StaffUser{
		Email:    email,
		Password: string(hashed),
		Role:     role,
		TenantID: tenantID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == repositories.ErrDuplicate {
			return nil, ErrEmailAlreadyInUse
		}
		slog.Error("Failed to create staff user", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	slog.Info("Staff user registered", "userId", user.ID, "role", role)
	return user, nil
}

func (s *AuthServiceImpl) generateToken(user *models.StaffUser) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID.Hex(),
		"email":    user.Email,
		"role":     user.Role,
		"tenantId": user.TenantID.Hex(),
		"iat":      now.Unix(),
		"exp":      now.Add(time.Duration(s.jwtCfg.ExpiresIn) * time.Second).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.Secret))
}

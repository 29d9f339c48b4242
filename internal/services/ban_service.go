package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/luckyroue/wheelplay-backend/internal/models"
	"github.com/luckyroue/wheelplay-backend/internal/repositories"
	"github.com/luckyroue/wheelplay-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure BanServiceImpl implements BanService
var _ BanService = (*BanServiceImpl)(nil)

// BanServiceImpl manages the IP, device, and identity ban lists.
type BanServiceImpl struct {
	banRepo   repositories.BanRepository
	auditRepo repositories.AuditLogRepository
}

// NewBanService creates a new BanServiceImpl
func NewBanService(banRepo repositories.BanRepository, auditRepo repositories.AuditLogRepository) *BanServiceImpl {
	return &BanServiceImpl{banRepo: banRepo, auditRepo: auditRepo}
}

// List returns every ban entry, expired ones included.
func (s *BanServiceImpl) List(ctx context.Context) ([]*models.BanEntry, error) {
	entries, err := s.banRepo.FindAll(ctx)
	if err != nil {
		slog.Error("Failed to list ban entries", "error", err)
		return nil, fmt.Errorf("failed to list bans: %w", err)
	}
	return entries, nil
}

// Add creates a ban entry. Identity values arrive as raw identifiers and are
// hashed before storage so the ban list never holds plaintext PII.
func (s *BanServiceImpl) Add(ctx context.Context, banType, value, reason string, expiresAt *time.Time, actor *models.AuthClaims) (*models.BanEntry, error) {
	switch banType {
	case models.BanTypeIP, models.BanTypeDevice, models.BanTypeIdentity:
	default:
		return nil, fmt.Errorf("unknown ban type %q", banType)
	}
	if value == "" {
		return nil, fmt.Errorf("ban value must not be empty")
	}
	if banType == models.BanTypeIdentity {
		value = utils.HashIdentifier(value)
	}

	entry := &models.BanEntry{
		Type:      banType,
		Value:     value,
		Reason:    reason,
		ExpiresAt: expiresAt,
		CreatedBy: actor.UserID,
	}
	if err := s.banRepo.Add(ctx, entry); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateBan
		}
		slog.Error("Failed to add ban entry", "error", err, "type", banType)
		return nil, fmt.Errorf("failed to add ban: %w", err)
	}

	s.audit(ctx, actor, "ban_added", fmt.Sprintf("%s ban on %s", banType, utils.MaskIdentifier(value)))
	slog.Info("Ban entry added", "type", banType, "value", utils.MaskIdentifier(value), "createdBy", actor.UserID)
	return entry, nil
}

// Remove lifts a ban entry.
func (s *BanServiceImpl) Remove(ctx context.Context, id primitive.ObjectID, actor *models.AuthClaims) error {
	if err := s.banRepo.Remove(ctx, id); err != nil {
		slog.Error("Failed to remove ban entry", "error", err, "banId", id)
		return fmt.Errorf("failed to remove ban: %w", err)
	}
	s.audit(ctx, actor, "ban_removed", "ban "+id.Hex())
	slog.Info("Ban entry removed", "banId", id, "removedBy", actor.UserID)
	return nil
}

func (s *BanServiceImpl) audit(ctx context.Context, actor *models.AuthClaims, action, details string) {
	tenantID, _ := primitive.ObjectIDFromHex(actor.TenantID)
	entry := &models.AuditLog{
		LogID:    uuid.NewString(),
		TenantID: tenantID,
		UserID:   actor.UserID,
		Action:   action,
		Category: "ban",
		Details:  details,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		slog.Error("Failed to write audit log", "error", err, "action", action)
	}
}

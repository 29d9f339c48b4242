package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/luckyroue/wheelplay-backend/internal/metrics"
	"github.com/luckyroue/wheelplay-backend/internal/models"
	"github.com/luckyroue/wheelplay-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure RewardServiceImpl implements RewardService
var _ RewardService = (*RewardServiceImpl)(nil)

// RewardServiceImpl handles staff redemption and verification of reward
// codes, scoped to the acting user's tenant.
type RewardServiceImpl struct {
	rewardRepo repositories.RewardCodeRepository
	prizeRepo  repositories.PrizeRepository
	playerRepo repositories.PlayerRepository
	auditRepo  repositories.AuditLogRepository
	now        func() time.Time
}

// NewRewardService creates a new RewardServiceImpl
func NewRewardService(
	rewardRepo repositories.RewardCodeRepository,
	prizeRepo repositories.PrizeRepository,
	playerRepo repositories.PlayerRepository,
	auditRepo repositories.AuditLogRepository,
) *RewardServiceImpl {
	return &RewardServiceImpl{
		rewardRepo: rewardRepo,
		prizeRepo:  prizeRepo,
		playerRepo: playerRepo,
		auditRepo:  auditRepo,
		now:        time.Now,
	}
}

// Redeem marks an active reward code redeemed. Redemption is one-way: a
// redeemed or expired code stays that way no matter how often it is
// presented again.
func (s *RewardServiceImpl) Redeem(ctx context.Context, code string, actor *models.AuthClaims) (*models.RewardCode, error) {
	reward, err := s.lookup(ctx, code, actor)
	if err != nil {
		return nil, err
	}
	if reward.IsTestCode() {
		return nil, ErrTestCodeUnredeemable
	}

	switch reward.Status {
	case models.RewardStatusRedeemed:
		return nil, ErrRewardAlreadyRedeemed
	case models.RewardStatusExpired:
		return nil, ErrRewardExpired
	}

	now := s.now()
	if now.After(reward.ExpiresAt) {
		// Lazy expiry: the stored status catches up on first touch after the
		// deadline.
		if err := s.rewardRepo.MarkExpired(ctx, reward.Code); err != nil {
			slog.Error("Failed to mark reward expired", "error", err, "code", reward.Code)
		}
		return nil, ErrRewardExpired
	}

	if err := s.rewardRepo.MarkRedeemed(ctx, reward.Code, actor.UserID, now); err != nil {
		if err == mongo.ErrNoDocuments {
			// The status guard rejected the update: a concurrent redemption
			// won the race.
			return nil, ErrRewardAlreadyRedeemed
		}
		slog.Error("Failed to redeem reward", "error", err, "code", reward.Code)
		return nil, fmt.Errorf("failed to redeem reward: %w", err)
	}

	reward.Status = models.RewardStatusRedeemed
	reward.RedeemedAt = now
	reward.RedeemedBy = actor.UserID
	metrics.RewardsRedeemed.Inc()

	s.auditRedemption(ctx, reward, actor)
	slog.Info("Reward redeemed", "code", reward.Code, "redeemedBy", actor.UserID)
	return reward, nil
}

// Verify returns a code's state with its prize and player for the staff
// verify view. Verification never mutates status, except for lazy expiry.
func (s *RewardServiceImpl) Verify(ctx context.Context, code string, actor *models.AuthClaims) (*RewardVerification, error) {
	reward, err := s.lookup(ctx, code, actor)
	if err != nil {
		return nil, err
	}

	if reward.Status == models.RewardStatusActive && s.now().After(reward.ExpiresAt) {
		if err := s.rewardRepo.MarkExpired(ctx, reward.Code); err != nil {
			slog.Error("Failed to mark reward expired", "error", err, "code", reward.Code)
		} else {
			reward.Status = models.RewardStatusExpired
		}
	}

	verification := &RewardVerification{Reward: reward}
	prizes, err := s.prizeRepo.FindByCampaign(ctx, reward.CampaignID)
	if err != nil {
		slog.Error("Failed to fetch prizes for verification", "error", err, "code", reward.Code)
	} else {
		for _, p := range prizes {
			if p.ID == reward.PrizeID {
				verification.Prize = p
				break
			}
		}
	}
	player, err := s.playerRepo.FindByID(ctx, reward.PlayerID)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			slog.Error("Failed to fetch player for verification", "error", err, "code", reward.Code)
		}
	} else {
		verification.Player = player
	}
	return verification, nil
}

// lookup fetches a code within the actor's tenant. Codes are normalized to
// uppercase so staff can type them case-insensitively.
func (s *RewardServiceImpl) lookup(ctx context.Context, code string, actor *models.AuthClaims) (*models.RewardCode, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrRewardNotFound
	}

	tenantID := primitive.NilObjectID
	if actor.Role != models.RoleSuperAdmin {
		var err error
		tenantID, err = primitive.ObjectIDFromHex(actor.TenantID)
		if err != nil {
			return nil, ErrForbidden
		}
	}

	reward, err := s.rewardRepo.FindByCodeAndTenant(ctx, code, tenantID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrRewardNotFound
		}
		slog.Error("Failed to fetch reward code", "error", err)
		return nil, fmt.Errorf("failed to fetch reward code: %w", err)
	}
	return reward, nil
}

func (s *RewardServiceImpl) auditRedemption(ctx context.Context, reward *models.RewardCode, actor *models.AuthClaims) {
	entry := &models.AuditLog{
		LogID:    uuid.NewString(),
		TenantID: reward.TenantID,
		UserID:   actor.UserID,
		Action:   "reward_redeemed",
		Category: "reward",
		Details:  "code " + reward.Code,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		slog.Error("Failed to write audit log", "error", err, "action", "reward_redeemed")
	}
}

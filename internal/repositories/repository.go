package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/luckyroue/wheelplay-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sentinel errors surfaced by repository implementations. Not-found lookups
// return mongo.ErrNoDocuments from the driver, matching FindOne semantics.
var (
	// ErrDuplicate reports a unique-index violation (reward code collision,
	// duplicate ban entry, duplicate slug).
	ErrDuplicate = errors.New("duplicate entry")
	// ErrStockExhausted reports that a conditional stock decrement matched no
	// document because remaining stock was already zero.
	ErrStockExhausted = errors.New("prize stock exhausted")
	// ErrLimitReached reports that a conditional counter increment was
	// refused because the counter is at its cap.
	ErrLimitReached = errors.New("play limit reached")
)

// TenantRepository defines the interface for tenant data operations
type TenantRepository interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tenant, error)
}

// CampaignRepository defines the interface for campaign data operations
type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error)
	// FindBySlug restricts the lookup to the given statuses when statuses is
	// non-empty.
	FindBySlug(ctx context.Context, slug string, statuses []string) (*models.Campaign, error)
	Update(ctx context.Context, campaign *models.Campaign) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PrizeRepository defines the interface for prize data operations
type PrizeRepository interface {
	CreateMany(ctx context.Context, prizes []*models.Prize) error
	FindByCampaign(ctx context.Context, campaignID primitive.ObjectID) ([]*models.Prize, error)
	// DecrementStock atomically decrements stockRemaining if it is positive;
	// returns ErrStockExhausted when the guard matches no document.
	DecrementStock(ctx context.Context, prizeID primitive.ObjectID) error
	// RestoreStock gives a secured stock unit back when the play fails after
	// the decrement, never above stockTotal.
	RestoreStock(ctx context.Context, prizeID primitive.ObjectID) error
	DeleteByCampaign(ctx context.Context, campaignID primitive.ObjectID) error
}

// PlayerRepository defines the interface for player data operations
type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Player, error)
	FindByCampaignAndEmailHash(ctx context.Context, campaignID primitive.ObjectID, emailHash string) (*models.Player, error)
	IncrementPlays(ctx context.Context, playerID primitive.ObjectID) error
	DeleteByCampaign(ctx context.Context, campaignID primitive.ObjectID) error
}

// PlayRepository defines the interface for the append-only play ledger
type PlayRepository interface {
	Create(ctx context.Context, play *models.Play) error
	CountByCampaignAndIPSince(ctx context.Context, campaignID primitive.ObjectID, ip string, since time.Time) (int64, error)
	CountNonTestByCampaign(ctx context.Context, campaignID primitive.ObjectID) (int64, error)
	DeleteTestByCampaign(ctx context.Context, campaignID primitive.ObjectID) error
}

// PlayCounterRepository is the atomic increment-and-check quota primitive.
type PlayCounterRepository interface {
	// Reserve increments the (scope, key) counter only while count < limit,
	// creating the counter on first use. Returns ErrLimitReached when the cap
	// is hit. A limit <= 0 means unbounded.
	Reserve(ctx context.Context, scope, key string, limit int) error
	// Release undoes a reservation after a failed play, never below zero.
	Release(ctx context.Context, scope, key string) error
}

// RewardCodeRepository defines the interface for reward code operations
type RewardCodeRepository interface {
	// Create inserts a reward code; returns ErrDuplicate on code collision.
	Create(ctx context.Context, reward *models.RewardCode) error
	// FindByCodeAndTenant looks a code up within one tenant; a zero tenant ID
	// searches all tenants.
	FindByCodeAndTenant(ctx context.Context, code string, tenantID primitive.ObjectID) (*models.RewardCode, error)
	// MarkRedeemed transitions active->redeemed; the guard on the current
	// status makes re-redemption a no-match (mongo.ErrNoDocuments).
	MarkRedeemed(ctx context.Context, code string, redeemedBy string, at time.Time) error
	MarkExpired(ctx context.Context, code string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// BanRepository defines the interface for ban list operations
type BanRepository interface {
	// FindActive returns the ban entry for (banType, value) that is in force
	// at the given instant, or mongo.ErrNoDocuments.
	FindActive(ctx context.Context, banType, value string, now time.Time) (*models.BanEntry, error)
	Add(ctx context.Context, entry *models.BanEntry) error
	Remove(ctx context.Context, id primitive.ObjectID) error
	FindAll(ctx context.Context) ([]*models.BanEntry, error)
}

// FraudFlagRepository defines the interface for fraud flag operations
type FraudFlagRepository interface {
	Create(ctx context.Context, flag *models.FraudFlag) error
}

// ConsentRepository defines the interface for consent record operations
type ConsentRepository interface {
	Create(ctx context.Context, consent *models.Consent) error
}

// AuditLogRepository defines the interface for audit log operations
type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}

// StaffUserRepository defines the interface for staff account operations
type StaffUserRepository interface {
	Create(ctx context.Context, user *models.StaffUser) error
	FindByEmail(ctx context.Context, email string) (*models.StaffUser, error)
}

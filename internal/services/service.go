package services

import (
	"context"
	"time"

	"github.com/luckyroue/wheelplay-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlayRequest is a single inbound play attempt after transport decoding.
type PlayRequest struct {
	Email            string
	Phone            string
	FirstName        string
	ConsentAccepted  bool
	MarketingConsent bool
	DeviceHash       string
	IPAddress        string
	// TestToken must match the campaign's test link token when the campaign
	// is in test mode.
	TestToken string
}

// RewardPayload is the winning-play response fragment handed to the player.
type RewardPayload struct {
	Code       string    `json:"code"`
	ExpiresAt  time.Time `json:"expires_at"`
	PrizeLabel string    `json:"prize_label"`
	PrizeValue string    `json:"prize_value"`
}

// PlayResult is the outcome of one play: whether a prize was won, its index
// in the full prize list (for the wheel animation), and the reward if any.
type PlayResult struct {
	Won        bool           `json:"won"`
	PrizeIndex int            `json:"prize_index"`
	Reward     *RewardPayload `json:"reward"`
	IsTest     bool           `json:"is_test"`
}

// CampaignView is the public, player-facing campaign payload. Prize stock,
// weights, and every internal campaign field are stripped.
type CampaignView struct {
	Title        string               `json:"title"`
	Description  string               `json:"description,omitempty"`
	Slug         string               `json:"slug"`
	IntroText    string               `json:"intro_text,omitempty"`
	CtaText      string               `json:"cta_text,omitempty"`
	TermsText    string               `json:"terms_text,omitempty"`
	LegalText    string               `json:"legal_text,omitempty"`
	RequirePhone bool                 `json:"require_phone"`
	IsTest       bool                 `json:"is_test"`
	Prizes       []models.PublicPrize `json:"prizes"`
}

// PrizeInput describes one prize in a campaign create/duplicate request.
type PrizeInput struct {
	Label          string `json:"label" binding:"required"`
	PrizeType      string `json:"prize_type"`
	Value          string `json:"value"`
	Weight         int    `json:"weight"`
	StockTotal     int    `json:"stock_total"`
	ExpirationDays int    `json:"expiration_days"`
	IsConsolation  bool   `json:"is_consolation"`
	DisplayColor   string `json:"display_color"`
}

// CampaignInput is a campaign create request.
type CampaignInput struct {
	Title            string       `json:"title" binding:"required"`
	Description      string       `json:"description"`
	Slug             string       `json:"slug"`
	Timezone         string       `json:"timezone"`
	StartsAt         time.Time    `json:"starts_at"`
	EndsAt           time.Time    `json:"ends_at"`
	MaxPlaysPerEmail int          `json:"max_plays_per_email"`
	MaxPlaysPerPhone int          `json:"max_plays_per_phone"`
	RequirePhone     bool         `json:"require_phone"`
	IntroText        string       `json:"intro_text"`
	CtaText          string       `json:"cta_text"`
	TermsText        string       `json:"terms_text"`
	LegalText        string       `json:"legal_text"`
	Prizes           []PrizeInput `json:"prizes"`
}

// RewardVerification bundles a reward code with its prize and player for the
// staff verify view.
type RewardVerification struct {
	Reward *models.RewardCode `json:"reward"`
	Prize  *models.Prize      `json:"prize"`
	Player *models.Player     `json:"player"`
}

// PlayService is the play-fairness engine: ban gate, eligibility, weighted
// draw, reward issuance, and ledger append for one play request.
type PlayService interface {
	// GetPlayableCampaign fetches the public view of an active or test
	// campaign. Test campaigns require the matching test link token.
	GetPlayableCampaign(ctx context.Context, slug, testToken string) (*CampaignView, error)
	Play(ctx context.Context, slug string, req *PlayRequest) (*PlayResult, error)
}

// CampaignService manages campaign configuration and the status lifecycle.
type CampaignService interface {
	Create(ctx context.Context, input *CampaignInput, actor *models.AuthClaims) (*models.Campaign, error)
	Get(ctx context.Context, id primitive.ObjectID, actor *models.AuthClaims) (*models.Campaign, []*models.Prize, error)
	// ChangeStatus applies one lifecycle transition; returns the old and new
	// statuses, a *TransitionError for pairs outside the table, or an
	// *ActivationError listing every unmet activation requirement.
	ChangeStatus(ctx context.Context, id primitive.ObjectID, newStatus, reason string, actor *models.AuthClaims) (string, string, error)
	Duplicate(ctx context.Context, id primitive.ObjectID, actor *models.AuthClaims) (*models.Campaign, error)
	GenerateTestLink(ctx context.Context, id primitive.ObjectID, actor *models.AuthClaims) (string, error)
	Delete(ctx context.Context, id primitive.ObjectID, actor *models.AuthClaims) error
}

// RewardService handles staff redemption and verification of reward codes.
type RewardService interface {
	Redeem(ctx context.Context, code string, actor *models.AuthClaims) (*models.RewardCode, error)
	Verify(ctx context.Context, code string, actor *models.AuthClaims) (*RewardVerification, error)
}

// BanService manages the IP/device/identity ban lists.
type BanService interface {
	List(ctx context.Context) ([]*models.BanEntry, error)
	// Add creates a ban entry. Identity values are raw identifiers and are
	// hashed before storage; IP and device values are stored as given.
	Add(ctx context.Context, banType, value, reason string, expiresAt *time.Time, actor *models.AuthClaims) (*models.BanEntry, error)
	Remove(ctx context.Context, id primitive.ObjectID, actor *models.AuthClaims) error
}

// AuthService authenticates staff users.
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (string, error)
	Register(ctx context.Context, email, password, role string, tenantID primitive.ObjectID) (*models.StaffUser, error)
}

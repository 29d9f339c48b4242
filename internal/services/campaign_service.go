package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/luckyroue/wheelplay-backend/internal/models"
	"github.com/luckyroue/wheelplay-backend/internal/repositories"
	"github.com/luckyroue/wheelplay-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure CampaignServiceImpl implements CampaignService
var _ CampaignService = (*CampaignServiceImpl)(nil)

// allowedTransitions is the lifecycle table. Missing pairs are invalid;
// ended has no outgoing transitions.
var allowedTransitions = map[string][]string{
	models.CampaignStatusDraft:  {models.CampaignStatusTest, models.CampaignStatusActive},
	models.CampaignStatusTest:   {models.CampaignStatusActive, models.CampaignStatusDraft},
	models.CampaignStatusActive: {models.CampaignStatusPaused, models.CampaignStatusEnded},
	models.CampaignStatusPaused: {models.CampaignStatusActive, models.CampaignStatusEnded},
	models.CampaignStatusEnded:  {},
}

// CampaignServiceImpl manages campaign configuration and the status
// lifecycle, scoped to the acting staff user's tenant.
type CampaignServiceImpl struct {
	campaignRepo repositories.CampaignRepository
	prizeRepo    repositories.PrizeRepository
	playRepo     repositories.PlayRepository
	playerRepo   repositories.PlayerRepository
	auditRepo    repositories.AuditLogRepository
}

// NewCampaignService creates a new CampaignServiceImpl
func NewCampaignService(
	campaignRepo repositories.CampaignRepository,
	prizeRepo repositories.PrizeRepository,
	playRepo repositories.PlayRepository,
	playerRepo repositories.PlayerRepository,
	auditRepo repositories.AuditLogRepository,
) *CampaignServiceImpl {
	return &CampaignServiceImpl{
		campaignRepo: campaignRepo,
		prizeRepo:    prizeRepo,
		playRepo:     playRepo,
		playerRepo:   playerRepo,
		auditRepo:    auditRepo,
	}
}

// Create persists a new draft campaign with its prize list.
func (s *CampaignServiceImpl) Create(ctx context.Context, input *CampaignInput, actor *models.AuthClaims) (*models.Campaign, error) {
	tenantID, err := actorTenantID(actor)
	if err != nil {
		return nil, err
	}

	slug := input.Slug
	if slug == "" {
		slug = utils.Slugify(input.Title)
	}

	campaign := &models.Campaign{
		TenantID:         tenantID,
		Title:            input.Title,
		Description:      input.Description,
		Slug:             slug,
		Status:           models.CampaignStatusDraft,
		Timezone:         input.Timezone,
		StartsAt:         input.StartsAt,
		EndsAt:           input.EndsAt,
		MaxPlaysPerEmail: input.MaxPlaysPerEmail,
		MaxPlaysPerPhone: input.MaxPlaysPerPhone,
		RequirePhone:     input.RequirePhone,
		IntroText:        input.IntroText,
		CtaText:          input.CtaText,
		TermsText:        input.TermsText,
		LegalText:        input.LegalText,
		CreatedBy:        actor.UserID,
	}
	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			// Slug collision; disambiguate with a short random suffix rather
			// than failing the whole create.
			campaign.Slug = slug + "-" + uuid.NewString()[:8]
			if err := s.campaignRepo.Create(ctx, campaign); err != nil {
				slog.Error("Failed to create campaign after slug retry", "error", err, "slug", campaign.Slug)
				return nil, fmt.Errorf("failed to create campaign: %w", err)
			}
		} else {
			slog.Error("Failed to create campaign", "error", err, "slug", slug)
			return nil, fmt.Errorf("failed to create campaign: %w", err)
		}
	}

	prizes := make([]*models.Prize, 0, len(input.Prizes))
	for _, in := range input.Prizes {
		prizes = append(prizes, &models.Prize{
			CampaignID:     campaign.ID,
			TenantID:       tenantID,
			Label:          in.Label,
			PrizeType:      in.PrizeType,
			Value:          in.Value,
			Weight:         in.Weight,
			StockTotal:     in.StockTotal,
			StockRemaining: in.StockTotal,
			ExpirationDays: in.ExpirationDays,
			IsConsolation:  in.IsConsolation,
			DisplayColor:   in.DisplayColor,
		})
	}
	if err := s.prizeRepo.CreateMany(ctx, prizes); err != nil {
		slog.Error("Failed to create prizes", "error", err, "campaignId", campaign.ID)
		return nil, fmt.Errorf("failed to create prizes: %w", err)
	}

	s.audit(ctx, tenantID, actor, "campaign_created", fmt.Sprintf("campaign %s (%s)", campaign.Title, campaign.ID.Hex()))
	slog.Info("Campaign created", "campaignId", campaign.ID, "tenantId", tenantID, "slug", campaign.Slug)
	return campaign, nil
}

// Get returns a campaign with its full prize list for the staff dashboard.
func (s *CampaignServiceImpl) Get(ctx context.Context, id primitive.ObjectID, actor *models.AuthClaims) (*models.Campaign, []*models.Prize, error) {
	campaign, err := s.findOwned(ctx, id, actor)
	if err != nil {
		return nil, nil, err
	}
	prizes, err := s.prizeRepo.FindByCampaign(ctx, campaign.ID)
	if err != nil {
		slog.Error("Failed to fetch prizes", "error", err, "campaignId", id)
		return nil, nil, fmt.Errorf("failed to fetch prizes: %w", err)
	}
	return campaign, prizes, nil
}

// ChangeStatus applies one lifecycle transition. Activation runs the full
// readiness checklist and reports every unmet requirement at once.
func (s *CampaignServiceImpl) ChangeStatus(ctx context.Context, id primitive.ObjectID, newStatus, reason string, actor *models.AuthClaims) (string, string, error) {
	campaign, err := s.findOwned(ctx, id, actor)
	if err != nil {
		return "", "", err
	}
	oldStatus := campaign.Status

	// Same-status requests are not in the table either.
	if !transitionAllowed(oldStatus, newStatus) {
		return "", "", &TransitionError{From: oldStatus, To: newStatus}
	}

	if newStatus == models.CampaignStatusActive {
		// The readiness checklist guards every entry into active, resuming
		// from paused included: stock can run dry while a campaign is paused.
		if err := s.checkActivation(ctx, campaign); err != nil {
			return "", "", err
		}
		if oldStatus == models.CampaignStatusDraft || oldStatus == models.CampaignStatusTest {
			campaign.ActivatedAt = time.Now()
			campaign.ActivatedBy = actor.UserID
		}
		// Leaving test mode discards test plays so production counts start
		// clean. Test reward codes stay; they are unredeemable anyway.
		if oldStatus == models.CampaignStatusTest {
			if err := s.playRepo.DeleteTestByCampaign(ctx, campaign.ID); err != nil {
				slog.Error("Failed to clear test plays on activation", "error", err, "campaignId", id)
				return "", "", fmt.Errorf("failed to clear test plays: %w", err)
			}
		}
	}
	if newStatus == models.CampaignStatusEnded {
		campaign.EndedAt = time.Now()
	}

	campaign.Status = newStatus
	if err := s.campaignRepo.Update(ctx, campaign); err != nil {
		slog.Error("Failed to update campaign status", "error", err, "campaignId", id)
		return "", "", fmt.Errorf("failed to update campaign: %w", err)
	}

	details := fmt.Sprintf("campaign %s: %s -> %s", id.Hex(), oldStatus, newStatus)
	if reason != "" {
		details += " (" + reason + ")"
	}
	s.audit(ctx, campaign.TenantID, actor, "campaign_status_changed", details)
	slog.Info("Campaign status changed", "campaignId", id, "from", oldStatus, "to", newStatus)
	return oldStatus, newStatus, nil
}

// checkActivation runs the activation checklist and collects every failure.
func (s *CampaignServiceImpl) checkActivation(ctx context.Context, campaign *models.Campaign) error {
	var problems []string

	prizes, err := s.prizeRepo.FindByCampaign(ctx, campaign.ID)
	if err != nil {
		slog.Error("Failed to fetch prizes for activation check", "error", err, "campaignId", campaign.ID)
		return fmt.Errorf("failed to fetch prizes: %w", err)
	}
	if len(prizes) == 0 {
		problems = append(problems, "campaign has no prizes")
	} else {
		stock := 0
		for _, p := range prizes {
			stock += p.StockRemaining
		}
		if stock <= 0 {
			problems = append(problems, "all prizes are out of stock")
		}
	}
	if strings.TrimSpace(campaign.TermsText) == "" {
		problems = append(problems, "terms text is empty")
	}

	if len(problems) > 0 {
		return &ActivationError{Problems: problems}
	}
	return nil
}

// Duplicate clones a campaign into a fresh draft: configuration and prizes
// copy over with stock reset to full, while plays, players, and rewards stay
// behind.
func (s *CampaignServiceImpl) Duplicate(ctx context.Context, id primitive.ObjectID, actor *models.AuthClaims) (*models.Campaign, error) {
	source, err := s.findOwned(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	prizes, err := s.prizeRepo.FindByCampaign(ctx, source.ID)
	if err != nil {
		slog.Error("Failed to fetch prizes for duplication", "error", err, "campaignId", id)
		return nil, fmt.Errorf("failed to fetch prizes: %w", err)
	}

	clone := *source
	clone.ID = primitive.NilObjectID
	clone.Title = source.Title + " (copy)"
	clone.Slug = source.Slug + "-copy-" + uuid.NewString()[:8]
	clone.Status = models.CampaignStatusDraft
	clone.TestLinkToken = ""
	clone.ActivatedAt = time.Time{}
	clone.ActivatedBy = ""
	clone.EndedAt = time.Time{}
	clone.DeletedAt = time.Time{}
	clone.CreatedBy = actor.UserID
	if err := s.campaignRepo.Create(ctx, &clone); err != nil {
		slog.Error("Failed to create duplicated campaign", "error", err, "sourceId", id)
		return nil, fmt.Errorf("failed to duplicate campaign: %w", err)
	}

	copies := make([]*models.Prize, 0, len(prizes))
	for _, p := range prizes {
		c := *p
		c.ID = primitive.NilObjectID
		c.CampaignID = clone.ID
		c.StockRemaining = c.StockTotal
		copies = append(copies, &c)
	}
	if err := s.prizeRepo.CreateMany(ctx, copies); err != nil {
		slog.Error("Failed to copy prizes", "error", err, "campaignId", clone.ID)
		return nil, fmt.Errorf("failed to copy prizes: %w", err)
	}

	s.audit(ctx, clone.TenantID, actor, "campaign_duplicated", fmt.Sprintf("campaign %s duplicated as %s", id.Hex(), clone.ID.Hex()))
	slog.Info("Campaign duplicated", "sourceId", id, "campaignId", clone.ID)
	return &clone, nil
}

// GenerateTestLink issues (or reuses) the opaque token that lets a browser
// reach a test-mode campaign.
func (s *CampaignServiceImpl) GenerateTestLink(ctx context.Context, id primitive.ObjectID, actor *models.AuthClaims) (string, error) {
	campaign, err := s.findOwned(ctx, id, actor)
	if err != nil {
		return "", err
	}
	if campaign.TestLinkToken != "" {
		return campaign.TestLinkToken, nil
	}
	token, err := utils.GenerateTestToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate test token: %w", err)
	}
	campaign.TestLinkToken = token
	if err := s.campaignRepo.Update(ctx, campaign); err != nil {
		slog.Error("Failed to store test link token", "error", err, "campaignId", id)
		return "", fmt.Errorf("failed to store test token: %w", err)
	}
	return token, nil
}

// Delete removes a campaign. Campaigns that recorded real plays are
// soft-deleted to keep the ledger interpretable; untouched campaigns are
// removed outright along with their prizes and players. Active campaigns
// cannot be deleted.
func (s *CampaignServiceImpl) Delete(ctx context.Context, id primitive.ObjectID, actor *models.AuthClaims) error {
	campaign, err := s.findOwned(ctx, id, actor)
	if err != nil {
		return err
	}
	if campaign.Status == models.CampaignStatusActive {
		return ErrCampaignActive
	}

	realPlays, err := s.playRepo.CountNonTestByCampaign(ctx, campaign.ID)
	if err != nil {
		slog.Error("Failed to count plays for deletion", "error", err, "campaignId", id)
		return fmt.Errorf("failed to count plays: %w", err)
	}

	if realPlays > 0 {
		campaign.Status = models.CampaignStatusDeleted
		campaign.DeletedAt = time.Now()
		if err := s.campaignRepo.Update(ctx, campaign); err != nil {
			slog.Error("Failed to soft-delete campaign", "error", err, "campaignId", id)
			return fmt.Errorf("failed to delete campaign: %w", err)
		}
		s.audit(ctx, campaign.TenantID, actor, "campaign_soft_deleted", "campaign "+id.Hex())
		slog.Info("Campaign soft-deleted", "campaignId", id, "plays", realPlays)
		return nil
	}

	if err := s.prizeRepo.DeleteByCampaign(ctx, campaign.ID); err != nil {
		slog.Error("Failed to delete campaign prizes", "error", err, "campaignId", id)
		return fmt.Errorf("failed to delete prizes: %w", err)
	}
	if err := s.playerRepo.DeleteByCampaign(ctx, campaign.ID); err != nil {
		slog.Error("Failed to delete campaign players", "error", err, "campaignId", id)
		return fmt.Errorf("failed to delete players: %w", err)
	}
	if err := s.playRepo.DeleteTestByCampaign(ctx, campaign.ID); err != nil {
		slog.Error("Failed to delete test plays", "error", err, "campaignId", id)
		return fmt.Errorf("failed to delete test plays: %w", err)
	}
	if err := s.campaignRepo.Delete(ctx, campaign.ID); err != nil {
		slog.Error("Failed to delete campaign", "error", err, "campaignId", id)
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	s.audit(ctx, campaign.TenantID, actor, "campaign_deleted", "campaign "+id.Hex())
	slog.Info("Campaign hard-deleted", "campaignId", id)
	return nil
}

// findOwned fetches a campaign and checks the actor may touch it. A tenant
// mismatch reads as not-found so callers cannot probe other tenants' IDs.
func (s *CampaignServiceImpl) findOwned(ctx context.Context, id primitive.ObjectID, actor *models.AuthClaims) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCampaignNotFound
		}
		slog.Error("Failed to fetch campaign", "error", err, "campaignId", id)
		return nil, fmt.Errorf("failed to fetch campaign: %w", err)
	}
	if campaign.Status == models.CampaignStatusDeleted {
		return nil, ErrCampaignNotFound
	}
	if actor.Role != models.RoleSuperAdmin && campaign.TenantID.Hex() != actor.TenantID {
		return nil, ErrCampaignNotFound
	}
	return campaign, nil
}

func (s *CampaignServiceImpl) audit(ctx context.Context, tenantID primitive.ObjectID, actor *models.AuthClaims, action, details string) {
	entry := &models.AuditLog{
		LogID:    uuid.NewString(),
		TenantID: tenantID,
		UserID:   actor.UserID,
		Action:   action,
		Category: "campaign",
		Details:  details,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		slog.Error("Failed to write audit log", "error", err, "action", action)
	}
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// actorTenantID resolves the tenant scope of a staff actor.
func actorTenantID(actor *models.AuthClaims) (primitive.ObjectID, error) {
	tenantID, err := primitive.ObjectIDFromHex(actor.TenantID)
	if err != nil {
		return primitive.NilObjectID, ErrForbidden
	}
	return tenantID, nil
}

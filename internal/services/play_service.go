package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/luckyroue/wheelplay-backend/internal/config"
	"github.com/luckyroue/wheelplay-backend/internal/metrics"
	"github.com/luckyroue/wheelplay-backend/internal/models"
	"github.com/luckyroue/wheelplay-backend/internal/repositories"
	"github.com/luckyroue/wheelplay-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure PlayServiceImpl implements PlayService
var _ PlayService = (*PlayServiceImpl)(nil)

// playableStatuses are the campaign statuses that accept play requests.
var playableStatuses = []string{models.CampaignStatusActive, models.CampaignStatusTest}

// PlayServiceImpl runs the full play pipeline: ban gate, eligibility,
// weighted draw with atomic stock capture, reward issuance, ledger append.
type PlayServiceImpl struct {
	campaignRepo repositories.CampaignRepository
	prizeRepo    repositories.PrizeRepository
	playerRepo   repositories.PlayerRepository
	playRepo     repositories.PlayRepository
	counterRepo  repositories.PlayCounterRepository
	rewardRepo   repositories.RewardCodeRepository
	banRepo      repositories.BanRepository
	fraudRepo    repositories.FraudFlagRepository
	consentRepo  repositories.ConsentRepository
	tenantRepo   repositories.TenantRepository
	engine       *DrawEngine
	game         config.GameConfig
}

// NewPlayService creates a new PlayServiceImpl
func NewPlayService(
	campaignRepo repositories.CampaignRepository,
	prizeRepo repositories.PrizeRepository,
	playerRepo repositories.PlayerRepository,
	playRepo repositories.PlayRepository,
	counterRepo repositories.PlayCounterRepository,
	rewardRepo repositories.RewardCodeRepository,
	banRepo repositories.BanRepository,
	fraudRepo repositories.FraudFlagRepository,
	consentRepo repositories.ConsentRepository,
	tenantRepo repositories.TenantRepository,
	engine *DrawEngine,
	game config.GameConfig,
) *PlayServiceImpl {
	return &PlayServiceImpl{
		campaignRepo: campaignRepo,
		prizeRepo:    prizeRepo,
		playerRepo:   playerRepo,
		playRepo:     playRepo,
		counterRepo:  counterRepo,
		rewardRepo:   rewardRepo,
		banRepo:      banRepo,
		fraudRepo:    fraudRepo,
		consentRepo:  consentRepo,
		tenantRepo:   tenantRepo,
		engine:       engine,
		game:         game,
	}
}

// GetPlayableCampaign fetches a campaign in a playable status with the
// player-facing prize list (no stock, no weights).
func (s *PlayServiceImpl) GetPlayableCampaign(ctx context.Context, slug, testToken string) (*CampaignView, error) {
	campaign, err := s.findPlayable(ctx, slug, testToken)
	if err != nil {
		return nil, err
	}

	prizes, err := s.prizeRepo.FindByCampaign(ctx, campaign.ID)
	if err != nil {
		slog.Error("Failed to fetch prizes for campaign", "error", err, "campaignId", campaign.ID)
		return nil, fmt.Errorf("failed to fetch prizes: %w", err)
	}

	public := make([]models.PublicPrize, 0, len(prizes))
	for _, p := range prizes {
		public = append(public, p.Public())
	}
	return &CampaignView{
		Title:        campaign.Title,
		Description:  campaign.Description,
		Slug:         campaign.Slug,
		IntroText:    campaign.IntroText,
		CtaText:      campaign.CtaText,
		TermsText:    campaign.TermsText,
		LegalText:    campaign.LegalText,
		RequirePhone: campaign.RequirePhone,
		IsTest:       campaign.IsTestMode(),
		Prizes:       public,
	}, nil
}

// findPlayable resolves a slug to an active or test campaign. Test campaigns
// are only reachable with their test link token; a wrong token reads as
// not-found.
func (s *PlayServiceImpl) findPlayable(ctx context.Context, slug, testToken string) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.FindBySlug(ctx, slug, playableStatuses)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCampaignNotFound
		}
		slog.Error("Failed to fetch campaign by slug", "error", err, "slug", slug)
		return nil, fmt.Errorf("failed to fetch campaign: %w", err)
	}
	if campaign.IsTestMode() && (campaign.TestLinkToken == "" || testToken != campaign.TestLinkToken) {
		return nil, ErrCampaignNotFound
	}
	return campaign, nil
}

// reservation tracks counter slots taken during eligibility so they can be
// given back if the play fails before the ledger append.
type reservation struct {
	scope string
	key   string
}

// Play processes one play attempt end to end.
func (s *PlayServiceImpl) Play(ctx context.Context, slug string, req *PlayRequest) (*PlayResult, error) {
	start := time.Now()
	result, err := s.play(ctx, slug, req)
	metrics.RecordPlay(playOutcome(result, err), time.Since(start).Seconds())
	return result, err
}

func playOutcome(result *PlayResult, err error) string {
	switch {
	case err != nil:
		return "denied"
	case result.Won:
		return "won"
	default:
		return "lost"
	}
}

func (s *PlayServiceImpl) play(ctx context.Context, slug string, req *PlayRequest) (*PlayResult, error) {
	campaign, err := s.findPlayable(ctx, slug, req.TestToken)
	if err != nil {
		return nil, err
	}
	isTest := campaign.IsTestMode()

	if !req.ConsentAccepted {
		return nil, ErrConsentRequired
	}
	if campaign.RequirePhone && req.Phone == "" {
		return nil, ErrPhoneRequired
	}

	emailHash := utils.HashIdentifier(req.Email)
	phoneHash := ""
	if req.Phone != "" {
		phoneHash = utils.HashIdentifier(req.Phone)
	}

	// Ban gate. Test plays bypass it entirely so owners can validate their
	// own setup.
	if !isTest {
		if err := s.checkBans(ctx, req.IPAddress, req.DeviceHash, emailHash); err != nil {
			return nil, err
		}
	}

	// Quota reservations. Each cap is an atomic increment-and-check; a slot
	// taken here is only surrendered if the play fails before the ledger
	// append.
	var reserved []reservation
	release := func() { s.releaseReservations(ctx, reserved) }

	if !isTest {
		planSlot, err := s.reservePlanQuota(ctx, campaign.TenantID)
		if err != nil {
			return nil, err
		}
		reserved = append(reserved, planSlot)

		emailCap := campaign.MaxPlaysPerEmail
		if emailCap <= 0 {
			emailCap = s.game.MaxPlaysPerEmail
		}
		emailSlot := reservation{scope: models.CounterScopeEmail, key: campaign.ID.Hex() + ":" + emailHash}
		if err := s.counterRepo.Reserve(ctx, emailSlot.scope, emailSlot.key, emailCap); err != nil {
			release()
			if errors.Is(err, repositories.ErrLimitReached) {
				return nil, ErrEmailCapReached
			}
			slog.Error("Play: email cap reservation failed", "error", err, "campaignId", campaign.ID)
			return nil, fmt.Errorf("failed to check play cap: %w", err)
		}
		reserved = append(reserved, emailSlot)

		if phoneHash != "" {
			phoneCap := campaign.MaxPlaysPerPhone
			if phoneCap <= 0 {
				phoneCap = s.game.MaxPlaysPerPhone
			}
			phoneSlot := reservation{scope: models.CounterScopePhone, key: campaign.ID.Hex() + ":" + phoneHash}
			if err := s.counterRepo.Reserve(ctx, phoneSlot.scope, phoneSlot.key, phoneCap); err != nil {
				release()
				if errors.Is(err, repositories.ErrLimitReached) {
					return nil, ErrPhoneCapReached
				}
				slog.Error("Play: phone cap reservation failed", "error", err, "campaignId", campaign.ID)
				return nil, fmt.Errorf("failed to check play cap: %w", err)
			}
			reserved = append(reserved, phoneSlot)
		}
	}

	// IP velocity over the trailing window, counted fresh from the ledger.
	// Applies in test mode too, but only real plays are counted.
	since := time.Now().Add(-time.Duration(s.game.IPVelocityWindow) * time.Minute)
	ipPlays, err := s.playRepo.CountByCampaignAndIPSince(ctx, campaign.ID, req.IPAddress, since)
	if err != nil {
		release()
		slog.Error("Play: IP velocity count failed", "error", err, "campaignId", campaign.ID)
		return nil, fmt.Errorf("failed to check play velocity: %w", err)
	}
	if ipPlays >= int64(s.game.IPVelocityLimit) {
		flag := &models.FraudFlag{
			FlagID:     uuid.NewString(),
			TenantID:   campaign.TenantID,
			CampaignID: campaign.ID,
			Type:       models.FraudTypeIPRateLimit,
			Details:    fmt.Sprintf("IP %s exceeded rate limit", req.IPAddress),
			IPAddress:  req.IPAddress,
		}
		if flagErr := s.fraudRepo.Create(ctx, flag); flagErr != nil {
			// The flag is observational; its failure must not mask the denial.
			slog.Error("Play: failed to record fraud flag", "error", flagErr, "campaignId", campaign.ID)
		}
		release()
		return nil, ErrIPVelocityExceeded
	}

	player, err := s.getOrCreatePlayer(ctx, campaign, emailHash, phoneHash, req.FirstName)
	if err != nil {
		release()
		return nil, err
	}

	s.recordConsent(ctx, campaign, player, req)

	prizes, err := s.prizeRepo.FindByCampaign(ctx, campaign.ID)
	if err != nil {
		release()
		slog.Error("Play: failed to fetch prizes", "error", err, "campaignId", campaign.ID)
		return nil, fmt.Errorf("failed to fetch prizes: %w", err)
	}

	winning, err := s.drawAndSecureStock(ctx, prizes, isTest)
	if err != nil {
		release()
		return nil, err
	}

	result := &PlayResult{Won: winning != nil, PrizeIndex: -1, IsTest: isTest}
	var reward *models.RewardCode
	if winning != nil {
		result.PrizeIndex = prizeIndex(prizes, winning.ID)
		reward, err = s.issueReward(ctx, campaign, winning, player, isTest)
		if err != nil {
			s.undoStock(ctx, winning, isTest)
			release()
			return nil, err
		}
		result.Reward = &RewardPayload{
			Code:       reward.Code,
			ExpiresAt:  reward.ExpiresAt,
			PrizeLabel: winning.Label,
			PrizeValue: winning.Value,
		}
	}

	play := &models.Play{
		PlayID:           uuid.NewString(),
		CampaignID:       campaign.ID,
		TenantID:         campaign.TenantID,
		PlayerID:         player.ID,
		EmailHash:        emailHash,
		PhoneHash:        phoneHash,
		IPAddress:        req.IPAddress,
		DeviceHash:       req.DeviceHash,
		MarketingConsent: req.MarketingConsent,
		IsTest:           isTest,
		PlayedAt:         time.Now(),
	}
	if winning != nil {
		play.PrizeID = winning.ID
		play.PrizeLabel = winning.Label
		play.RewardCodeID = reward.ID
		play.RewardCode = reward.Code
	}

	// The ledger append is the commit point: if it fails the play did not
	// happen, so every earlier write is compensated.
	if err := s.playRepo.Create(ctx, play); err != nil {
		slog.Error("Play: ledger append failed", "error", err, "campaignId", campaign.ID, "playId", play.PlayID)
		if reward != nil {
			if delErr := s.rewardRepo.Delete(ctx, reward.ID); delErr != nil {
				slog.Error("Play: failed to compensate reward after ledger failure", "error", delErr, "rewardId", reward.ID)
			}
		}
		if winning != nil {
			s.undoStock(ctx, winning, isTest)
		}
		release()
		return nil, fmt.Errorf("failed to record play: %w", err)
	}

	if err := s.playerRepo.IncrementPlays(ctx, player.ID); err != nil {
		// The ledger entry is already committed; the running count is derived
		// convenience data.
		slog.Error("Play: failed to increment player play count", "error", err, "playerId", player.ID)
	}

	slog.Info("Play recorded",
		"campaignId", campaign.ID,
		"playId", play.PlayID,
		"won", result.Won,
		"isTest", isTest,
		"identity", utils.MaskIdentifier(req.Email),
	)
	return result, nil
}

// checkBans runs the three independent ban lookups; the first match denies.
// The caller only ever sees the generic access-denied error.
func (s *PlayServiceImpl) checkBans(ctx context.Context, ip, deviceHash, emailHash string) error {
	now := time.Now()
	checks := []struct {
		banType string
		value   string
	}{
		{models.BanTypeIP, ip},
		{models.BanTypeDevice, deviceHash},
		{models.BanTypeIdentity, emailHash},
	}
	for _, check := range checks {
		if check.value == "" {
			continue
		}
		entry, err := s.banRepo.FindActive(ctx, check.banType, check.value, now)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				continue
			}
			slog.Error("Ban check failed", "error", err, "type", check.banType)
			return fmt.Errorf("failed to check ban list: %w", err)
		}
		if entry != nil {
			slog.Info("Play denied by ban", "type", check.banType, "reason", entry.Reason)
			return ErrAccessDenied
		}
	}
	return nil
}

// reservePlanQuota takes one slot on the tenant's calendar-month counter.
func (s *PlayServiceImpl) reservePlanQuota(ctx context.Context, tenantID primitive.ObjectID) (reservation, error) {
	plan := models.PlanFree
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil && err != mongo.ErrNoDocuments {
		return reservation{}, fmt.Errorf("failed to fetch tenant: %w", err)
	}
	if tenant != nil {
		plan = tenant.Plan
	}

	slot := reservation{
		scope: models.CounterScopePlanMonth,
		key:   tenantID.Hex() + ":" + time.Now().UTC().Format("2006-01"),
	}
	if err := s.counterRepo.Reserve(ctx, slot.scope, slot.key, s.game.PlanLimit(plan)); err != nil {
		if errors.Is(err, repositories.ErrLimitReached) {
			return reservation{}, ErrPlanQuotaExceeded
		}
		slog.Error("Plan quota reservation failed", "error", err, "tenantId", tenantID)
		return reservation{}, fmt.Errorf("failed to check plan quota: %w", err)
	}
	return slot, nil
}

func (s *PlayServiceImpl) releaseReservations(ctx context.Context, reserved []reservation) {
	for _, slot := range reserved {
		if err := s.counterRepo.Release(ctx, slot.scope, slot.key); err != nil {
			slog.Error("Failed to release play slot", "error", err, "scope", slot.scope, "key", slot.key)
		}
	}
}

func (s *PlayServiceImpl) getOrCreatePlayer(ctx context.Context, campaign *models.Campaign, emailHash, phoneHash, firstName string) (*models.Player, error) {
	player, err := s.playerRepo.FindByCampaignAndEmailHash(ctx, campaign.ID, emailHash)
	if err == nil {
		return player, nil
	}
	if err != mongo.ErrNoDocuments {
		slog.Error("Failed to fetch player", "error", err, "campaignId", campaign.ID)
		return nil, fmt.Errorf("failed to fetch player: %w", err)
	}

	player = &models.Player{
		CampaignID: campaign.ID,
		TenantID:   campaign.TenantID,
		EmailHash:  emailHash,
		PhoneHash:  phoneHash,
		FirstName:  firstName,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			// Lost a create race against a concurrent play by the same
			// identity; the winner's record is the one to use.
			return s.playerRepo.FindByCampaignAndEmailHash(ctx, campaign.ID, emailHash)
		}
		slog.Error("Failed to create player", "error", err, "campaignId", campaign.ID)
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

// recordConsent appends the terms-acceptance record. Consent storage is
// best-effort relative to the play itself.
func (s *PlayServiceImpl) recordConsent(ctx context.Context, campaign *models.Campaign, player *models.Player, req *PlayRequest) {
	consent := &models.Consent{
		TenantID:         campaign.TenantID,
		CampaignID:       campaign.ID,
		PlayerID:         player.ID,
		ConsentType:      "game_terms",
		LegalTextVersion: "1.0",
		IPAddress:        req.IPAddress,
	}
	if err := s.consentRepo.Create(ctx, consent); err != nil {
		slog.Error("Failed to record consent", "error", err, "campaignId", campaign.ID)
	}
}

// drawAndSecureStock draws a prize and, for real plays, captures its stock
// unit in the same step: the conditional decrement either secures the unit
// or excludes the exhausted prize and redraws. A reward is never issued for
// a prize whose stock could not be captured.
func (s *PlayServiceImpl) drawAndSecureStock(ctx context.Context, prizes []*models.Prize, isTest bool) (*models.Prize, error) {
	candidates := prizes
	for {
		winning, err := s.engine.Draw(candidates)
		if err != nil {
			slog.Error("Draw failed", "error", err)
			return nil, fmt.Errorf("draw failed: %w", err)
		}
		if winning == nil {
			return nil, nil
		}
		if isTest {
			// Test plays never consume stock.
			return winning, nil
		}

		err = s.prizeRepo.DecrementStock(ctx, winning.ID)
		if err == nil {
			return winning, nil
		}
		if !errors.Is(err, repositories.ErrStockExhausted) {
			slog.Error("Stock decrement failed", "error", err, "prizeId", winning.ID)
			return nil, fmt.Errorf("failed to decrement stock: %w", err)
		}

		// Lost the stock race for this prize; retry over the rest.
		slog.Info("Prize exhausted between draw and decrement, redrawing", "prizeId", winning.ID)
		remaining := make([]*models.Prize, 0, len(candidates))
		for _, p := range candidates {
			if p.ID != winning.ID {
				remaining = append(remaining, p)
			}
		}
		candidates = remaining
	}
}

func (s *PlayServiceImpl) undoStock(ctx context.Context, prize *models.Prize, isTest bool) {
	if isTest {
		return
	}
	if err := s.prizeRepo.RestoreStock(ctx, prize.ID); err != nil {
		slog.Error("Failed to restore prize stock", "error", err, "prizeId", prize.ID)
	}
}

// issueReward generates a unique code and persists the reward. Collisions
// with the unique code index are retried with a fresh code, bounded so a
// broken random source cannot spin forever.
func (s *PlayServiceImpl) issueReward(ctx context.Context, campaign *models.Campaign, prize *models.Prize, player *models.Player, isTest bool) (*models.RewardCode, error) {
	validityDays := s.game.RewardValidityDays
	if prize.ExpirationDays > 0 {
		validityDays = prize.ExpirationDays
	}
	expiresAt := time.Now().AddDate(0, 0, validityDays)

	for attempt := 0; attempt < s.game.CodeRetryLimit; attempt++ {
		code, err := utils.GenerateRewardCode(isTest)
		if err != nil {
			return nil, fmt.Errorf("failed to generate reward code: %w", err)
		}
		reward := &models.RewardCode{
			Code:       code,
			Status:     models.RewardStatusActive,
			CampaignID: campaign.ID,
			TenantID:   campaign.TenantID,
			PrizeID:    prize.ID,
			PlayerID:   player.ID,
			IsTest:     isTest,
			ExpiresAt:  expiresAt,
		}
		err = s.rewardRepo.Create(ctx, reward)
		if err == nil {
			metrics.RewardsIssued.Inc()
			return reward, nil
		}
		if !errors.Is(err, repositories.ErrDuplicate) {
			slog.Error("Failed to persist reward code", "error", err, "prizeId", prize.ID)
			return nil, fmt.Errorf("failed to persist reward code: %w", err)
		}
		slog.Warn("Reward code collision, regenerating", "attempt", attempt+1)
	}
	return nil, fmt.Errorf("failed to generate a unique reward code after %d attempts", s.game.CodeRetryLimit)
}

// prizeIndex finds the winning prize's position in the full prize list; the
// wheel UI needs the index over all configured prizes, not the candidates.
func prizeIndex(prizes []*models.Prize, winningID primitive.ObjectID) int {
	for i, p := range prizes {
		if p.ID == winningID {
			return i
		}
	}
	return 0
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/luckyroue/wheelplay-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type campaignFixture struct {
	service      *CampaignServiceImpl
	campaignRepo *fakeCampaignRepo
	prizeRepo    *fakePrizeRepo
	playRepo     *fakePlayRepo
	playerRepo   *fakePlayerRepo
	auditRepo    *fakeAuditRepo
	tenantID     primitive.ObjectID
	owner        *models.AuthClaims
}

func newCampaignFixture(t *testing.T) *campaignFixture {
	t.Helper()
	f := &campaignFixture{
		campaignRepo: newFakeCampaignRepo(),
		prizeRepo:    newFakePrizeRepo(),
		playRepo:     &fakePlayRepo{},
		playerRepo:   newFakePlayerRepo(),
		auditRepo:    &fakeAuditRepo{},
		tenantID:     primitive.NewObjectID(),
	}
	f.owner = &models.AuthClaims{
		UserID:   primitive.NewObjectID().Hex(),
		Role:     models.RoleTenantOwner,
		TenantID: f.tenantID.Hex(),
	}
	f.service = NewCampaignService(f.campaignRepo, f.prizeRepo, f.playRepo, f.playerRepo, f.auditRepo)
	return f
}

func (f *campaignFixture) createCampaign(t *testing.T, status string) *models.Campaign {
	t.Helper()
	campaign, err := f.service.Create(context.Background(), &CampaignInput{
		Title:     "Launch Wheel",
		TermsText: "Terms apply.",
		Prizes: []PrizeInput{
			{Label: "Coffee", Weight: 10, StockTotal: 20},
			{Label: "Mug", Weight: 5, StockTotal: 10},
		},
	}, f.owner)
	require.NoError(t, err)
	if status != models.CampaignStatusDraft {
		campaign.Status = status
		require.NoError(t, f.campaignRepo.Update(context.Background(), campaign))
	}
	return campaign
}

func TestCampaignCreateDefaults(t *testing.T) {
	f := newCampaignFixture(t)
	campaign := f.createCampaign(t, models.CampaignStatusDraft)

	assert.Equal(t, models.CampaignStatusDraft, campaign.Status)
	assert.Equal(t, "launch-wheel", campaign.Slug)
	assert.Equal(t, f.tenantID, campaign.TenantID)

	prizes, err := f.prizeRepo.FindByCampaign(context.Background(), campaign.ID)
	require.NoError(t, err)
	require.Len(t, prizes, 2)
	// Stock starts full.
	assert.Equal(t, 20, prizes[0].StockRemaining)
	assert.Len(t, f.auditRepo.entries, 1)
}

func TestCampaignCreateSlugCollisionGetsSuffix(t *testing.T) {
	f := newCampaignFixture(t)
	first := f.createCampaign(t, models.CampaignStatusDraft)
	second := f.createCampaign(t, models.CampaignStatusDraft)

	assert.Equal(t, "launch-wheel", first.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Contains(t, second.Slug, "launch-wheel-")
}

func TestCampaignStatusTransitionTable(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{models.CampaignStatusDraft, models.CampaignStatusTest, true},
		{models.CampaignStatusDraft, models.CampaignStatusActive, true},
		{models.CampaignStatusDraft, models.CampaignStatusPaused, false},
		{models.CampaignStatusDraft, models.CampaignStatusEnded, false},
		{models.CampaignStatusTest, models.CampaignStatusActive, true},
		{models.CampaignStatusTest, models.CampaignStatusDraft, true},
		{models.CampaignStatusTest, models.CampaignStatusPaused, false},
		{models.CampaignStatusTest, models.CampaignStatusEnded, false},
		{models.CampaignStatusActive, models.CampaignStatusPaused, true},
		{models.CampaignStatusActive, models.CampaignStatusEnded, true},
		{models.CampaignStatusActive, models.CampaignStatusDraft, false},
		{models.CampaignStatusActive, models.CampaignStatusTest, false},
		{models.CampaignStatusPaused, models.CampaignStatusActive, true},
		{models.CampaignStatusPaused, models.CampaignStatusEnded, true},
		{models.CampaignStatusPaused, models.CampaignStatusDraft, false},
		{models.CampaignStatusPaused, models.CampaignStatusTest, false},
		{models.CampaignStatusEnded, models.CampaignStatusActive, false},
		{models.CampaignStatusEnded, models.CampaignStatusDraft, false},
		{models.CampaignStatusEnded, models.CampaignStatusPaused, false},
		{models.CampaignStatusEnded, models.CampaignStatusTest, false},
		// The diagonal: no same-status pair is in the table.
		{models.CampaignStatusDraft, models.CampaignStatusDraft, false},
		{models.CampaignStatusTest, models.CampaignStatusTest, false},
		{models.CampaignStatusActive, models.CampaignStatusActive, false},
		{models.CampaignStatusPaused, models.CampaignStatusPaused, false},
		{models.CampaignStatusEnded, models.CampaignStatusEnded, false},
	}

	for _, tc := range cases {
		t.Run(tc.from+"_to_"+tc.to, func(t *testing.T) {
			f := newCampaignFixture(t)
			campaign := f.createCampaign(t, tc.from)

			oldStatus, newStatus, err := f.service.ChangeStatus(context.Background(), campaign.ID, tc.to, "", f.owner)
			if tc.allowed {
				require.NoError(t, err)
				assert.Equal(t, tc.from, oldStatus)
				assert.Equal(t, tc.to, newStatus)
			} else {
				var transitionErr *TransitionError
				require.ErrorAs(t, err, &transitionErr)
				assert.Equal(t, tc.from, transitionErr.From)
				assert.Equal(t, tc.to, transitionErr.To)
			}
		})
	}
}

func TestCampaignSameStatusIsRejected(t *testing.T) {
	f := newCampaignFixture(t)
	campaign := f.createCampaign(t, models.CampaignStatusActive)

	_, _, err := f.service.ChangeStatus(context.Background(), campaign.ID, models.CampaignStatusActive, "", f.owner)
	var transitionErr *TransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, models.CampaignStatusActive, transitionErr.From)
	assert.Equal(t, models.CampaignStatusActive, transitionErr.To)
}

func TestCampaignActivationChecklist(t *testing.T) {
	f := newCampaignFixture(t)
	campaign, err := f.service.Create(context.Background(), &CampaignInput{
		Title: "Empty Wheel",
	}, f.owner)
	require.NoError(t, err)

	_, _, err = f.service.ChangeStatus(context.Background(), campaign.ID, models.CampaignStatusActive, "", f.owner)
	var activationErr *ActivationError
	require.ErrorAs(t, err, &activationErr)
	// Every unmet requirement is reported, not just the first.
	assert.Contains(t, activationErr.Problems, "campaign has no prizes")
	assert.Contains(t, activationErr.Problems, "terms text is empty")
}

func TestCampaignActivationRejectsZeroStock(t *testing.T) {
	f := newCampaignFixture(t)
	campaign, err := f.service.Create(context.Background(), &CampaignInput{
		Title:     "Dry Wheel",
		TermsText: "Terms.",
		Prizes:    []PrizeInput{{Label: "Nothing left", Weight: 1, StockTotal: 0}},
	}, f.owner)
	require.NoError(t, err)

	_, _, err = f.service.ChangeStatus(context.Background(), campaign.ID, models.CampaignStatusActive, "", f.owner)
	var activationErr *ActivationError
	require.ErrorAs(t, err, &activationErr)
	assert.Contains(t, activationErr.Problems, "all prizes are out of stock")
}

func TestCampaignResumeRunsActivationChecklist(t *testing.T) {
	f := newCampaignFixture(t)
	campaign := f.createCampaign(t, models.CampaignStatusPaused)
	// Stock ran dry while the campaign sat paused.
	for _, p := range f.prizeRepo.prizes {
		p.StockRemaining = 0
	}

	_, _, err := f.service.ChangeStatus(context.Background(), campaign.ID, models.CampaignStatusActive, "", f.owner)
	var activationErr *ActivationError
	require.ErrorAs(t, err, &activationErr)
	assert.Contains(t, activationErr.Problems, "all prizes are out of stock")

	stored, err := f.campaignRepo.FindByID(context.Background(), campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusPaused, stored.Status)
}

func TestCampaignResumeKeepsActivationStamp(t *testing.T) {
	f := newCampaignFixture(t)
	campaign := f.createCampaign(t, models.CampaignStatusPaused)
	activatedAt := time.Now().Add(-48 * time.Hour)
	campaign.ActivatedAt = activatedAt
	require.NoError(t, f.campaignRepo.Update(context.Background(), campaign))

	_, _, err := f.service.ChangeStatus(context.Background(), campaign.ID, models.CampaignStatusActive, "", f.owner)
	require.NoError(t, err)

	stored, err := f.campaignRepo.FindByID(context.Background(), campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusActive, stored.Status)
	// Resuming is not a fresh activation.
	assert.Equal(t, activatedAt, stored.ActivatedAt)
}

func TestCampaignActivationFromTestClearsTestPlays(t *testing.T) {
	f := newCampaignFixture(t)
	campaign := f.createCampaign(t, models.CampaignStatusTest)
	f.playRepo.plays = append(f.playRepo.plays,
		&models.Play{CampaignID: campaign.ID, IsTest: true, PlayedAt: time.Now()},
		&models.Play{CampaignID: campaign.ID, IsTest: true, PlayedAt: time.Now()},
	)

	_, _, err := f.service.ChangeStatus(context.Background(), campaign.ID, models.CampaignStatusActive, "", f.owner)
	require.NoError(t, err)
	assert.Empty(t, f.playRepo.plays)

	updated, err := f.campaignRepo.FindByID(context.Background(), campaign.ID)
	require.NoError(t, err)
	assert.False(t, updated.ActivatedAt.IsZero())
	assert.Equal(t, f.owner.UserID, updated.ActivatedBy)
}

func TestCampaignDeleteRefusesActive(t *testing.T) {
	f := newCampaignFixture(t)
	campaign := f.createCampaign(t, models.CampaignStatusActive)

	err := f.service.Delete(context.Background(), campaign.ID, f.owner)
	assert.ErrorIs(t, err, ErrCampaignActive)
}

func TestCampaignDeleteSoftWithRealPlays(t *testing.T) {
	f := newCampaignFixture(t)
	campaign := f.createCampaign(t, models.CampaignStatusEnded)
	f.playRepo.plays = append(f.playRepo.plays,
		&models.Play{CampaignID: campaign.ID, IsTest: false, PlayedAt: time.Now()},
	)

	require.NoError(t, f.service.Delete(context.Background(), campaign.ID, f.owner))

	// Soft delete: the document survives with deleted status and becomes
	// invisible to staff lookups.
	stored, err := f.campaignRepo.FindByID(context.Background(), campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusDeleted, stored.Status)
	assert.False(t, stored.DeletedAt.IsZero())

	_, _, err = f.service.ChangeStatus(context.Background(), campaign.ID, models.CampaignStatusActive, "", f.owner)
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestCampaignDeleteHardWithoutRealPlays(t *testing.T) {
	f := newCampaignFixture(t)
	campaign := f.createCampaign(t, models.CampaignStatusDraft)
	f.playRepo.plays = append(f.playRepo.plays,
		&models.Play{CampaignID: campaign.ID, IsTest: true, PlayedAt: time.Now()},
	)

	require.NoError(t, f.service.Delete(context.Background(), campaign.ID, f.owner))

	_, err := f.campaignRepo.FindByID(context.Background(), campaign.ID)
	assert.Error(t, err)
	prizes, err := f.prizeRepo.FindByCampaign(context.Background(), campaign.ID)
	require.NoError(t, err)
	assert.Empty(t, prizes)
	assert.Empty(t, f.playRepo.plays)
}

func TestCampaignDuplicateResetsState(t *testing.T) {
	f := newCampaignFixture(t)
	campaign := f.createCampaign(t, models.CampaignStatusEnded)
	// Drain some stock on the original.
	prizes, _ := f.prizeRepo.FindByCampaign(context.Background(), campaign.ID)
	require.NoError(t, f.prizeRepo.DecrementStock(context.Background(), prizes[0].ID))

	clone, err := f.service.Duplicate(context.Background(), campaign.ID, f.owner)
	require.NoError(t, err)

	assert.Equal(t, models.CampaignStatusDraft, clone.Status)
	assert.NotEqual(t, campaign.ID, clone.ID)
	assert.NotEqual(t, campaign.Slug, clone.Slug)
	assert.Empty(t, clone.TestLinkToken)
	assert.True(t, clone.ActivatedAt.IsZero())

	clonePrizes, err := f.prizeRepo.FindByCampaign(context.Background(), clone.ID)
	require.NoError(t, err)
	require.Len(t, clonePrizes, 2)
	for _, p := range clonePrizes {
		assert.Equal(t, p.StockTotal, p.StockRemaining)
	}
}

func TestCampaignTestLinkReused(t *testing.T) {
	f := newCampaignFixture(t)
	campaign := f.createCampaign(t, models.CampaignStatusTest)

	token, err := f.service.GenerateTestLink(context.Background(), campaign.ID, f.owner)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	again, err := f.service.GenerateTestLink(context.Background(), campaign.ID, f.owner)
	require.NoError(t, err)
	assert.Equal(t, token, again)
}

func TestCampaignTenantScoping(t *testing.T) {
	f := newCampaignFixture(t)
	campaign := f.createCampaign(t, models.CampaignStatusDraft)

	stranger := &models.AuthClaims{
		UserID:   primitive.NewObjectID().Hex(),
		Role:     models.RoleTenantOwner,
		TenantID: primitive.NewObjectID().Hex(),
	}
	_, _, err := f.service.Get(context.Background(), campaign.ID, stranger)
	// Cross-tenant access reads as not-found, not forbidden.
	assert.ErrorIs(t, err, ErrCampaignNotFound)

	admin := &models.AuthClaims{
		UserID: primitive.NewObjectID().Hex(),
		Role:   models.RoleSuperAdmin,
	}
	_, _, err = f.service.Get(context.Background(), campaign.ID, admin)
	assert.NoError(t, err)
}

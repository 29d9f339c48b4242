package services

import (
	"context"
	"time"

	"github.com/luckyroue/wheelplay-backend/internal/models"
	"github.com/luckyroue/wheelplay-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory repository fakes mirroring the MongoDB implementations' error
// semantics: not-found is mongo.ErrNoDocuments, unique-index violations are
// repositories.ErrDuplicate, conditional updates report their sentinels.

type fakeCampaignRepo struct {
	campaigns map[primitive.ObjectID]*models.Campaign
}

func newFakeCampaignRepo() *fakeCampaignRepo {
	return &fakeCampaignRepo{campaigns: make(map[primitive.ObjectID]*models.Campaign)}
}

func (r *fakeCampaignRepo) Create(_ context.Context, campaign *models.Campaign) error {
	for _, existing := range r.campaigns {
		if existing.Slug == campaign.Slug {
			return repositories.ErrDuplicate
		}
	}
	if campaign.ID.IsZero() {
		campaign.ID = primitive.NewObjectID()
	}
	campaign.CreatedAt = time.Now()
	campaign.UpdatedAt = time.Now()
	copied := *campaign
	r.campaigns[campaign.ID] = &copied
	return nil
}

func (r *fakeCampaignRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	campaign, ok := r.campaigns[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *campaign
	return &copied, nil
}

func (r *fakeCampaignRepo) FindBySlug(_ context.Context, slug string, statuses []string) (*models.Campaign, error) {
	for _, campaign := range r.campaigns {
		if campaign.Slug != slug {
			continue
		}
		if len(statuses) == 0 {
			copied := *campaign
			return &copied, nil
		}
		for _, status := range statuses {
			if campaign.Status == status {
				copied := *campaign
				return &copied, nil
			}
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeCampaignRepo) Update(_ context.Context, campaign *models.Campaign) error {
	if _, ok := r.campaigns[campaign.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	campaign.UpdatedAt = time.Now()
	copied := *campaign
	r.campaigns[campaign.ID] = &copied
	return nil
}

func (r *fakeCampaignRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.campaigns, id)
	return nil
}

type fakePrizeRepo struct {
	prizes []*models.Prize
	// failDecrement simulates losing the stock race for a prize even though
	// the in-memory snapshot still shows stock.
	failDecrement map[primitive.ObjectID]bool
	restored      []primitive.ObjectID
}

func newFakePrizeRepo() *fakePrizeRepo {
	return &fakePrizeRepo{failDecrement: make(map[primitive.ObjectID]bool)}
}

func (r *fakePrizeRepo) CreateMany(_ context.Context, prizes []*models.Prize) error {
	for _, p := range prizes {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		copied := *p
		r.prizes = append(r.prizes, &copied)
	}
	return nil
}

func (r *fakePrizeRepo) FindByCampaign(_ context.Context, campaignID primitive.ObjectID) ([]*models.Prize, error) {
	result := []*models.Prize{}
	for _, p := range r.prizes {
		if p.CampaignID == campaignID {
			copied := *p
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakePrizeRepo) DecrementStock(_ context.Context, prizeID primitive.ObjectID) error {
	if r.failDecrement[prizeID] {
		return repositories.ErrStockExhausted
	}
	for _, p := range r.prizes {
		if p.ID == prizeID {
			if p.StockRemaining <= 0 {
				return repositories.ErrStockExhausted
			}
			p.StockRemaining--
			return nil
		}
	}
	return repositories.ErrStockExhausted
}

func (r *fakePrizeRepo) RestoreStock(_ context.Context, prizeID primitive.ObjectID) error {
	r.restored = append(r.restored, prizeID)
	for _, p := range r.prizes {
		if p.ID == prizeID && p.StockRemaining < p.StockTotal {
			p.StockRemaining++
		}
	}
	return nil
}

func (r *fakePrizeRepo) DeleteByCampaign(_ context.Context, campaignID primitive.ObjectID) error {
	kept := r.prizes[:0]
	for _, p := range r.prizes {
		if p.CampaignID != campaignID {
			kept = append(kept, p)
		}
	}
	r.prizes = kept
	return nil
}

func (r *fakePrizeRepo) byID(id primitive.ObjectID) *models.Prize {
	for _, p := range r.prizes {
		if p.ID == id {
			return p
		}
	}
	return nil
}

type fakePlayerRepo struct {
	players map[string]*models.Player
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[string]*models.Player)}
}

func playerKey(campaignID primitive.ObjectID, emailHash string) string {
	return campaignID.Hex() + ":" + emailHash
}

func (r *fakePlayerRepo) Create(_ context.Context, player *models.Player) error {
	key := playerKey(player.CampaignID, player.EmailHash)
	if _, ok := r.players[key]; ok {
		return repositories.ErrDuplicate
	}
	player.ID = primitive.NewObjectID()
	copied := *player
	r.players[key] = &copied
	return nil
}

func (r *fakePlayerRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Player, error) {
	for _, p := range r.players {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakePlayerRepo) FindByCampaignAndEmailHash(_ context.Context, campaignID primitive.ObjectID, emailHash string) (*models.Player, error) {
	player, ok := r.players[playerKey(campaignID, emailHash)]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *player
	return &copied, nil
}

func (r *fakePlayerRepo) IncrementPlays(_ context.Context, playerID primitive.ObjectID) error {
	for _, p := range r.players {
		if p.ID == playerID {
			p.PlaysCount++
		}
	}
	return nil
}

func (r *fakePlayerRepo) DeleteByCampaign(_ context.Context, campaignID primitive.ObjectID) error {
	for key, p := range r.players {
		if p.CampaignID == campaignID {
			delete(r.players, key)
		}
	}
	return nil
}

type fakePlayRepo struct {
	plays      []*models.Play
	failCreate bool
}

func (r *fakePlayRepo) Create(_ context.Context, play *models.Play) error {
	if r.failCreate {
		return mongo.ErrClientDisconnected
	}
	play.ID = primitive.NewObjectID()
	copied := *play
	r.plays = append(r.plays, &copied)
	return nil
}

func (r *fakePlayRepo) CountByCampaignAndIPSince(_ context.Context, campaignID primitive.ObjectID, ip string, since time.Time) (int64, error) {
	var count int64
	for _, p := range r.plays {
		if p.CampaignID == campaignID && p.IPAddress == ip && !p.IsTest && !p.PlayedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *fakePlayRepo) CountNonTestByCampaign(_ context.Context, campaignID primitive.ObjectID) (int64, error) {
	var count int64
	for _, p := range r.plays {
		if p.CampaignID == campaignID && !p.IsTest {
			count++
		}
	}
	return count, nil
}

func (r *fakePlayRepo) DeleteTestByCampaign(_ context.Context, campaignID primitive.ObjectID) error {
	kept := r.plays[:0]
	for _, p := range r.plays {
		if p.CampaignID != campaignID || !p.IsTest {
			kept = append(kept, p)
		}
	}
	r.plays = kept
	return nil
}

type fakeCounterRepo struct {
	counts map[string]int
}

func newFakeCounterRepo() *fakeCounterRepo {
	return &fakeCounterRepo{counts: make(map[string]int)}
}

func (r *fakeCounterRepo) Reserve(_ context.Context, scope, key string, limit int) error {
	counterKey := scope + ":" + key
	if limit > 0 && r.counts[counterKey] >= limit {
		return repositories.ErrLimitReached
	}
	r.counts[counterKey]++
	return nil
}

func (r *fakeCounterRepo) Release(_ context.Context, scope, key string) error {
	counterKey := scope + ":" + key
	if r.counts[counterKey] > 0 {
		r.counts[counterKey]--
	}
	return nil
}

type fakeRewardRepo struct {
	rewards map[string]*models.RewardCode
}

func newFakeRewardRepo() *fakeRewardRepo {
	return &fakeRewardRepo{rewards: make(map[string]*models.RewardCode)}
}

func (r *fakeRewardRepo) Create(_ context.Context, reward *models.RewardCode) error {
	if _, ok := r.rewards[reward.Code]; ok {
		return repositories.ErrDuplicate
	}
	reward.ID = primitive.NewObjectID()
	reward.CreatedAt = time.Now()
	copied := *reward
	r.rewards[reward.Code] = &copied
	return nil
}

func (r *fakeRewardRepo) FindByCodeAndTenant(_ context.Context, code string, tenantID primitive.ObjectID) (*models.RewardCode, error) {
	reward, ok := r.rewards[code]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if !tenantID.IsZero() && reward.TenantID != tenantID {
		return nil, mongo.ErrNoDocuments
	}
	copied := *reward
	return &copied, nil
}

func (r *fakeRewardRepo) MarkRedeemed(_ context.Context, code string, redeemedBy string, at time.Time) error {
	reward, ok := r.rewards[code]
	if !ok || reward.Status != models.RewardStatusActive {
		return mongo.ErrNoDocuments
	}
	reward.Status = models.RewardStatusRedeemed
	reward.RedeemedBy = redeemedBy
	reward.RedeemedAt = at
	return nil
}

func (r *fakeRewardRepo) MarkExpired(_ context.Context, code string) error {
	if reward, ok := r.rewards[code]; ok && reward.Status == models.RewardStatusActive {
		reward.Status = models.RewardStatusExpired
	}
	return nil
}

func (r *fakeRewardRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for code, reward := range r.rewards {
		if reward.ID == id {
			delete(r.rewards, code)
		}
	}
	return nil
}

type fakeBanRepo struct {
	entries []*models.BanEntry
}

func (r *fakeBanRepo) FindActive(_ context.Context, banType, value string, now time.Time) (*models.BanEntry, error) {
	for _, entry := range r.entries {
		if entry.Type == banType && entry.Value == value && entry.ActiveAt(now) {
			copied := *entry
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeBanRepo) Add(_ context.Context, entry *models.BanEntry) error {
	for _, existing := range r.entries {
		if existing.Type == entry.Type && existing.Value == entry.Value {
			return repositories.ErrDuplicate
		}
	}
	entry.ID = primitive.NewObjectID()
	copied := *entry
	r.entries = append(r.entries, &copied)
	return nil
}

func (r *fakeBanRepo) Remove(_ context.Context, id primitive.ObjectID) error {
	kept := r.entries[:0]
	for _, entry := range r.entries {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}
	r.entries = kept
	return nil
}

func (r *fakeBanRepo) FindAll(_ context.Context) ([]*models.BanEntry, error) {
	return r.entries, nil
}

type fakeFraudRepo struct {
	flags []*models.FraudFlag
}

func (r *fakeFraudRepo) Create(_ context.Context, flag *models.FraudFlag) error {
	copied := *flag
	r.flags = append(r.flags, &copied)
	return nil
}

type fakeConsentRepo struct {
	consents []*models.Consent
}

func (r *fakeConsentRepo) Create(_ context.Context, consent *models.Consent) error {
	copied := *consent
	r.consents = append(r.consents, &copied)
	return nil
}

type fakeAuditRepo struct {
	entries []*models.AuditLog
}

func (r *fakeAuditRepo) Create(_ context.Context, entry *models.AuditLog) error {
	copied := *entry
	r.entries = append(r.entries, &copied)
	return nil
}

type fakeTenantRepo struct {
	tenants map[primitive.ObjectID]*models.Tenant
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{tenants: make(map[primitive.ObjectID]*models.Tenant)}
}

func (r *fakeTenantRepo) Create(_ context.Context, tenant *models.Tenant) error {
	if tenant.ID.IsZero() {
		tenant.ID = primitive.NewObjectID()
	}
	copied := *tenant
	r.tenants[tenant.ID] = &copied
	return nil
}

func (r *fakeTenantRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Tenant, error) {
	tenant, ok := r.tenants[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *tenant
	return &copied, nil
}

type fakeStaffRepo struct {
	users map[string]*models.StaffUser
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{users: make(map[string]*models.StaffUser)}
}

func (r *fakeStaffRepo) Create(_ context.Context, user *models.StaffUser) error {
	if _, ok := r.users[user.Email]; ok {
		return repositories.ErrDuplicate
	}
	user.ID = primitive.NewObjectID()
	copied := *user
	r.users[user.Email] = &copied
	return nil
}

func (r *fakeStaffRepo) FindByEmail(_ context.Context, email string) (*models.StaffUser, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *user
	return &copied, nil
}

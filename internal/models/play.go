package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Play is one immutable ledger entry per attempt, won or not, test or not.
// Entries are append-only; nothing in the codebase updates a play after it
// has been written.
type Play struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PlayID           string             `bson:"playId" json:"playId"` // public reference, UUID
	CampaignID       primitive.ObjectID `bson:"campaignId" json:"campaignId"`
	TenantID         primitive.ObjectID `bson:"tenantId" json:"tenantId"`
	PlayerID         primitive.ObjectID `bson:"playerId" json:"playerId"`
	PrizeID          primitive.ObjectID `bson:"prizeId,omitempty" json:"prizeId,omitempty"`
	PrizeLabel       string             `bson:"prizeLabel,omitempty" json:"prizeLabel,omitempty"`
	RewardCodeID     primitive.ObjectID `bson:"rewardCodeId,omitempty" json:"rewardCodeId,omitempty"`
	RewardCode       string             `bson:"rewardCode,omitempty" json:"rewardCode,omitempty"`
	EmailHash        string             `bson:"emailHash" json:"emailHash"`
	PhoneHash        string             `bson:"phoneHash,omitempty" json:"phoneHash,omitempty"`
	IPAddress        string             `bson:"ipAddress" json:"ipAddress"`
	DeviceHash       string             `bson:"deviceHash,omitempty" json:"deviceHash,omitempty"`
	MarketingConsent bool               `bson:"marketingConsent" json:"marketingConsent"`
	IsTest           bool               `bson:"isTest" json:"isTest"`
	PlayedAt         time.Time          `bson:"playedAt" json:"playedAt"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}

// Won reports whether this play resulted in a prize.
func (p *Play) Won() bool {
	return !p.PrizeID.IsZero()
}

package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RewardStatusActive   = "active"
	RewardStatusRedeemed = "redeemed"
	RewardStatusExpired  = "expired"
)

// TestCodePrefix marks reward codes issued by test-mode plays. Codes carrying
// it can never be redeemed regardless of their stored status.
const TestCodePrefix = "TEST-"

// RewardCode is a unique, time-limited token issued to a winning play.
// Status moves active->redeemed or active->expired exactly once.
type RewardCode struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Code       string             `bson:"code" json:"code"`
	Status     string             `bson:"status" json:"status"`
	CampaignID primitive.ObjectID `bson:"campaignId" json:"campaignId"`
	TenantID   primitive.ObjectID `bson:"tenantId" json:"tenantId"`
	PrizeID    primitive.ObjectID `bson:"prizeId" json:"prizeId"`
	PlayerID   primitive.ObjectID `bson:"playerId" json:"playerId"`
	IsTest     bool               `bson:"isTest" json:"isTest"`
	ExpiresAt  time.Time          `bson:"expiresAt" json:"expiresAt"`
	RedeemedAt time.Time          `bson:"redeemedAt,omitempty" json:"redeemedAt,omitempty"`
	RedeemedBy string             `bson:"redeemedBy,omitempty" json:"redeemedBy,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsTestCode reports whether the code was issued by a test-mode play.
func (r *RewardCode) IsTestCode() bool {
	return r.IsTest || strings.HasPrefix(r.Code, TestCodePrefix)
}

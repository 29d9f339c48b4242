package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const FraudTypeIPRateLimit = "ip_rate_limit"

// FraudFlag is an append-only observational record. Flags never enforce
// anything by themselves; the fraud-review tooling consumes them.
type FraudFlag struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FlagID     string             `bson:"flagId" json:"flagId"` // public reference, UUID
	TenantID   primitive.ObjectID `bson:"tenantId" json:"tenantId"`
	CampaignID primitive.ObjectID `bson:"campaignId" json:"campaignId"`
	Type       string             `bson:"type" json:"type"`
	Details    string             `bson:"details,omitempty" json:"details,omitempty"`
	IPAddress  string             `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Consent records a player's acceptance of the campaign terms at play time.
type Consent struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TenantID         primitive.ObjectID `bson:"tenantId" json:"tenantId"`
	CampaignID       primitive.ObjectID `bson:"campaignId" json:"campaignId"`
	PlayerID         primitive.ObjectID `bson:"playerId" json:"playerId"`
	ConsentType      string             `bson:"consentType" json:"consentType"` // game_terms, marketing
	LegalTextVersion string             `bson:"legalTextVersion,omitempty" json:"legalTextVersion,omitempty"`
	IPAddress        string             `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}

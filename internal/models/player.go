package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Player is one end user of a single campaign, keyed by the campaign plus
// the hash of their email. Created lazily on first play.
type Player struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CampaignID primitive.ObjectID `bson:"campaignId" json:"campaignId"`
	TenantID   primitive.ObjectID `bson:"tenantId" json:"tenantId"`
	EmailHash  string             `bson:"emailHash" json:"emailHash"`
	PhoneHash  string             `bson:"phoneHash,omitempty" json:"phoneHash,omitempty"`
	FirstName  string             `bson:"firstName,omitempty" json:"firstName,omitempty"`
	PlaysCount int                `bson:"playsCount" json:"playsCount"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

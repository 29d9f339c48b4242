package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Campaign statuses form a one-way lifecycle; see services.CampaignService
// for the allowed transition table.
const (
	CampaignStatusDraft   = "draft"
	CampaignStatusTest    = "test"
	CampaignStatusActive  = "active"
	CampaignStatusPaused  = "paused"
	CampaignStatusEnded   = "ended"
	CampaignStatusDeleted = "deleted"
)

// Campaign represents a tenant-owned, time-boxed prize wheel configuration
type Campaign struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TenantID         primitive.ObjectID `bson:"tenantId" json:"tenantId"`
	Title            string             `bson:"title" json:"title"`
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
	Slug             string             `bson:"slug" json:"slug"`
	Status           string             `bson:"status" json:"status"`
	Timezone         string             `bson:"timezone,omitempty" json:"timezone,omitempty"`
	StartsAt         time.Time          `bson:"startsAt,omitempty" json:"startsAt,omitempty"`
	EndsAt           time.Time          `bson:"endsAt,omitempty" json:"endsAt,omitempty"`
	MaxPlaysPerEmail int                `bson:"maxPlaysPerEmail" json:"maxPlaysPerEmail"`
	MaxPlaysPerPhone int                `bson:"maxPlaysPerPhone" json:"maxPlaysPerPhone"`
	RequirePhone     bool               `bson:"requirePhone" json:"requirePhone"`
	IntroText        string             `bson:"introText,omitempty" json:"introText,omitempty"`
	CtaText          string             `bson:"ctaText,omitempty" json:"ctaText,omitempty"`
	TermsText        string             `bson:"termsText,omitempty" json:"termsText,omitempty"`
	LegalText        string             `bson:"legalText,omitempty" json:"legalText,omitempty"`
	TestLinkToken    string             `bson:"testLinkToken,omitempty" json:"testLinkToken,omitempty"`
	ActivatedAt      time.Time          `bson:"activatedAt,omitempty" json:"activatedAt,omitempty"`
	ActivatedBy      string             `bson:"activatedBy,omitempty" json:"activatedBy,omitempty"`
	EndedAt          time.Time          `bson:"endedAt,omitempty" json:"endedAt,omitempty"`
	DeletedAt        time.Time          `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	CreatedBy        string             `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsPlayable reports whether the campaign accepts play requests at all.
func (c *Campaign) IsPlayable() bool {
	return c.Status == CampaignStatusActive || c.Status == CampaignStatusTest
}

// IsTestMode reports whether plays against this campaign are test plays.
func (c *Campaign) IsTestMode() bool {
	return c.Status == CampaignStatusTest
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prize defines one configured outcome of a campaign's draw.
// StockRemaining is only ever changed through the conditional decrement in
// the prize repository, so it stays within [0, StockTotal].
type Prize struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CampaignID     primitive.ObjectID `bson:"campaignId" json:"campaignId"`
	TenantID       primitive.ObjectID `bson:"tenantId" json:"tenantId"`
	Label          string             `bson:"label" json:"label"`
	PrizeType      string             `bson:"prizeType,omitempty" json:"prizeType,omitempty"` // discount, free_item, gift, points, consolation
	Value          string             `bson:"value,omitempty" json:"value,omitempty"`
	Weight         int                `bson:"weight" json:"weight"`
	StockTotal     int                `bson:"stockTotal" json:"stockTotal"`
	StockRemaining int                `bson:"stockRemaining" json:"stockRemaining"`
	ExpirationDays int                `bson:"expirationDays,omitempty" json:"expirationDays,omitempty"`
	IsConsolation  bool               `bson:"isConsolation" json:"isConsolation"`
	DisplayColor   string             `bson:"displayColor,omitempty" json:"displayColor,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PublicPrize is the player-facing view of a prize. Stock and weight are
// deliberately omitted so callers cannot infer draw odds.
type PublicPrize struct {
	ID           primitive.ObjectID `json:"id"`
	Label        string             `json:"label"`
	PrizeType    string             `json:"prizeType,omitempty"`
	DisplayColor string             `json:"displayColor,omitempty"`
}

// Public strips stock and weight from a prize.
func (p *Prize) Public() PublicPrize {
	return PublicPrize{
		ID:           p.ID,
		Label:        p.Label,
		PrizeType:    p.PrizeType,
		DisplayColor: p.DisplayColor,
	}
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tenant plans. Monthly non-test play caps per plan live in config.
const (
	PlanFree     = "free"
	PlanPro      = "pro"
	PlanBusiness = "business"
)

// Tenant represents a business account that owns campaigns.
type Tenant struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Plan      string             `bson:"plan" json:"plan"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

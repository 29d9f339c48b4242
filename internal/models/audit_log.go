package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditLog records a staff action against tenant data.
type AuditLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	LogID     string             `bson:"logId" json:"logId"` // public reference, UUID
	TenantID  primitive.ObjectID `bson:"tenantId" json:"tenantId"`
	UserID    string             `bson:"userId" json:"userId"`
	Action    string             `bson:"action" json:"action"`
	Category  string             `bson:"category,omitempty" json:"category,omitempty"`
	Details   string             `bson:"details,omitempty" json:"details,omitempty"`
	IPAddress string             `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

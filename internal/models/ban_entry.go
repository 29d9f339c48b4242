package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ban entry types. Identity bans hold hashed identifiers, never plaintext.
const (
	BanTypeIP       = "ip"
	BanTypeDevice   = "device"
	BanTypeIdentity = "identity"
)

// BanEntry blocks a single IP, device fingerprint, or hashed identity.
// Uniqueness per (type, value) is enforced by the store. An entry whose
// expiry is in the past is treated as inactive without being deleted.
type BanEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Type      string             `bson:"type" json:"type"`
	Value     string             `bson:"value" json:"value"`
	Reason    string             `bson:"reason,omitempty" json:"reason,omitempty"`
	ExpiresAt *time.Time         `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	CreatedBy string             `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// ActiveAt reports whether the ban is in force at the given instant.
func (b *BanEntry) ActiveAt(now time.Time) bool {
	return b.ExpiresAt == nil || b.ExpiresAt.After(now)
}

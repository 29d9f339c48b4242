package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Counter scopes. Each scope+key pair owns exactly one counter document.
const (
	CounterScopeEmail     = "email"
	CounterScopePhone     = "phone"
	CounterScopePlanMonth = "plan_month"
)

// PlayCounter backs the atomic increment-and-check quota primitive. A play
// slot is reserved by a conditional upsert ($inc with count < limit); the
// unique (scope, key) index turns a lost race into a retryable conflict
// instead of a lost write.
type PlayCounter struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Scope string             `bson:"scope" json:"scope"`
	Key   string             `bson:"key" json:"key"`
	Count int                `bson:"count" json:"count"`
}

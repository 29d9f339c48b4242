package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique and query indexes the fairness engine
// depends on. The unique indexes are load-bearing: reward code uniqueness,
// the one-player-per-identity rule, counter slots, and ban entry uniqueness
// are all enforced here rather than by application-level checks.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	specs := map[string][]mongo.IndexModel{
		"campaigns": {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "tenantId", Value: 1}, {Key: "status", Value: 1}}},
		},
		"prizes": {
			{Keys: bson.D{{Key: "campaignId", Value: 1}}},
		},
		"players": {
			{Keys: bson.D{{Key: "campaignId", Value: 1}, {Key: "emailHash", Value: 1}}, Options: unique},
		},
		"plays": {
			{Keys: bson.D{{Key: "tenantId", Value: 1}, {Key: "isTest", Value: 1}, {Key: "playedAt", Value: 1}}},
			{Keys: bson.D{{Key: "campaignId", Value: 1}, {Key: "ipAddress", Value: 1}, {Key: "playedAt", Value: 1}}},
			{Keys: bson.D{{Key: "campaignId", Value: 1}, {Key: "emailHash", Value: 1}}},
		},
		"play_counters": {
			{Keys: bson.D{{Key: "scope", Value: 1}, {Key: "key", Value: 1}}, Options: unique},
		},
		"reward_codes": {
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "tenantId", Value: 1}, {Key: "status", Value: 1}}},
		},
		"bans": {
			{Keys: bson.D{{Key: "type", Value: 1}, {Key: "value", Value: 1}}, Options: unique},
		},
		"staff_users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
	}

	for collection, models := range specs {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}

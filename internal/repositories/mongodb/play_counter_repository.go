package mongodb

import (
	"context"

	"github.com/luckyroue/wheelplay-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure PlayCounterRepository implements the interface
var _ repositories.PlayCounterRepository = (*PlayCounterRepository)(nil)

// PlayCounterRepository implements quota caps as conditional counter
// increments instead of count-then-insert, so two concurrent plays by the
// same identifier cannot both slip under the cap.
type PlayCounterRepository struct {
	collection *mongo.Collection
}

// NewPlayCounterRepository creates a new PlayCounterRepository
func NewPlayCounterRepository(db *mongo.Database) *PlayCounterRepository {
	return &PlayCounterRepository{
		collection: db.Collection("play_counters"),
	}
}

// Reserve takes one play slot on the (scope, key) counter. The filter admits
// the increment only while count < limit; when the counter is at the cap the
// upsert collides with the unique (scope, key) index.
//
// A duplicate key can also mean two first-touch reservations raced the upsert
// insert and the loser's insert hit the index even though the counter is below
// its cap. The document exists after that, so one plain retry lets the count
// filter decide; only a retry that matches nothing is the cap.
func (r *PlayCounterRepository) Reserve(ctx context.Context, scope, key string, limit int) error {
	filter := bson.M{"scope": scope, "key": key}
	if limit > 0 {
		filter["count"] = bson.M{"$lt": limit}
	}
	update := bson.M{"$inc": bson.M{"count": 1}}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrLimitReached
	}
	return nil
}

// Release gives a reserved slot back after a failed play. The count > 0
// guard keeps a stray release from driving the counter negative.
func (r *PlayCounterRepository) Release(ctx context.Context, scope, key string) error {
	filter := bson.M{"scope": scope, "key": key, "count": bson.M{"$gt": 0}}
	update := bson.M{"$inc": bson.M{"count": -1}}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

package mongodb

import (
	"context"
	"time"

	"github.com/luckyroue/wheelplay-backend/internal/models"
	"github.com/luckyroue/wheelplay-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure PrizeRepository implements the interface
var _ repositories.PrizeRepository = (*PrizeRepository)(nil)

// PrizeRepository handles MongoDB operations for Prize
type PrizeRepository struct {
	collection *mongo.Collection
}

// NewPrizeRepository creates a new PrizeRepository
func NewPrizeRepository(db *mongo.Database) *PrizeRepository {
	return &PrizeRepository{
		collection: db.Collection("prizes"),
	}
}

// CreateMany inserts a batch of prizes
func (r *PrizeRepository) CreateMany(ctx context.Context, prizes []*models.Prize) error {
	if len(prizes) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(prizes))
	for _, p := range prizes {
		p.ID = primitive.NewObjectID()
		p.CreatedAt = time.Now()
		p.UpdatedAt = time.Now()
		docs = append(docs, p)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// FindByCampaign finds all prizes of a campaign in insertion order
func (r *PrizeRepository) FindByCampaign(ctx context.Context, campaignID primitive.ObjectID) ([]*models.Prize, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"campaignId": campaignID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var prizes []*models.Prize
	if err := cursor.All(ctx, &prizes); err != nil {
		return nil, err
	}
	if prizes == nil {
		prizes = []*models.Prize{}
	}
	return prizes, nil
}

// DecrementStock atomically takes one stock unit from a prize. The filter
// guard keeps stockRemaining from ever going negative; a no-match means the
// stock hit zero between the draw and the decrement.
func (r *PrizeRepository) DecrementStock(ctx context.Context, prizeID primitive.ObjectID) error {
	filter := bson.M{"_id": prizeID, "stockRemaining": bson.M{"$gt": 0}}
	update := bson.M{
		"$inc": bson.M{"stockRemaining": -1},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrStockExhausted
	}
	return nil
}

// RestoreStock returns one stock unit after a play failed post-decrement.
// The $expr guard keeps stockRemaining from exceeding stockTotal.
func (r *PrizeRepository) RestoreStock(ctx context.Context, prizeID primitive.ObjectID) error {
	filter := bson.M{
		"_id":   prizeID,
		"$expr": bson.M{"$lt": bson.A{"$stockRemaining", "$stockTotal"}},
	}
	update := bson.M{
		"$inc": bson.M{"stockRemaining": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// DeleteByCampaign removes all prizes of a campaign
func (r *PrizeRepository) DeleteByCampaign(ctx context.Context, campaignID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"campaignId": campaignID})
	return err
}

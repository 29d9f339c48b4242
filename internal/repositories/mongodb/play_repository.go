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

// Compile-time check to ensure PlayRepository implements the interface
var _ repositories.PlayRepository = (*PlayRepository)(nil)

// PlayRepository handles MongoDB operations for the play ledger. The ledger
// is append-only: there is deliberately no Update method.
type PlayRepository struct {
	collection *mongo.Collection
}

// NewPlayRepository creates a new PlayRepository
func NewPlayRepository(db *mongo.Database) *PlayRepository {
	return &PlayRepository{
		collection: db.Collection("plays"),
	}
}

// Create appends one play to the ledger
func (r *PlayRepository) Create(ctx context.Context, play *models.Play) error {
	play.ID = primitive.NewObjectID()
	play.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, play)
	return err
}

// CountByCampaignAndIPSince counts non-test plays from one IP against a
// campaign in a trailing window. Counted fresh on every call; the IP
// velocity rule depends on it.
func (r *PlayRepository) CountByCampaignAndIPSince(ctx context.Context, campaignID primitive.ObjectID, ip string, since time.Time) (int64, error) {
	filter := bson.M{
		"campaignId": campaignID,
		"ipAddress":  ip,
		"isTest":     false,
		"playedAt":   bson.M{"$gte": since},
	}
	return r.collection.CountDocuments(ctx, filter)
}

// CountNonTestByCampaign counts real plays of a campaign, used by the
// soft-vs-hard delete decision.
func (r *PlayRepository) CountNonTestByCampaign(ctx context.Context, campaignID primitive.ObjectID) (int64, error) {
	filter := bson.M{"campaignId": campaignID, "isTest": false}
	return r.collection.CountDocuments(ctx, filter)
}

// DeleteTestByCampaign removes test-play history on hard campaign delete
func (r *PlayRepository) DeleteTestByCampaign(ctx context.Context, campaignID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"campaignId": campaignID, "isTest": true})
	return err
}

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

// Compile-time check to ensure PlayerRepository implements the interface
var _ repositories.PlayerRepository = (*PlayerRepository)(nil)

// PlayerRepository handles MongoDB operations for Player
type PlayerRepository struct {
	collection *mongo.Collection
}

// NewPlayerRepository creates a new PlayerRepository
func NewPlayerRepository(db *mongo.Database) *PlayerRepository {
	return &PlayerRepository{
		collection: db.Collection("players"),
	}
}

// Create inserts a new player
func (r *PlayerRepository) Create(ctx context.Context, player *models.Player) error {
	player.ID = primitive.NewObjectID()
	player.CreatedAt = time.Now()
	player.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, player)
	if mongo.IsDuplicateKeyError(err) {
		return repositories.ErrDuplicate
	}
	return err
}

// FindByID finds a player by ID
func (r *PlayerRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Player, error) {
	var player models.Player
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&player)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &player, nil
}

// FindByCampaignAndEmailHash finds the player record for a campaign+identity pair
func (r *PlayerRepository) FindByCampaignAndEmailHash(ctx context.Context, campaignID primitive.ObjectID, emailHash string) (*models.Player, error) {
	var player models.Player
	filter := bson.M{"campaignId": campaignID, "emailHash": emailHash}
	err := r.collection.FindOne(ctx, filter).Decode(&player)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &player, nil
}

// IncrementPlays atomically increments a player's running play count
func (r *PlayerRepository) IncrementPlays(ctx context.Context, playerID primitive.ObjectID) error {
	filter := bson.M{"_id": playerID}
	update := bson.M{
		"$inc": bson.M{"playsCount": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteByCampaign removes all players of a campaign (hard campaign delete only)
func (r *PlayerRepository) DeleteByCampaign(ctx context.Context, campaignID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"campaignId": campaignID})
	return err
}

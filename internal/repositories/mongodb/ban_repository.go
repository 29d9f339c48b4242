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

// Compile-time check to ensure BanRepository implements the interface
var _ repositories.BanRepository = (*BanRepository)(nil)

// BanRepository handles MongoDB operations for the ban lists
type BanRepository struct {
	collection *mongo.Collection
}

// NewBanRepository creates a new BanRepository
func NewBanRepository(db *mongo.Database) *BanRepository {
	return &BanRepository{
		collection: db.Collection("bans"),
	}
}

// FindActive returns the entry for (banType, value) that is in force at the
// given instant. Expired entries are left in place but never match.
func (r *BanRepository) FindActive(ctx context.Context, banType, value string, now time.Time) (*models.BanEntry, error) {
	filter := bson.M{
		"type":  banType,
		"value": value,
		"$or": []bson.M{
			{"expiresAt": bson.M{"$exists": false}},
			{"expiresAt": nil},
			{"expiresAt": bson.M{"$gt": now}},
		},
	}
	var entry models.BanEntry
	err := r.collection.FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &entry, nil
}

// Add inserts a ban entry; duplicate (type, value) pairs surface ErrDuplicate
func (r *BanRepository) Add(ctx context.Context, entry *models.BanEntry) error {
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, entry)
	if mongo.IsDuplicateKeyError(err) {
		return repositories.ErrDuplicate
	}
	return err
}

// Remove deletes a ban entry by ID
func (r *BanRepository) Remove(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// FindAll lists all ban entries, active or expired
func (r *BanRepository) FindAll(ctx context.Context) ([]*models.BanEntry, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.BanEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*models.BanEntry{}
	}
	return entries, nil
}

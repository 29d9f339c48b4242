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

// Compile-time check to ensure RewardCodeRepository implements the interface
var _ repositories.RewardCodeRepository = (*RewardCodeRepository)(nil)

// RewardCodeRepository handles MongoDB operations for RewardCode
type RewardCodeRepository struct {
	collection *mongo.Collection
}

// NewRewardCodeRepository creates a new RewardCodeRepository
func NewRewardCodeRepository(db *mongo.Database) *RewardCodeRepository {
	return &RewardCodeRepository{
		collection: db.Collection("reward_codes"),
	}
}

// Create inserts a reward code. The unique index on code turns a collision
// into ErrDuplicate so the issuer can regenerate and retry.
func (r *RewardCodeRepository) Create(ctx context.Context, reward *models.RewardCode) error {
	reward.ID = primitive.NewObjectID()
	reward.CreatedAt = time.Now()
	reward.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, reward)
	if mongo.IsDuplicateKeyError(err) {
		return repositories.ErrDuplicate
	}
	return err
}

// FindByCodeAndTenant finds a reward code scoped to a tenant. A zero tenant
// ID searches across all tenants (super admin lookups).
func (r *RewardCodeRepository) FindByCodeAndTenant(ctx context.Context, code string, tenantID primitive.ObjectID) (*models.RewardCode, error) {
	var reward models.RewardCode
	filter := bson.M{"code": code}
	if !tenantID.IsZero() {
		filter["tenantId"] = tenantID
	}
	err := r.collection.FindOne(ctx, filter).Decode(&reward)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &reward, nil
}

// MarkRedeemed transitions a code active->redeemed. The status guard makes
// the transition one-way: a second redemption matches nothing.
func (r *RewardCodeRepository) MarkRedeemed(ctx context.Context, code string, redeemedBy string, at time.Time) error {
	filter := bson.M{"code": code, "status": models.RewardStatusActive}
	update := bson.M{"$set": bson.M{
		"status":     models.RewardStatusRedeemed,
		"redeemedAt": at,
		"redeemedBy": redeemedBy,
		"updatedAt":  time.Now(),
	}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkExpired lazily transitions a past-expiry code to expired
func (r *RewardCodeRepository) MarkExpired(ctx context.Context, code string) error {
	filter := bson.M{"code": code, "status": models.RewardStatusActive}
	update := bson.M{"$set": bson.M{
		"status":    models.RewardStatusExpired,
		"updatedAt": time.Now(),
	}}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// Delete removes a reward code, used only to compensate a failed ledger append
func (r *RewardCodeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

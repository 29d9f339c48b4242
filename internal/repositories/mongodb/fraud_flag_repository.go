package mongodb

import (
	"context"
	"time"

	"github.com/luckyroue/wheelplay-backend/internal/models"
	"github.com/luckyroue/wheelplay-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure FraudFlagRepository implements the interface
var _ repositories.FraudFlagRepository = (*FraudFlagRepository)(nil)

// FraudFlagRepository handles MongoDB operations for FraudFlag
type FraudFlagRepository struct {
	collection *mongo.Collection
}

// NewFraudFlagRepository creates a new FraudFlagRepository
func NewFraudFlagRepository(db *mongo.Database) *FraudFlagRepository {
	return &FraudFlagRepository{
		collection: db.Collection("fraud_flags"),
	}
}

// Create appends a fraud flag
func (r *FraudFlagRepository) Create(ctx context.Context, flag *models.FraudFlag) error {
	flag.ID = primitive.NewObjectID()
	flag.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, flag)
	return err
}

package mongodb

import (
	"context"
	"time"

	"github.com/luckyroue/wheelplay-backend/internal/models"
	"github.com/luckyroue/wheelplay-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure ConsentRepository implements the interface
var _ repositories.ConsentRepository = (*ConsentRepository)(nil)

// ConsentRepository handles MongoDB operations for Consent
type ConsentRepository struct {
	collection *mongo.Collection
}

// NewConsentRepository creates a new ConsentRepository
func NewConsentRepository(db *mongo.Database) *ConsentRepository {
	return &ConsentRepository{
		collection: db.Collection("consents"),
	}
}

// Create appends a consent record
func (r *ConsentRepository) Create(ctx context.Context, consent *models.Consent) error {
	consent.ID = primitive.NewObjectID()
	consent.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, consent)
	return err
}

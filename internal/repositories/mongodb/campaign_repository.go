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

// Compile-time check to ensure CampaignRepository implements the interface
var _ repositories.CampaignRepository = (*CampaignRepository)(nil)

// CampaignRepository handles MongoDB operations for Campaign
type CampaignRepository struct {
	collection *mongo.Collection
}

// NewCampaignRepository creates a new CampaignRepository
func NewCampaignRepository(db *mongo.Database) *CampaignRepository {
	return &CampaignRepository{
		collection: db.Collection("campaigns"),
	}
}

// Create inserts a new campaign
func (r *CampaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	campaign.ID = primitive.NewObjectID()
	campaign.CreatedAt = time.Now()
	campaign.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, campaign)
	if mongo.IsDuplicateKeyError(err) {
		return repositories.ErrDuplicate
	}
	return err
}

// FindByID finds a campaign by ID
func (r *CampaignRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&campaign)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &campaign, nil
}

// FindBySlug finds a campaign by slug, optionally restricted to statuses
func (r *CampaignRepository) FindBySlug(ctx context.Context, slug string, statuses []string) (*models.Campaign, error) {
	filter := bson.M{"slug": slug}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}
	var campaign models.Campaign
	err := r.collection.FindOne(ctx, filter).Decode(&campaign)
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// Update updates an existing campaign
func (r *CampaignRepository) Update(ctx context.Context, campaign *models.Campaign) error {
	campaign.UpdatedAt = time.Now()
	filter := bson.M{"_id": campaign.ID}
	update := bson.M{"$set": campaign}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// Delete hard-deletes a campaign by ID
func (r *CampaignRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

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

// Compile-time check to ensure TenantRepository implements the interface
var _ repositories.TenantRepository = (*TenantRepository)(nil)

// TenantRepository handles MongoDB operations for Tenant
type TenantRepository struct {
	collection *mongo.Collection
}

// NewTenantRepository creates a new TenantRepository
func NewTenantRepository(db *mongo.Database) *TenantRepository {
	return &TenantRepository{
		collection: db.Collection("tenants"),
	}
}

// Create inserts a new tenant
func (r *TenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	tenant.ID = primitive.NewObjectID()
	tenant.CreatedAt = time.Now()
	tenant.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, tenant)
	return err
}

// FindByID finds a tenant by ID
func (r *TenantRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tenant)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &tenant, nil
}

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

// Compile-time check to ensure StaffUserRepository implements the interface
var _ repositories.StaffUserRepository = (*StaffUserRepository)(nil)

// StaffUserRepository handles MongoDB operations for StaffUser
type StaffUserRepository struct {
	collection *mongo.Collection
}

// NewStaffUserRepository creates a new StaffUserRepository
func NewStaffUserRepository(db *mongo.Database) *StaffUserRepository {
	return &StaffUserRepository{
		collection: db.Collection("staff_users"),
	}
}

// Create inserts a new staff user
func (r *StaffUserRepository) Create(ctx context.Context, user *models.StaffUser) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return repositories.ErrDuplicate
	}
	return err
}

// FindByEmail finds a staff user by email
func (r *StaffUserRepository) FindByEmail(ctx context.Context, email string) (*models.StaffUser, error) {
	var user models.StaffUser
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &user, nil
}

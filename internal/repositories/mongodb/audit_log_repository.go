package mongodb

import (
	"context"
	"time"

	"github.com/luckyroue/wheelplay-backend/internal/models"
	"github.com/luckyroue/wheelplay-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure AuditLogRepository implements the interface
var _ repositories.AuditLogRepository = (*AuditLogRepository)(nil)

// AuditLogRepository handles MongoDB operations for AuditLog
type AuditLogRepository struct {
	collection *mongo.Collection
}

// NewAuditLogRepository creates a new AuditLogRepository
func NewAuditLogRepository(db *mongo.Database) *AuditLogRepository {
	return &AuditLogRepository{
		collection: db.Collection("audit_logs"),
	}
}

// Create appends an audit log entry
func (r *AuditLogRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

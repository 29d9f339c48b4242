package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Staff roles. Tenant staff can redeem codes; owners also manage campaigns;
// super admins cross tenant boundaries.
const (
	RoleSuperAdmin  = "super_admin"
	RoleTenantOwner = "tenant_owner"
	RoleTenantStaff = "tenant_staff"
)

// StaffUser is an authenticated staff account scoped to a tenant.
type StaffUser struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"`
	TenantID  primitive.ObjectID `bson:"tenantId,omitempty" json:"tenantId,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// LoginRequest is the staff login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthClaims is the decoded JWT identity attached to requests.
type AuthClaims struct {
	UserID   string
	Email    string
	Role     string
	TenantID string
}

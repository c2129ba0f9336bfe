package adminRepo

import (
	"context"
	"fmt"
	"time"

	"fieldserve/database"
	"fieldserve/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// AdminRepository defines persistence for admin accounts.
type AdminRepository interface {
	GetByUsername(username string) (*models.Admin, error)
	EnsureSeedAdmin(username, password string) error
}

// MongoAdminRepo implements AdminRepository using MongoDB.
type MongoAdminRepo struct {
	coll *mongo.Collection
}

// NewMongoAdminRepo creates a new instance of AdminRepository using MongoDB.
func NewMongoAdminRepo() AdminRepository {
	coll := database.DB().Collection("admins")
	repo := &MongoAdminRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAdminRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByUsername retrieves an admin account by username.
func (r *MongoAdminRepo) GetByUsername(username string) (*models.Admin, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var admin models.Admin
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&admin); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch admin %s: %w", username, err)
	}
	return &admin, nil
}

// EnsureSeedAdmin creates the default admin account when the collection is
// empty. Subsequent runs are no-ops.
func (r *MongoAdminRepo) EnsureSeedAdmin(username, password string) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed admin password: %w", err)
	}

	admin := models.Admin{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if _, err := r.coll.InsertOne(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}
	return nil
}

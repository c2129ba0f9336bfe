package callRepo

import (
	"context"
	"fmt"
	"time"

	"fieldserve/database"
	"fieldserve/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCallRepo implements CallRepository using MongoDB.
type MongoCallRepo struct {
	coll *mongo.Collection
}

// NewMongoCallRepo creates a new instance of CallRepository using MongoDB.
func NewMongoCallRepo() CallRepository {
	coll := database.DB().Collection("calls")
	repo := &MongoCallRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoCallRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "technicianId", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "closedAt", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new call document.
func (r *MongoCallRepo) Create(call *models.Call) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	if call.CreatedAt.IsZero() {
		call.CreatedAt = now
	}
	call.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, call)
	if err != nil {
		return fmt.Errorf("failed to create call: %w", err)
	}
	return nil
}

// GetByID retrieves a call by its unique ID.
func (r *MongoCallRepo) GetByID(id string) (*models.Call, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var call models.Call
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&call); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch call with id %s: %w", id, err)
	}
	return &call, nil
}

// UpdateFields applies a partial update to a call document.
func (r *MongoCallRepo) UpdateFields(id string, fields map[string]any) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	fields["updatedAt"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update call with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("call with id %s not found", id)
	}
	return nil
}

// Delete removes a call document by its ID.
func (r *MongoCallRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete call with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("call with id %s not found", id)
	}
	return nil
}

// List retrieves calls matching the filter, newest first.
func (r *MongoCallRepo) List(filter CallFilter) ([]models.Call, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.TechnicianID != "" {
		query["technicianId"] = filter.TechnicianID
	}
	if filter.From != nil || filter.To != nil {
		created := bson.M{}
		if filter.From != nil {
			created["$gte"] = *filter.From
		}
		if filter.To != nil {
			created["$lt"] = *filter.To
		}
		query["createdAt"] = created
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve calls: %w", err)
	}
	defer cursor.Close(ctx)

	var calls []models.Call
	if err := cursor.All(ctx, &calls); err != nil {
		return nil, fmt.Errorf("failed to decode calls: %w", err)
	}
	return calls, nil
}

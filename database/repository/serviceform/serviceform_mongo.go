package serviceformRepo

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

// MongoServiceFormRepo implements ServiceFormRepository using MongoDB.
type MongoServiceFormRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceFormRepo creates a new instance of ServiceFormRepository using MongoDB.
func NewMongoServiceFormRepo() ServiceFormRepository {
	coll := database.DB().Collection("service_forms")
	repo := &MongoServiceFormRepo{coll: coll}

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
func (r *MongoServiceFormRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "formKey", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "technicianId", Value: 1}, {Key: "createdAt", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new service form document.
func (r *MongoServiceFormRepo) Create(form *models.ServiceForm) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	form.CreatedAt = now
	form.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, form)
	if err != nil {
		return fmt.Errorf("failed to create service form: %w", err)
	}
	return nil
}

// GetByFormKey retrieves a service form by its idempotency key.
func (r *MongoServiceFormRepo) GetByFormKey(key string) (*models.ServiceForm, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var form models.ServiceForm
	if err := r.coll.FindOne(ctx, bson.M{"formKey": key}).Decode(&form); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch service form: %w", err)
	}
	return &form, nil
}

// AppendPhotos adds photo identifiers to an existing form.
func (r *MongoServiceFormRepo) AppendPhotos(id string, photos []string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"photos": bson.M{"$each": photos}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to append photos to form %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("service form with id %s not found", id)
	}
	return nil
}

// List retrieves service forms matching the filter, newest first.
func (r *MongoServiceFormRepo) List(filter FormFilter) ([]models.ServiceForm, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{}
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
		return nil, fmt.Errorf("failed to retrieve service forms: %w", err)
	}
	defer cursor.Close(ctx)

	var forms []models.ServiceForm
	if err := cursor.All(ctx, &forms); err != nil {
		return nil, fmt.Errorf("failed to decode service forms: %w", err)
	}
	return forms, nil
}

package technicianRepo

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

// MongoTechnicianRepo implements TechnicianRepository using MongoDB.
type MongoTechnicianRepo struct {
	coll *mongo.Collection
}

// NewMongoTechnicianRepo creates a new instance of TechnicianRepository using MongoDB.
func NewMongoTechnicianRepo() TechnicianRepository {
	coll := database.DB().Collection("technicians")
	repo := &MongoTechnicianRepo{coll: coll}

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
func (r *MongoTechnicianRepo) ensureIndexes() error {
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

// Create inserts a new technician document.
func (r *MongoTechnicianRepo) Create(tech *models.Technician) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	tech.CreatedAt = now
	tech.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, tech)
	if err != nil {
		return fmt.Errorf("failed to create technician: %w", err)
	}
	return nil
}

// GetByID retrieves a technician by its unique ID.
func (r *MongoTechnicianRepo) GetByID(id string) (*models.Technician, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var tech models.Technician
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&tech); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch technician with id %s: %w", id, err)
	}
	return &tech, nil
}

// GetByUsername retrieves a technician by username.
func (r *MongoTechnicianRepo) GetByUsername(username string) (*models.Technician, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var tech models.Technician
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&tech); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch technician %s: %w", username, err)
	}
	return &tech, nil
}

// GetAll retrieves all technicians.
func (r *MongoTechnicianRepo) GetAll() ([]models.Technician, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve technicians: %w", err)
	}
	defer cursor.Close(ctx)

	var techs []models.Technician
	if err := cursor.All(ctx, &techs); err != nil {
		return nil, fmt.Errorf("failed to decode technicians: %w", err)
	}
	return techs, nil
}

// UpdateFields applies a partial update to a technician document.
func (r *MongoTechnicianRepo) UpdateFields(id string, fields map[string]any) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	fields["updatedAt"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update technician with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("technician with id %s not found", id)
	}
	return nil
}

// Delete removes a technician document by its ID. Historical calls and
// payments referencing the technician are intentionally left in place.
func (r *MongoTechnicianRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete technician with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("technician with id %s not found", id)
	}
	return nil
}

// AddAssignedCall appends a call id to the technician's assigned list.
func (r *MongoTechnicianRepo) AddAssignedCall(techID, callID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$addToSet": bson.M{"assignedCallIds": callID},
		"$set":      bson.M{"updatedAt": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": techID}, update)
	if err != nil {
		return fmt.Errorf("failed to attach call %s to technician %s: %w", callID, techID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("technician with id %s not found", techID)
	}
	return nil
}

// RemoveAssignedCall detaches a call id from the technician's assigned list.
func (r *MongoTechnicianRepo) RemoveAssignedCall(techID, callID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$pull": bson.M{"assignedCallIds": callID},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": techID}, update); err != nil {
		return fmt.Errorf("failed to detach call %s from technician %s: %w", callID, techID, err)
	}
	return nil
}

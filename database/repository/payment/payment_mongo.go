package paymentRepo

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

// MongoPaymentRepo implements PaymentRepository using MongoDB.
type MongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo creates a new instance of PaymentRepository using MongoDB.
func NewMongoPaymentRepo() PaymentRepository {
	coll := database.DB().Collection("payments")
	repo := &MongoPaymentRepo{coll: coll}

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
// The compound index backs the same-day duplicate guard; the guard itself is
// read-then-insert, so a race window remains between the two operations.
func (r *MongoPaymentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "technicianId", Value: 1}, {Key: "createdAt", Value: 1}}},
		{Keys: bson.D{
			{Key: "technicianId", Value: 1},
			{Key: "receiverName", Value: 1},
			{Key: "mode", Value: 1},
			{Key: "onlineAmount", Value: 1},
			{Key: "cashAmount", Value: 1},
			{Key: "createdAt", Value: 1},
		}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new payment document.
func (r *MongoPaymentRepo) Create(payment *models.Payment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now()
	}

	_, err := r.coll.InsertOne(ctx, payment)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// GetByID retrieves a payment by its unique ID.
func (r *MongoPaymentRepo) GetByID(id string) (*models.Payment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var payment models.Payment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&payment); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch payment with id %s: %w", id, err)
	}
	return &payment, nil
}

// Delete removes a payment document by its ID.
func (r *MongoPaymentRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete payment with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("payment with id %s not found", id)
	}
	return nil
}

// List retrieves payments matching the filter, newest first.
func (r *MongoPaymentRepo) List(filter PaymentFilter) ([]models.Payment, error) {
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
		return nil, fmt.Errorf("failed to retrieve payments: %w", err)
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}
	return payments, nil
}

// dayBounds returns the [start, end) range of the calendar day containing at,
// in at's location.
func dayBounds(at time.Time) (time.Time, time.Time) {
	start := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	return start, start.AddDate(0, 0, 1)
}

// ExistsDuplicateSameDay checks for an identical submission earlier the same
// calendar day.
func (r *MongoPaymentRepo) ExistsDuplicateSameDay(p *models.Payment, at time.Time) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	dayStart, dayEnd := dayBounds(at)

	filter := bson.M{
		"technicianId": p.TechnicianID,
		"receiverName": p.ReceiverName,
		"mode":         p.Mode,
		"onlineAmount": p.OnlineAmount,
		"cashAmount":   p.CashAmount,
		"createdAt":    bson.M{"$gte": dayStart, "$lt": dayEnd},
	}

	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check duplicate payment: %w", err)
	}
	return count > 0, nil
}

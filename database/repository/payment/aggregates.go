// File: database/repository/payment/aggregates.go
package paymentRepo

import (
	"fmt"
	"time"

	"fieldserve/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ListCallRefs unwinds every payment's call-reference list into a flat slice,
// optionally scoped to one technician. This feeds the paid-status matching
// helpers, which need only the references.
func (r *MongoPaymentRepo) ListCallRefs(techID string) ([]models.CallRef, error) {
	ctx, cancel := newContext(15 * time.Second)
	defer cancel()

	match := bson.M{}
	if techID != "" {
		match["technicianId"] = techID
	}

	pipeline := []bson.D{
		{{Key: "$match", Value: match}},
		{{Key: "$unwind", Value: "$calls"}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$calls"}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to unwind payment call refs: %w", err)
	}
	defer cursor.Close(ctx)

	var refs []models.CallRef
	if err := cursor.All(ctx, &refs); err != nil {
		return nil, fmt.Errorf("failed to decode payment call refs: %w", err)
	}
	return refs, nil
}

// File: database/repository/call/callMongoQueries.go
package callRepo

import (
	"fmt"
	"time"

	"fieldserve/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ListByEffectiveClosedDate returns calls whose effective closed date falls
// in [start, end). Historical documents without a closedAt fall back to
// createdAt for windowing.
func (r *MongoCallRepo) ListByEffectiveClosedDate(start, end time.Time, techID string) ([]models.Call, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	window := bson.M{
		"$or": []bson.M{
			{"closedAt": bson.M{"$gte": start, "$lt": end}},
			{
				"closedAt":  bson.M{"$in": []any{nil}},
				"createdAt": bson.M{"$gte": start, "$lt": end},
			},
			{
				"closedAt":  bson.M{"$exists": false},
				"createdAt": bson.M{"$gte": start, "$lt": end},
			},
		},
	}
	query := window
	if techID != "" {
		query = bson.M{"$and": []bson.M{{"technicianId": techID}, window}}
	}

	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve windowed calls: %w", err)
	}
	defer cursor.Close(ctx)

	var calls []models.Call
	if err := cursor.All(ctx, &calls); err != nil {
		return nil, fmt.Errorf("failed to decode windowed calls: %w", err)
	}
	return calls, nil
}

// GroupClosedLifetime groups all-time Closed calls by technician id.
func (r *MongoCallRepo) GroupClosedLifetime(techID string) ([]models.TechnicianLifetime, error) {
	ctx, cancel := newContext(15 * time.Second)
	defer cancel()

	match := bson.M{"status": models.CallClosed}
	if techID != "" {
		match["technicianId"] = techID
	}

	pipeline := []bson.D{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":    "$technicianId",
			"count":  bson.M{"$sum": 1},
			"amount": bson.M{"$sum": "$price"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate lifetime closed calls: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.TechnicianLifetime
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode lifetime rows: %w", err)
	}
	return rows, nil
}

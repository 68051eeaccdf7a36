package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"carecompass/internal/model"
)

// FacilityRepo looks up nearby care facilities by postal code. Used by
// the presentation layer after a recommendation exists; the triage core
// never touches it.
type FacilityRepo interface {
	FindByZip(ctx context.Context, zip string, limit int) ([]model.Facility, error)
}

type facilityRepo struct {
	collection *mongo.Collection
}

// NewFacilityRepo reads from the "facilities" collection.
func NewFacilityRepo(db *mongo.Database) FacilityRepo {
	return &facilityRepo{collection: db.Collection("facilities")}
}

func (r *facilityRepo) FindByZip(ctx context.Context, zip string, limit int) ([]model.Facility, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "distance_miles", Value: 1}}).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{"zip": zip}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var facilities []model.Facility
	if err := cursor.All(ctx, &facilities); err != nil {
		return nil, err
	}
	return facilities, nil
}

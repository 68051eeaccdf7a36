package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"carecompass/internal/model"
)

// EvidenceRepo reads the retrospective outcome dataset. It is consulted
// exactly once at process start; the loaded records are indexed in
// memory and never re-fetched.
type EvidenceRepo interface {
	LoadAll(ctx context.Context) ([]model.EvidenceRecord, error)
}

type evidenceRepo struct {
	collection *mongo.Collection
}

// NewEvidenceRepo reads evidence records from the "evidence" collection.
func NewEvidenceRepo(db *mongo.Database) EvidenceRepo {
	return &evidenceRepo{collection: db.Collection("evidence")}
}

func (r *evidenceRepo) LoadAll(ctx context.Context) ([]model.EvidenceRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []model.EvidenceRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

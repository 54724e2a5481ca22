package packageRepo

import (
	"context"
	"time"

	"travelbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindActiveByID returns an active package by id, or mongo.ErrNoDocuments
// when the package is missing or inactive.
func (r *mongoPackageRepo) FindActiveByID(ctx context.Context, id string) (*models.TravelPackage, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var pkg models.TravelPackage
	err := r.coll.FindOne(ctx, bson.M{"id": id, "is_active": true}).Decode(&pkg)
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// List returns one page of active packages, newest first, with the total.
func (r *mongoPackageRepo) List(ctx context.Context, page, limit int) ([]models.TravelPackage, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	query := bson.M{"is_active": true}
	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, query, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	packages := make([]models.TravelPackage, 0, limit)
	if err := cursor.All(ctx, &packages); err != nil {
		return nil, 0, err
	}
	return packages, total, nil
}

package packageRepo

import (
	"context"

	"travelbook/database"
	"travelbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// PackageRepository is the read side of the package content store. Writes
// happen in the content management system, outside this service.
type PackageRepository interface {
	FindActiveByID(ctx context.Context, id string) (*models.TravelPackage, error)
	List(ctx context.Context, page, limit int) ([]models.TravelPackage, int64, error)
}

type mongoPackageRepo struct {
	coll *mongo.Collection
}

// NewMongoPackageRepo returns a PackageRepository backed by MongoDB.
func NewMongoPackageRepo() PackageRepository {
	return &mongoPackageRepo{
		coll: database.DB().Collection("packages"),
	}
}

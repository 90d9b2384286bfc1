package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Arjunreddypulugu/timeclock-web/internal/core/domain"
)

// collectionSites carries the original LocationCustomerMapping table.
const collectionSites = "location_customer_mapping"

type SiteRepository struct {
	col *mongo.Collection
}

func NewSiteRepository(db *mongo.Database) *SiteRepository {
	return &SiteRepository{col: db.Collection(collectionSites)}
}

// List returns every site sorted by name, giving the geofence scan a
// deterministic iteration order.
func (r *SiteRepository) List(ctx context.Context) ([]domain.Site, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "customer_name", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var sites []domain.Site
	if err := cur.All(ctx, &sites); err != nil {
		return nil, err
	}
	return sites, nil
}

// Create inserts a new site. The unique name index turns a duplicate into
// domain.ErrSiteExists.
func (r *SiteRepository) Create(ctx context.Context, s *domain.Site) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, s)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSiteExists
		}
		return err
	}
	return nil
}

// EnsureIndexes creates the unique site name index.
func (r *SiteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "customer_name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

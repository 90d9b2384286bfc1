package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Arjunreddypulugu/timeclock-web/internal/core/domain"
)

// collectionWorkers carries the original SubContractorEmployees table.
const collectionWorkers = "sub_contractor_employees"

type WorkerRepository struct {
	col *mongo.Collection
}

func NewWorkerRepository(db *mongo.Database) *WorkerRepository {
	return &WorkerRepository{col: db.Collection(collectionWorkers)}
}

// FindByDevice resolves the worker whose binding matches the device identifier.
func (r *WorkerRepository) FindByDevice(ctx context.Context, deviceID string) (*domain.Worker, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var w domain.Worker
	err := r.col.FindOne(ctx, bson.M{"device_id": deviceID}).Decode(&w)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrWorkerNotFound
		}
		return nil, err
	}
	return &w, nil
}

// FindByNumber resolves a worker by phone number.
func (r *WorkerRepository) FindByNumber(ctx context.Context, number string) (*domain.Worker, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var w domain.Worker
	err := r.col.FindOne(ctx, bson.M{"number": number}).Decode(&w)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrWorkerNotFound
		}
		return nil, err
	}
	return &w, nil
}

// RebindDevice points the worker's device binding at a new device. Matching
// no document is not an error.
func (r *WorkerRepository) RebindDevice(ctx context.Context, number, deviceID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx,
		bson.M{"number": number},
		bson.M{"$set": bson.M{"device_id": deviceID}},
	)
	return err
}

// Create inserts a new worker. The unique index on number turns a duplicate
// registration into domain.ErrWorkerExists.
func (r *WorkerRepository) Create(ctx context.Context, w *domain.Worker) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, w)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrWorkerExists
		}
		return err
	}
	return nil
}

// EnsureIndexes creates the unique number index and the device lookup index.
func (r *WorkerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "device_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Arjunreddypulugu/timeclock-web/internal/core/domain"
	"github.com/Arjunreddypulugu/timeclock-web/internal/core/ports"
)

// collectionSessions carries the original TimeClock table.
const collectionSessions = "time_clock"

type SessionRepository struct {
	col *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{col: db.Collection(collectionSessions)}
}

// openFilter matches rows with no clock-out set.
func openFilter(number string) bson.M {
	return bson.M{"number": number, "clock_out": nil}
}

// OpenSessionFor returns the newest open session for the number.
func (r *SessionRepository) OpenSessionFor(ctx context.Context, number string) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "clock_in", Value: -1}})

	var s domain.Session
	err := r.col.FindOne(ctx, openFilter(number), opts).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoOpenSession
		}
		return nil, err
	}
	return &s, nil
}

// ClockIn appends a new session row. ClockOut is stored as an explicit null
// so the open filter matches it.
func (r *SessionRepository) ClockIn(ctx context.Context, s *domain.Session) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"sub_contractor": s.SubContractor,
		"employee":       s.Name,
		"number":         s.Number,
		"clock_in":       s.ClockIn.UTC(),
		"clock_out":      nil,
		"lat":            s.Lat,
		"lon":            s.Lon,
		"device_id":      s.DeviceID,
	}
	_, err := r.col.InsertOne(ctx, doc)
	return err
}

// ClockOut stamps every open row for the number with the same time, so a
// past invariant violation (two open rows) is swept up in one write.
func (r *SessionRepository) ClockOut(ctx context.Context, number string, at time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateMany(ctx,
		openFilter(number),
		bson.M{"$set": bson.M{"clock_out": at.UTC()}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// List returns a page of sessions matching filter plus the total count,
// newest clock-in first.
func (r *SessionRepository) List(ctx context.Context, filter ports.SessionFilter) ([]*domain.Session, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Number != "" {
		query["number"] = filter.Number
	}
	if filter.SubContractor != "" {
		query["sub_contractor"] = filter.SubContractor
	}
	if filter.OpenOnly {
		query["clock_out"] = nil
	}
	clockIn := bson.M{}
	if !filter.DateFrom.IsZero() {
		clockIn["$gte"] = filter.DateFrom.UTC()
	}
	if !filter.DateTo.IsZero() {
		clockIn["$lte"] = filter.DateTo.UTC()
	}
	if len(clockIn) > 0 {
		query["clock_in"] = clockIn
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "clock_in", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var items []*domain.Session
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// EnsureIndexes creates the ledger lookup indexes.
func (r *SessionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "number", Value: 1}, {Key: "clock_out", Value: 1}}},
		{Keys: bson.D{{Key: "clock_in", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

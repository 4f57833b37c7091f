package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openadr/vtn/internal/core/domain"
	"github.com/openadr/vtn/internal/core/policy"
	"github.com/openadr/vtn/internal/core/ports"
)

const collectionEvents = "events"

// EventRepository implements ports.EventRepository using MongoDB.
// ven_ids is an array field here, the same denormalization Program uses
// for bound_ven_ids, since an event's VEN set is its parent program's
// bound VENs snapshotted at creation time.
type EventRepository struct {
	col *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionEvents)}
}

func (r *EventRepository) List(ctx context.Context, pred policy.Predicate, filter ports.EventFilter, page ports.Pagination) (ports.ListPage[domain.Event], error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := predicateFilter(pred, "ven_ids")
	if filter.ProgramID != "" {
		query["program_id"] = filter.ProgramID
	}
	if filter.Target != nil {
		query = withTargetFilter(query, filter.Target)
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return ports.ListPage[domain.Event]{}, err
	}

	// priority ASC NULLS LAST, created_date_time DESC (spec §6). Mongo's
	// BSON type-ordering sorts null *before* numbers, the opposite of
	// what's wanted, so a computed has_priority field is sorted first to
	// push null-priority events to the end.
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: query}},
		{{Key: "$addFields", Value: bson.M{"has_priority": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$priority", nil}}, 1, 0}}}}},
		{{Key: "$sort", Value: bson.D{{Key: "has_priority", Value: 1}, {Key: "priority", Value: 1}, {Key: "created_date_time", Value: -1}}}},
		{{Key: "$skip", Value: int64(page.Skip)}},
	}
	if page.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: int64(page.Limit)}})
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return ports.ListPage[domain.Event]{}, err
	}
	defer cur.Close(ctx)

	var items []domain.Event
	if err := cur.All(ctx, &items); err != nil {
		return ports.ListPage[domain.Event]{}, err
	}
	return ports.ListPage[domain.Event]{Items: items, Total: total}, nil
}

func (r *EventRepository) Get(ctx context.Context, pred policy.Predicate, id string) (domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := predicateFilter(pred, "ven_ids")
	query["_id"] = id

	var e domain.Event
	if err := r.col.FindOne(ctx, query).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Event{}, domain.ErrNotFound
		}
		return domain.Event{}, err
	}
	return e, nil
}

func (r *EventRepository) Create(ctx context.Context, e domain.Event) (domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, e); err != nil {
		return domain.Event{}, err
	}
	return e, nil
}

func (r *EventRepository) Update(ctx context.Context, pred policy.Predicate, id string, e domain.Event) (domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := predicateFilter(pred, "ven_ids")
	query["_id"] = id

	e.ID = id
	res, err := r.col.ReplaceOne(ctx, query, e)
	if err != nil {
		return domain.Event{}, err
	}
	if res.MatchedCount == 0 {
		return domain.Event{}, domain.ErrNotFound
	}
	return e, nil
}

func (r *EventRepository) Delete(ctx context.Context, pred policy.Predicate, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := predicateFilter(pred, "ven_ids")
	query["_id"] = id

	res, err := r.col.DeleteOne(ctx, query)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openadr/vtn/internal/core/domain"
	"github.com/openadr/vtn/internal/core/policy"
	"github.com/openadr/vtn/internal/core/ports"
)

const collectionVens = "vens"

// VenRepository implements ports.VenRepository using MongoDB. Delete
// cascades to the resources collection directly: the corpus has no
// multi-document transaction pattern to ground a session on, and VEN
// deletion is rare enough that a brief window between the two deletes is
// an accepted tradeoff (DESIGN.md).
type VenRepository struct {
	col       *mongo.Collection
	resources *mongo.Collection
}

func NewVenRepository(db *mongo.Database) *VenRepository {
	return &VenRepository{col: db.Collection(collectionVens), resources: db.Collection(collectionResources)}
}

func (r *VenRepository) List(ctx context.Context, pred policy.Predicate, filter ports.VenFilter, page ports.Pagination) (ports.ListPage[domain.Ven], error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := predicateFilter(pred, "_id")
	if filter.Target != nil {
		query = withTargetFilter(query, filter.Target)
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return ports.ListPage[domain.Ven]{}, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_date_time", Value: -1}}).SetSkip(int64(page.Skip))
	if page.Limit > 0 {
		opts.SetLimit(int64(page.Limit))
	}
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return ports.ListPage[domain.Ven]{}, err
	}
	defer cur.Close(ctx)

	var items []domain.Ven
	if err := cur.All(ctx, &items); err != nil {
		return ports.ListPage[domain.Ven]{}, err
	}
	return ports.ListPage[domain.Ven]{Items: items, Total: total}, nil
}

func (r *VenRepository) Get(ctx context.Context, pred policy.Predicate, id string) (domain.Ven, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := predicateFilter(pred, "_id")
	query["_id"] = id

	var v domain.Ven
	if err := r.col.FindOne(ctx, query).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Ven{}, domain.ErrNotFound
		}
		return domain.Ven{}, err
	}
	return v, nil
}

func (r *VenRepository) Create(ctx context.Context, v domain.Ven) (domain.Ven, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, v); err != nil {
		return domain.Ven{}, err
	}
	return v, nil
}

func (r *VenRepository) Update(ctx context.Context, pred policy.Predicate, id string, v domain.Ven) (domain.Ven, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := predicateFilter(pred, "_id")
	query["_id"] = id

	v.ID = id
	res := r.col.FindOneAndReplace(ctx, query, v, options.FindOneAndReplace().SetReturnDocument(options.After))
	var updated domain.Ven
	if err := res.Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Ven{}, domain.ErrNotFound
		}
		return domain.Ven{}, err
	}
	return updated, nil
}

func (r *VenRepository) Delete(ctx context.Context, pred policy.Predicate, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := predicateFilter(pred, "_id")
	query["_id"] = id

	res, err := r.col.DeleteOne(ctx, query)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}

	_, err = r.resources.DeleteMany(ctx, bson.M{"ven_id": id})
	return err
}

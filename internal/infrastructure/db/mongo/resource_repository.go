package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openadr/vtn/internal/core/domain"
	"github.com/openadr/vtn/internal/core/ports"
)

const collectionResources = "resources"

// ResourceRepository implements ports.ResourceRepository using MongoDB.
// Ownership is enforced one layer up by ResourceService against the owning
// VEN, so this repository only ever scopes by ven_id and target.
type ResourceRepository struct {
	col *mongo.Collection
}

func NewResourceRepository(db *mongo.Database) *ResourceRepository {
	return &ResourceRepository{col: db.Collection(collectionResources)}
}

func (r *ResourceRepository) List(ctx context.Context, filter ports.ResourceFilter, page ports.Pagination) (ports.ListPage[domain.Resource], error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"ven_id": filter.VenID}
	if filter.Target != nil {
		query = withTargetFilter(query, filter.Target)
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return ports.ListPage[domain.Resource]{}, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_date_time", Value: 1}}).SetSkip(int64(page.Skip))
	if page.Limit > 0 {
		opts.SetLimit(int64(page.Limit))
	}
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return ports.ListPage[domain.Resource]{}, err
	}
	defer cur.Close(ctx)

	var items []domain.Resource
	if err := cur.All(ctx, &items); err != nil {
		return ports.ListPage[domain.Resource]{}, err
	}
	return ports.ListPage[domain.Resource]{Items: items, Total: total}, nil
}

func (r *ResourceRepository) Get(ctx context.Context, venID, id string) (domain.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var res domain.Resource
	err := r.col.FindOne(ctx, bson.M{"_id": id, "ven_id": venID}).Decode(&res)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Resource{}, domain.ErrNotFound
		}
		return domain.Resource{}, err
	}
	return res, nil
}

func (r *ResourceRepository) Create(ctx context.Context, res domain.Resource) (domain.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, res); err != nil {
		return domain.Resource{}, err
	}
	return res, nil
}

func (r *ResourceRepository) Update(ctx context.Context, venID, id string, res domain.Resource) (domain.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res.ID = id
	res.VenID = venID
	result := r.col.FindOneAndReplace(ctx, bson.M{"_id": id, "ven_id": venID}, res, options.FindOneAndReplace().SetReturnDocument(options.After))
	var updated domain.Resource
	if err := result.Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Resource{}, domain.ErrNotFound
		}
		return domain.Resource{}, err
	}
	return updated, nil
}

func (r *ResourceRepository) Delete(ctx context.Context, venID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "ven_id": venID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ResourceRepository) DeleteByVenID(ctx context.Context, venID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"ven_id": venID})
	return err
}

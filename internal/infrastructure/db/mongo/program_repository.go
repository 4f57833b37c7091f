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

const collectionPrograms = "programs"

// programDoc adds the storage-only bound_ven_ids denormalization to
// domain.Program, so the many-to-many VEN↔Program enrolment (spec §3)
// can be queried with a single $in rather than a $lookup join.
type programDoc struct {
	domain.Program `bson:",inline"`
	BoundVenIDs    []string `bson:"bound_ven_ids,omitempty"`
}

// ProgramRepository implements ports.ProgramRepository using MongoDB.
type ProgramRepository struct {
	col *mongo.Collection
}

func NewProgramRepository(db *mongo.Database) *ProgramRepository {
	return &ProgramRepository{col: db.Collection(collectionPrograms)}
}

func (r *ProgramRepository) List(ctx context.Context, pred policy.Predicate, filter ports.ProgramFilter, page ports.Pagination) (ports.ListPage[domain.Program], error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := predicateFilter(pred, "bound_ven_ids")
	if filter.Target != nil {
		query = withTargetFilter(query, filter.Target)
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return ports.ListPage[domain.Program]{}, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_date_time", Value: -1}}).SetSkip(int64(page.Skip))
	if page.Limit > 0 {
		opts.SetLimit(int64(page.Limit))
	}
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return ports.ListPage[domain.Program]{}, err
	}
	defer cur.Close(ctx)

	var docs []programDoc
	if err := cur.All(ctx, &docs); err != nil {
		return ports.ListPage[domain.Program]{}, err
	}
	items := make([]domain.Program, len(docs))
	for i, d := range docs {
		items[i] = d.Program
	}
	return ports.ListPage[domain.Program]{Items: items, Total: total}, nil
}

func (r *ProgramRepository) Get(ctx context.Context, pred policy.Predicate, id string) (domain.Program, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := predicateFilter(pred, "bound_ven_ids")
	query["_id"] = id

	var doc programDoc
	if err := r.col.FindOne(ctx, query).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Program{}, domain.ErrNotFound
		}
		return domain.Program{}, err
	}
	return doc.Program, nil
}

func (r *ProgramRepository) Create(ctx context.Context, p domain.Program) (domain.Program, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, programDoc{Program: p}); err != nil {
		return domain.Program{}, err
	}
	return p, nil
}

func (r *ProgramRepository) Update(ctx context.Context, pred policy.Predicate, id string, p domain.Program) (domain.Program, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := predicateFilter(pred, "bound_ven_ids")
	query["_id"] = id

	p.ID = id
	res := r.col.FindOneAndUpdate(ctx, query, bson.M{"$set": p}, options.FindOneAndUpdate().SetReturnDocument(options.After))
	var doc programDoc
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Program{}, domain.ErrNotFound
		}
		return domain.Program{}, err
	}
	return doc.Program, nil
}

func (r *ProgramRepository) Delete(ctx context.Context, pred policy.Predicate, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := predicateFilter(pred, "bound_ven_ids")
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

func (r *ProgramRepository) BoundVenIDs(ctx context.Context, programID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc programDoc
	err := r.col.FindOne(ctx, bson.M{"_id": programID}, options.FindOne().SetProjection(bson.M{"bound_ven_ids": 1})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return doc.BoundVenIDs, nil
}

func (r *ProgramRepository) BindVen(ctx context.Context, programID, venID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx, bson.M{"_id": programID}, bson.M{"$addToSet": bson.M{"bound_ven_ids": venID}})
	return err
}

func (r *ProgramRepository) UnbindVen(ctx context.Context, programID, venID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx, bson.M{"_id": programID}, bson.M{"$pull": bson.M{"bound_ven_ids": venID}})
	return err
}

// withTargetFilter ANDs a target-type/values constraint into query,
// matching domain.HasTarget's set semantics via an $elemMatch.
func withTargetFilter(query bson.M, f *ports.TargetFilter) bson.M {
	query["targets"] = bson.M{"$elemMatch": bson.M{
		"type":   f.Type,
		"values": bson.M{"$in": f.Values},
	}}
	return query
}

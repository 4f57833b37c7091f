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

const collectionReports = "reports"

// ReportRepository implements ports.ReportRepository using MongoDB.
// ven_id is a scalar field here, unlike Program's bound_ven_ids array, so
// predicateFilter is parameterized accordingly.
type ReportRepository struct {
	col *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{col: db.Collection(collectionReports)}
}

func (r *ReportRepository) List(ctx context.Context, pred policy.Predicate, filter ports.ReportFilter, page ports.Pagination) (ports.ListPage[domain.Report], error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := predicateFilter(pred, "ven_id")
	if filter.ProgramID != "" {
		query["program_id"] = filter.ProgramID
	}
	if filter.EventID != "" {
		query["event_id"] = filter.EventID
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return ports.ListPage[domain.Report]{}, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_date_time", Value: -1}}).SetSkip(int64(page.Skip))
	if page.Limit > 0 {
		opts.SetLimit(int64(page.Limit))
	}
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return ports.ListPage[domain.Report]{}, err
	}
	defer cur.Close(ctx)

	var items []domain.Report
	if err := cur.All(ctx, &items); err != nil {
		return ports.ListPage[domain.Report]{}, err
	}
	return ports.ListPage[domain.Report]{Items: items, Total: total}, nil
}

func (r *ReportRepository) Get(ctx context.Context, pred policy.Predicate, id string) (domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := predicateFilter(pred, "ven_id")
	query["_id"] = id

	var rep domain.Report
	if err := r.col.FindOne(ctx, query).Decode(&rep); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Report{}, domain.ErrNotFound
		}
		return domain.Report{}, err
	}
	return rep, nil
}

func (r *ReportRepository) Create(ctx context.Context, rep domain.Report) (domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, rep); err != nil {
		return domain.Report{}, err
	}
	return rep, nil
}

func (r *ReportRepository) Update(ctx context.Context, pred policy.Predicate, id string, rep domain.Report) (domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := predicateFilter(pred, "ven_id")
	query["_id"] = id

	rep.ID = id
	res := r.col.FindOneAndReplace(ctx, query, rep, options.FindOneAndReplace().SetReturnDocument(options.After))
	var updated domain.Report
	if err := res.Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Report{}, domain.ErrNotFound
		}
		return domain.Report{}, err
	}
	return updated, nil
}

func (r *ReportRepository) Delete(ctx context.Context, pred policy.Predicate, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := predicateFilter(pred, "ven_id")
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

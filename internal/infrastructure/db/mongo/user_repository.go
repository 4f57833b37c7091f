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

const collectionUsers = "users"

// UserRepository implements ports.UserRepository using MongoDB. Visibility
// is uniform (write_users gates every call one layer up), so this
// repository takes no Predicate.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

func (r *UserRepository) List(ctx context.Context, _ ports.UserFilter, page ports.Pagination) (ports.ListPage[domain.User], error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return ports.ListPage[domain.User]{}, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_date_time", Value: -1}}).SetSkip(int64(page.Skip))
	if page.Limit > 0 {
		opts.SetLimit(int64(page.Limit))
	}
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return ports.ListPage[domain.User]{}, err
	}
	defer cur.Close(ctx)

	var items []domain.User
	if err := cur.All(ctx, &items); err != nil {
		return ports.ListPage[domain.User]{}, err
	}
	return ports.ListPage[domain.User]{Items: items, Total: total}, nil
}

func (r *UserRepository) Get(ctx context.Context, id string) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u domain.User) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, u domain.User) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	u.ID = id
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": id}, u)
	if err != nil {
		return domain.User{}, err
	}
	if res.MatchedCount == 0 {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

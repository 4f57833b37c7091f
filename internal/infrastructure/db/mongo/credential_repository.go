package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openadr/vtn/internal/core/domain"
)

const collectionCredentials = "credentials"

// CredentialRepository implements ports.CredentialRepository using MongoDB.
// client_id carries a unique index at the storage layer; Create surfaces a
// duplicate as domain.ErrConflict rather than the driver's raw write error.
type CredentialRepository struct {
	col *mongo.Collection
}

func NewCredentialRepository(db *mongo.Database) *CredentialRepository {
	return &CredentialRepository{col: db.Collection(collectionCredentials)}
}

func (r *CredentialRepository) FindByClientID(ctx context.Context, clientID string) (domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Credential
	err := r.col.FindOne(ctx, bson.M{"client_id": clientID}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Credential{}, domain.ErrNotFound
		}
		return domain.Credential{}, err
	}
	return c, nil
}

func (r *CredentialRepository) Create(ctx context.Context, c domain.Credential) (domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.Credential{}, domain.ErrConflict
		}
		return domain.Credential{}, err
	}
	return c, nil
}

func (r *CredentialRepository) DeleteByUserID(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

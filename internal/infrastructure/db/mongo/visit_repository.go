package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fieldtrack/visits-api/internal/core/domain"
	"github.com/fieldtrack/visits-api/internal/core/ports"
)

const collectionVisits = "visits"

type VisitRepository struct {
	col *mongo.Collection
}

func NewVisitRepository(db *mongo.Database) *VisitRepository {
	return &VisitRepository{col: db.Collection(collectionVisits)}
}

func (r *VisitRepository) Create(ctx context.Context, v *domain.Visit) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, v); err != nil {
		return fmt.Errorf("insert visit: %w", err)
	}
	return nil
}

func (r *VisitRepository) FindByID(ctx context.Context, id string) (*domain.Visit, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var v domain.Visit
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVisitNotFound
		}
		return nil, fmt.Errorf("find visit: %w", err)
	}
	return &v, nil
}

// UpdateStatus applies the transition in a single FindOneAndUpdate whose
// filter carries the owner and the expected current status, so a stale read
// can never overwrite another request's change.
func (r *VisitRepository) UpdateStatus(ctx context.Context, id, ownerID string, from, to domain.VisitStatus, at time.Time) (*domain.Visit, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id":     id,
		"user_id": ownerID,
		"status":  from,
	}
	update := bson.M{
		"$set": bson.M{
			"status":     to,
			"updated_at": at,
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var v domain.Visit
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVisitNotFound
		}
		return nil, fmt.Errorf("update visit status: %w", err)
	}
	return &v, nil
}

func (r *VisitRepository) ListByOwner(ctx context.Context, ownerID string, page ports.Page) ([]*domain.Visit, error) {
	return r.list(ctx, bson.M{"user_id": ownerID}, page)
}

func (r *VisitRepository) ListAll(ctx context.Context, page ports.Page) ([]*domain.Visit, error) {
	return r.list(ctx, bson.M{}, page)
}

func (r *VisitRepository) list(ctx context.Context, filter bson.M, page ports.Page) ([]*domain.Visit, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter, pageOptions(page, "visit_date"))
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer cursor.Close(ctx)

	visits := make([]*domain.Visit, 0, page.Size)
	if err := cursor.All(ctx, &visits); err != nil {
		return nil, fmt.Errorf("decode visits: %w", err)
	}
	return visits, nil
}

// EnsureIndexes creates the indexes used by the owner-scoped listing.
func (r *VisitRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "visit_date", Value: -1}}},
		{Keys: bson.D{{Key: "store_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// pageOptions sorts newest first on sortField, breaking ties on _id so pages
// are stable.
func pageOptions(page ports.Page, sortField string) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: sortField, Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Size))
}

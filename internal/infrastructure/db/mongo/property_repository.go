package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cohost-ai/rental-api/internal/core/domain"
)

type PropertyRepository struct {
	col *mongo.Collection
	ids *counters
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{col: db.Collection(collectionProperties), ids: newCounters(db)}
}

func (r *PropertyRepository) Insert(ctx context.Context, p domain.Property) (domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx, collectionProperties)
	if err != nil {
		return domain.Property{}, err
	}
	p.ID = id
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return domain.Property{}, fmt.Errorf("insert property: %w", err)
	}
	return p, nil
}

func (r *PropertyRepository) Get(ctx context.Context, id int) (domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Property
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Property{}, domain.ErrPropertyNotFound
		}
		return domain.Property{}, fmt.Errorf("find property: %w", err)
	}
	return p, nil
}

// List returns the catalog in id order, which is insertion order.
func (r *PropertyRepository) List(ctx context.Context) ([]domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	props := make([]domain.Property, 0)
	if err := cur.All(ctx, &props); err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}
	return props, nil
}

// Seed inserts seed when the catalog is empty and moves the id sequence past it.
func (r *PropertyRepository) Seed(ctx context.Context, seed []domain.Property) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("count properties: %w", err)
	}
	if n == 0 && len(seed) > 0 {
		docs := make([]interface{}, len(seed))
		maxID := 0
		for i, p := range seed {
			docs[i] = p
			if p.ID > maxID {
				maxID = p.ID
			}
		}
		if _, err := r.col.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("seed properties: %w", err)
		}
		return r.ids.atLeast(ctx, collectionProperties, maxID)
	}
	return nil
}

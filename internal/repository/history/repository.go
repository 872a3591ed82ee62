package repository

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/you-humble/jewelry-pricing/internal/model"
)

// Entries are only ever inserted; the repository has no update or delete path.
type repository struct {
	coll *mongo.Collection
}

func NewHistoryRepository(collection *mongo.Collection) *repository {
	return &repository{coll: collection}
}

func (r *repository) Append(ctx context.Context, entry model.PriceHistoryEntry) error {
	const op = "repository.AppendHistory"

	if entry.ID == "" {
		return fmt.Errorf("%s: entry ID is empty", op)
	}

	if _, err := r.coll.InsertOne(ctx, EntityFromModel(entry)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) List(ctx context.Context, filter model.HistoryFilter) ([]model.PriceHistoryEntry, error) {
	const op = "repository.ListHistory"

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, BuildMongoFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var ents []PriceHistoryEntity
	if err := cur.All(ctx, &ents); err != nil {
		return nil, fmt.Errorf("%s decode: %w", op, err)
	}

	return lo.Map(ents, func(e PriceHistoryEntity, _ int) model.PriceHistoryEntry {
		return EntityToModel(e)
	}), nil
}

func (r *repository) EnsureIndexes(ctx context.Context) error {
	const op = "repository.EnsureHistoryIndexes"

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "entity_type", Value: 1},
			{Key: "entity_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
		Options: options.Index().SetName("entity_created_at"),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/you-humble/jewelry-pricing/internal/model"
	"github.com/you-humble/jewelry-pricing/platform/logger"
)

type repository struct {
	colls map[model.EntityType]*mongo.Collection
}

func NewMaterialRepository(metals, gemstones *mongo.Collection) *repository {
	return &repository{colls: map[model.EntityType]*mongo.Collection{
		model.EntityTypeMetal:    metals,
		model.EntityTypeGemstone: gemstones,
	}}
}

func (r *repository) coll(t model.EntityType) (*mongo.Collection, error) {
	c, ok := r.colls[t]
	if !ok {
		return nil, errors.Join(model.ErrValidation, fmt.Errorf("unknown entity type %q", t))
	}
	return c, nil
}

func (r *repository) Material(ctx context.Context, t model.EntityType, id string) (*model.Material, error) {
	const op = "repository.Material"

	coll, err := r.coll(t)
	if err != nil {
		return nil, err
	}

	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrMaterialNotFound
	}

	var ent MaterialEntity
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ent); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrMaterialNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return EntityToModel(t, &ent), nil
}

func (r *repository) List(ctx context.Context, t model.EntityType) ([]*model.Material, error) {
	const op = "repository.ListMaterials"

	coll, err := r.coll(t)
	if err != nil {
		return nil, err
	}

	cur, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if cerr := cur.Close(ctx); cerr != nil {
			logger.Warn(ctx, "failed to close cursor", logger.String("op", op), logger.ErrorF(cerr))
		}
	}()

	var ents []MaterialEntity
	if err := cur.All(ctx, &ents); err != nil {
		return nil, fmt.Errorf("%s decode: %w", op, err)
	}

	return lo.Map(ents, func(e MaterialEntity, _ int) *model.Material {
		return EntityToModel(t, &e)
	}), nil
}

// UpdateVariantPrice sets the unit price of one embedded variant and refreshes its timestamp.
func (r *repository) UpdateVariantPrice(
	ctx context.Context,
	t model.EntityType,
	materialID, variantID string,
	price float64,
	at time.Time,
) error {
	const op = "repository.UpdateVariantPrice"

	coll, err := r.coll(t)
	if err != nil {
		return err
	}

	oid, err := bson.ObjectIDFromHex(materialID)
	if err != nil {
		return model.ErrMaterialNotFound
	}
	vid, err := bson.ObjectIDFromHex(variantID)
	if err != nil {
		return model.ErrVariantNotFound
	}

	res, err := coll.UpdateOne(ctx,
		bson.M{"_id": oid, "variants._id": vid},
		bson.M{"$set": bson.M{
			"variants.$.unit_price":   price,
			"variants.$.last_updated": at,
			"updated_at":              at,
		}},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return model.ErrVariantNotFound
	}

	return nil
}

func (r *repository) Count(ctx context.Context, t model.EntityType) (int64, error) {
	const op = "repository.CountMaterials"

	coll, err := r.coll(t)
	if err != nil {
		return 0, err
	}

	n, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func (r *repository) CreateBatch(ctx context.Context, t model.EntityType, materials []*model.Material) error {
	const op = "repository.CreateMaterials"

	coll, err := r.coll(t)
	if err != nil {
		return err
	}

	docs := make([]any, 0, len(materials))
	for _, m := range materials {
		if m == nil {
			continue
		}
		if m.CreatedAt == nil || m.CreatedAt.IsZero() {
			m.CreatedAt = lo.ToPtr(time.Now())
		}

		ent, err := EntityFromModel(m)
		if err != nil {
			return errors.Join(model.ErrValidation, fmt.Errorf("%s: %w", op, err))
		}
		m.ID = ent.ID.Hex()
		for i := range m.Variants {
			m.Variants[i].ID = ent.Variants[i].ID.Hex()
		}

		docs = append(docs, ent)
	}
	if len(docs) == 0 {
		return nil
	}

	if _, err := coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) EnsureIndexes(ctx context.Context) error {
	const op = "repository.EnsureMaterialIndexes"

	for t, coll := range r.colls {
		_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "variants._id", Value: 1}},
			Options: options.Index().SetName("variants_id"),
		})
		if err != nil {
			return fmt.Errorf("%s %s: %w", op, t, err)
		}
	}

	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/you-humble/jewelry-pricing/internal/model"
	"github.com/you-humble/jewelry-pricing/platform/logger"
)

type repository struct {
	coll *mongo.Collection
}

func NewProductRepository(collection *mongo.Collection) *repository {
	return &repository{coll: collection}
}

func (r *repository) ProductByID(ctx context.Context, id string) (*model.Product, error) {
	const op = "repository.ProductByID"

	var ent ProductEntity
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ent); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	p, err := EntityToModel(&ent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, p *model.Product) error {
	const op = "repository.CreateProduct"

	if p.ID == "" {
		return fmt.Errorf("%s: product ID is empty", op)
	}

	if _, err := r.coll.InsertOne(ctx, EntityFromModel(p)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.ErrProductConflict
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) Replace(ctx context.Context, p *model.Product) error {
	const op = "repository.ReplaceProduct"

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, EntityFromModel(p))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.ErrProductConflict
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// ListByVariant returns products with a line of type t referencing (materialID, variantID),
// whatever shape the stored material reference has.
func (r *repository) ListByVariant(
	ctx context.Context,
	t model.EntityType,
	materialID, variantID string,
) ([]*model.Product, error) {
	const op = "repository.ListByVariant"

	cur, err := r.coll.Find(ctx, variantFilter(t, materialID, variantID),
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if cerr := cur.Close(ctx); cerr != nil {
			logger.Warn(ctx, "failed to close cursor", logger.String("op", op), logger.ErrorF(cerr))
		}
	}()

	out := make([]*model.Product, 0)
	for cur.Next(ctx) {
		var ent ProductEntity
		if err := cur.Decode(&ent); err != nil {
			return nil, fmt.Errorf("%s decode: %w", op, err)
		}

		p, err := EntityToModel(&ent)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, p)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s cursor: %w", op, err)
	}

	return out, nil
}

// UpdatePricing persists composition lines and derived price fields only,
// leaving operator-authored fields untouched.
func (r *repository) UpdatePricing(ctx context.Context, p *model.Product) error {
	const op = "repository.UpdatePricing"

	ent := EntityFromModel(p)
	updatedAt := time.Now()
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	set := bson.M{
		"metals":                ent.Metals,
		"gemstones":             ent.Gemstones,
		"metal_total":           ent.MetalTotal,
		"gemstone_total":        ent.GemstoneTotal,
		"making_charge_amount":  ent.MakingChargeAmount,
		"wastage_charge_amount": ent.WastageChargeAmount,
		"other_charges_total":   ent.OtherChargesTotal,
		"subtotal":              ent.Subtotal,
		"gst_amount":            ent.GSTAmount,
		"total_price":           ent.TotalPrice,
		"per_line_wastage":      ent.PerLineWastage,
		"updated_at":            updatedAt,
	}
	if p.LastPriceSync != nil {
		set["last_price_sync"] = *p.LastPriceSync
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

func (r *repository) EnsureIndexes(ctx context.Context) error {
	const op = "repository.EnsureProductIndexes"

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "metals.variant_id", Value: 1}},
			Options: options.Index().SetName("metals_variant"),
		},
		{
			Keys:    bson.D{{Key: "gemstones.variant_id", Value: 1}},
			Options: options.Index().SetName("gemstones_variant"),
		},
		{
			Keys: bson.D{{Key: "sku", Value: 1}},
			Options: options.Index().
				SetName("sku_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"sku": bson.M{"$type": "string"}}),
		},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

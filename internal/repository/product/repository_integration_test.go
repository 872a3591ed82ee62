//go:build integration

package repository_test

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/you-humble/jewelry-pricing/internal/model"
	"github.com/you-humble/jewelry-pricing/internal/pricing"
	historyrepo "github.com/you-humble/jewelry-pricing/internal/repository/history"
	materialrepo "github.com/you-humble/jewelry-pricing/internal/repository/material"
	productrepo "github.com/you-humble/jewelry-pricing/internal/repository/product"
	syncsvc "github.com/you-humble/jewelry-pricing/internal/service/pricesync"
)

type materialStore interface {
	syncsvc.MaterialRepository
	materialrepo.Seeder
}

func materialRepo() materialStore {
	return materialrepo.NewMaterialRepository(metalsColl, gemstonesColl)
}

func rawProduct(id string, metalRef, variantID any, weight, pricePerGram float64) bson.M {
	return bson.M{
		"_id":  id,
		"name": gofakeit.ProductName(),
		"metals": bson.A{bson.M{
			"metal":          metalRef,
			"variant_id":     variantID,
			"variant_name":   "22K Gold",
			"weight":         weight,
			"price_per_gram": pricePerGram,
			"subtotal":       weight * pricePerGram,
		}},
		"gemstones":      bson.A{},
		"making_charge":  bson.M{"type": "percentage", "value": 10.0},
		"gst_percentage": 3.0,
	}
}

var _ = Describe("Pricing repositories", Ordered, func() {
	var (
		gold     *model.Material
		goldOID  bson.ObjectID
		v22, v18 model.Variant
		v22OID   bson.ObjectID
	)

	BeforeEach(func() {
		cleanCollections()

		gold = &model.Material{
			Name: "Gold",
			Variants: []model.Variant{
				{Name: "22K Gold", Purity: "91.6%", UnitPrice: 6200, Unit: model.UnitGram},
				{Name: "18K Gold", Purity: "75%", UnitPrice: 5100, Unit: model.UnitGram},
			},
		}
		Expect(materialRepo().CreateBatch(ctx, model.EntityTypeMetal, []*model.Material{gold})).To(Succeed())

		var err error
		goldOID, err = bson.ObjectIDFromHex(gold.ID)
		Expect(err).NotTo(HaveOccurred())
		v22, v18 = gold.Variants[0], gold.Variants[1]
		v22OID, err = bson.ObjectIDFromHex(v22.ID)
		Expect(err).NotTo(HaveOccurred())

		_, err = productsColl.InsertMany(ctx, []any{
			rawProduct("p-hex", gold.ID, v22.ID, 5, 6200),
			rawProduct("p-oid", goldOID, v22OID, 8, 6200),
			rawProduct("p-populated", bson.M{"_id": goldOID, "name": "Gold"}, v22.ID, 10, 6200),
			rawProduct("p-other-variant", goldOID, v18.ID, 4, 5100),
		})
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("product repository", func() {
		It("matches every stored reference shape of a variant", func() {
			products, err := productrepo.NewProductRepository(productsColl).
				ListByVariant(ctx, model.EntityTypeMetal, gold.ID, v22.ID)
			Expect(err).NotTo(HaveOccurred())

			ids := make([]string, 0, len(products))
			for _, p := range products {
				ids = append(ids, p.ID)
				Expect(p.Metals[0].Material.ID).To(Equal(gold.ID))
				Expect(p.Metals[0].VariantID).To(Equal(v22.ID))
			}
			Expect(ids).To(ConsistOf("p-hex", "p-oid", "p-populated"))
		})

		It("does not match gemstone lines for a metal variant", func() {
			products, err := productrepo.NewProductRepository(productsColl).
				ListByVariant(ctx, model.EntityTypeGemstone, gold.ID, v22.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(products).To(BeEmpty())
		})

		It("rejects a duplicate sku and a replace of an unknown product", func() {
			repo := productrepo.NewProductRepository(productsColl)
			sku := "RNG-" + gofakeit.DigitN(6)

			Expect(repo.Create(ctx, &model.Product{ID: gofakeit.UUID(), Name: "a", SKU: sku})).To(Succeed())
			Expect(repo.Create(ctx, &model.Product{ID: gofakeit.UUID(), Name: "b", SKU: sku})).
				To(MatchError(model.ErrProductConflict))

			Expect(repo.Replace(ctx, &model.Product{ID: "missing", Name: "x"})).
				To(MatchError(model.ErrProductNotFound))
		})
	})

	Describe("material repository", func() {
		It("updates only the addressed variant", func() {
			at := time.Now().UTC().Truncate(time.Millisecond)
			Expect(materialRepo().UpdateVariantPrice(ctx, model.EntityTypeMetal, gold.ID, v22.ID, 6450.5, at)).To(Succeed())

			got, err := materialRepo().Material(ctx, model.EntityTypeMetal, gold.ID)
			Expect(err).NotTo(HaveOccurred())

			v, ok := got.Variant(v22.ID)
			Expect(ok).To(BeTrue())
			Expect(v.UnitPrice).To(Equal(6450.5))
			Expect(v.LastUpdated).NotTo(BeNil())
			Expect(v.LastUpdated.Equal(at)).To(BeTrue())

			other, _ := got.Variant(v18.ID)
			Expect(other.UnitPrice).To(Equal(5100.0))
		})

		It("reports unknown material and variant", func() {
			Expect(materialRepo().UpdateVariantPrice(ctx, model.EntityTypeMetal, gold.ID, bson.NewObjectID().Hex(), 1, time.Now())).
				To(MatchError(model.ErrVariantNotFound))
			Expect(materialRepo().UpdateVariantPrice(ctx, model.EntityTypeMetal, "not-an-id", v22.ID, 1, time.Now())).
				To(MatchError(model.ErrMaterialNotFound))

			_, err := materialRepo().Material(ctx, model.EntityTypeGemstone, gold.ID)
			Expect(err).To(MatchError(model.ErrMaterialNotFound))
		})
	})

	Describe("price synchronization", func() {
		It("reprices every matching product and records one history entry", func() {
			products := productrepo.NewProductRepository(productsColl)
			history := historyrepo.NewHistoryRepository(historyColl)
			svc := syncsvc.NewPriceSyncService(materialRepo(), products, history, nil, nil, 5*time.Second, 5*time.Second)

			res, err := svc.Synchronize(ctx, model.SyncParams{
				EntityType: model.EntityTypeMetal,
				EntityID:   gold.ID,
				VariantID:  v22.ID,
				NewPrice:   6500,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.SyncedProducts).To(Equal(3))
			Expect(res.Failed()).To(BeEmpty())
			Expect(res.OldPrice).To(Equal(6200.0))

			for _, id := range []string{"p-hex", "p-oid", "p-populated"} {
				p, err := products.ProductByID(ctx, id)
				Expect(err).NotTo(HaveOccurred())
				Expect(p.Metals[0].PricePerGram).To(Equal(6500.0))
				Expect(p.Pricing).To(Equal(pricing.Compute(p.PriceInput())))
				Expect(p.LastPriceSync).NotTo(BeNil())
			}

			populated, err := products.ProductByID(ctx, "p-populated")
			Expect(err).NotTo(HaveOccurred())
			Expect(populated.Metals[0].Material.Name).To(Equal("Gold"))

			untouched, err := products.ProductByID(ctx, "p-other-variant")
			Expect(err).NotTo(HaveOccurred())
			Expect(untouched.Metals[0].PricePerGram).To(Equal(5100.0))
			Expect(untouched.LastPriceSync).To(BeNil())

			entries, err := history.List(ctx, model.HistoryFilter{EntityType: model.EntityTypeMetal, EntityID: gold.ID, Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].AffectedProducts).To(Equal(3))
			Expect(entries[0].NewPrice).To(Equal(6500.0))
			Expect(entries[0].Unit).To(Equal(model.UnitGram))
		})
	})

	Describe("history repository", func() {
		It("lists newest first within the limit", func() {
			repo := historyrepo.NewHistoryRepository(historyColl)
			base := time.Now().UTC().Truncate(time.Millisecond)

			for i := range 3 {
				Expect(repo.Append(ctx, model.PriceHistoryEntry{
					ID:         gofakeit.UUID(),
					EntityType: model.EntityTypeMetal,
					EntityID:   gold.ID,
					VariantID:  v22.ID,
					NewPrice:   float64(6200 + i),
					CreatedAt:  base.Add(time.Duration(i) * time.Minute),
				})).To(Succeed())
			}

			entries, err := repo.List(ctx, model.HistoryFilter{EntityID: gold.ID, Limit: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(2))
			Expect(entries[0].NewPrice).To(Equal(6202.0))
			Expect(entries[1].NewPrice).To(Equal(6201.0))
		})
	})

	Describe("material bootstrap", func() {
		It("seeds only empty collections and is idempotent", func() {
			repo := materialRepo()

			Expect(materialrepo.MaterialsBootstrap(ctx, repo)).To(Succeed())
			Expect(materialrepo.MaterialsBootstrap(ctx, repo)).To(Succeed())

			metals, err := repo.Count(ctx, model.EntityTypeMetal)
			Expect(err).NotTo(HaveOccurred())
			Expect(metals).To(Equal(int64(1)))

			gems, err := repo.Count(ctx, model.EntityTypeGemstone)
			Expect(err).NotTo(HaveOccurred())
			Expect(gems).To(Equal(int64(2)))
		})
	})
})

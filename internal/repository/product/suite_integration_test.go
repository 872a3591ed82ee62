//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	historyrepo "github.com/you-humble/jewelry-pricing/internal/repository/history"
	materialrepo "github.com/you-humble/jewelry-pricing/internal/repository/material"
	productrepo "github.com/you-humble/jewelry-pricing/internal/repository/product"
	"github.com/you-humble/jewelry-pricing/platform/logger"
	tcmongo "github.com/you-humble/jewelry-pricing/platform/testcontainers/mongo"
	tcnetwork "github.com/you-humble/jewelry-pricing/platform/testcontainers/network"
)

// ```bash
// go test -tags integration ./internal/repository/...
// ```

const (
	projectName = "jewelry_pricing_it"
	mongoImage  = "mongo:8.0"
	mongoDB     = "jewelry_it"
)

var (
	ctx context.Context

	net    *tcnetwork.Network
	mongoC *tcmongo.Container

	metalsColl, gemstonesColl, productsColl, historyColl *mongo.Collection
)

func TestIntegration(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Pricing Repository Integration Suite")
}

var _ = BeforeSuite(func() {
	ctx = context.Background()
	gofakeit.Seed(0)
	logger.SetNopLogger()

	By("creating isolated docker network")
	var err error
	net, err = tcnetwork.New(ctx, projectName)
	Expect(err).NotTo(HaveOccurred())

	By("starting mongo container")
	mongoC, err = tcmongo.NewContainer(ctx,
		tcmongo.WithNetworkName(net.Name()),
		tcmongo.WithImageName(mongoImage),
		tcmongo.WithDatabase(mongoDB),
		tcmongo.WithAuth("jewelry_admin", "jw123_Pass"),
	)
	Expect(err).NotTo(HaveOccurred())

	db := mongoC.Database()
	metalsColl = db.Collection("metals")
	gemstonesColl = db.Collection("gemstones")
	productsColl = db.Collection("products")
	historyColl = db.Collection("price_history")

	By("creating indexes")
	Expect(materialrepo.NewMaterialRepository(metalsColl, gemstonesColl).EnsureIndexes(ctx)).To(Succeed())
	Expect(productrepo.NewProductRepository(productsColl).EnsureIndexes(ctx)).To(Succeed())
	Expect(historyrepo.NewHistoryRepository(historyColl).EnsureIndexes(ctx)).To(Succeed())
})

var _ = AfterSuite(func() {
	sdCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if mongoC != nil {
		Expect(mongoC.Terminate(sdCtx)).To(Succeed())
	}
	if net != nil {
		Expect(net.Remove(sdCtx)).To(Succeed())
	}
})

func cleanCollections() {
	for _, c := range []*mongo.Collection{metalsColl, gemstonesColl, productsColl, historyColl} {
		_, err := c.DeleteMany(ctx, bson.M{})
		Expect(err).NotTo(HaveOccurred())
	}
}

package mongo

import (
	"context"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/you-humble/jewelry-pricing/platform/logger"
)

const (
	mongoPort           = "27017"
	mongoStartupTimeout = 1 * time.Minute

	mongoEnvUsernameKey = "MONGO_INITDB_ROOT_USERNAME"
	mongoEnvPasswordKey = "MONGO_INITDB_ROOT_PASSWORD" //nolint:gosec
	mongoEnvDatabaseKey = "MONGO_INITDB_DATABASE"
)

type Container struct {
	container testcontainers.Container
	client    *mongo.Client
	cfg       *Config
}

func NewContainer(ctx context.Context, opts ...Option) (*Container, error) {
	cfg := buildConfig(opts...)

	c, err := startMongoContainer(ctx, cfg)
	if err != nil {
		return nil, err
	}

	success := false
	defer func() {
		if !success {
			if err := c.Terminate(ctx); err != nil {
				cfg.Logger.Error(ctx, "failed to terminate mongo container", logger.ErrorF(err))
			}
		}
	}()

	cfg.Host, cfg.Port, err = containerHostPort(ctx, c)
	if err != nil {
		return nil, err
	}

	client, err := connectMongoClient(ctx, buildMongoURI(cfg))
	if err != nil {
		return nil, err
	}

	cfg.Logger.Info(ctx, "mongo container started",
		logger.String("host", cfg.Host),
		logger.String("port", cfg.Port),
	)
	success = true

	return &Container{
		container: c,
		client:    client,
		cfg:       cfg,
	}, nil
}

func (c *Container) Client() *mongo.Client {
	return c.client
}

func (c *Container) Database() *mongo.Database {
	return c.client.Database(c.cfg.Database)
}

func (c *Container) Config() *Config {
	return c.cfg
}

func (c *Container) Terminate(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil {
		c.cfg.Logger.Error(ctx, "failed to disconnect mongo client", logger.ErrorF(err))
	}

	if err := c.container.Terminate(ctx); err != nil {
		c.cfg.Logger.Error(ctx, "failed to terminate mongo container", logger.ErrorF(err))
		return err
	}

	c.cfg.Logger.Info(ctx, "mongo container terminated")

	return nil
}

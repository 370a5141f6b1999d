package container

import (
	"context"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mfund-labs/mf-backend/config"
	"github.com/mfund-labs/mf-backend/internal/application"
	"github.com/mfund-labs/mf-backend/internal/infrastructure/googleauth"
	"github.com/mfund-labs/mf-backend/internal/infrastructure/mongodb"
	"github.com/mfund-labs/mf-backend/internal/infrastructure/notification"
	"github.com/mfund-labs/mf-backend/internal/infrastructure/search"
	"github.com/mfund-labs/mf-backend/pkg/helpers"
)

// Container holds the components shared across modules. It is built once in
// main; the router wires handlers from it.
type Container struct {
	Cfg    *config.Config
	Logger *logrus.Logger

	Store *mongodb.Store
	Redis *redis.Client // nil when REDIS_ADDR is empty or unreachable
	JWT   *helpers.JWTManager

	RabbitPub *helpers.RabbitPublisher // nil when mail sending is off
	ES        *elasticsearch.Client    // nil when ELASTICSEARCH_ADDRS is empty

	Notifier   application.Notifier
	GoogleAuth *application.GoogleAuthService

	queue *notification.QueueNotifier
}

// New connects the required infrastructure (MongoDB, JWT) and the optional
// one (Redis, RabbitMQ, Elasticsearch). Optional components that fail to
// come up are logged and left nil.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{Cfg: cfg, Logger: logger}

	jwtManager, err := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("jwt: %w", err)
	}
	c.JWT = jwtManager

	c.Store = mongodb.NewStore(cfg.DatabaseURL, cfg.DatabaseName())
	if err := c.Store.Connect(ctx, cfg.MongoConnectTimeout); err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	logger.WithField("database", cfg.DatabaseName()).Info("connected to mongodb")

	if cfg.RedisAddr != "" {
		rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.WithError(err).Warn("redis unavailable, rate limiting disabled")
		} else {
			c.Redis = rdb
		}
	}

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch client init failed, user indexing disabled")
		} else {
			c.ES = es
		}
	}

	c.Notifier = notification.LogNotifier{Logger: logger}
	if cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable, welcome emails will only be logged")
		} else {
			c.RabbitPub = pub
			c.queue = notification.NewQueueNotifier(pub, cfg, logger)
			c.Notifier = c.queue
		}
	}

	if !cfg.GoogleConfigured() {
		logger.Error("GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET missing, google sign-in will fail")
	}
	var indexer application.UserIndexer
	if c.ES != nil {
		indexer = search.NewUserIndexer(c.ES, cfg.ESUsersIndex)
	}
	c.GoogleAuth = application.NewGoogleAuthService(
		mongodb.NewUserRepository(c.Store),
		mongodb.NewRefreshTokenRepository(c.Store),
		googleauth.NewProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI),
		c.JWT,
		c.Notifier,
		indexer,
		logger,
		cfg.FrontendURL,
	)
	return c, nil
}

// Close drains pending notifications then releases connections.
func (c *Container) Close(ctx context.Context) {
	if c.queue != nil {
		c.queue.Wait()
	}
	c.RabbitPub.Close()
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.Store != nil {
		if err := c.Store.Close(ctx); err != nil {
			c.Logger.WithError(err).Warn("mongodb disconnect failed")
		}
	}
}

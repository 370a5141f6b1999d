package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection         = "users"
	refreshTokensCollection = "refresh_tokens"
)

var errNotConnected = errors.New("mongodb: store not connected")

// Store owns the client connection pool. It is built once in main and
// handed to the repositories; Close must be called on shutdown.
type Store struct {
	uri    string
	dbName string
	client *mongo.Client
	db     *mongo.Database
}

func NewStore(uri, dbName string) *Store {
	return &Store{uri: uri, dbName: dbName}
}

// NewStoreFromDatabase wraps an already connected database.
func NewStoreFromDatabase(db *mongo.Database) *Store {
	return &Store{dbName: db.Name(), client: db.Client(), db: db}
}

// Connect dials the cluster and pings the primary within timeout.
func (s *Store) Connect(ctx context.Context, timeout time.Duration) error {
	if s.db != nil {
		return nil
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.uri))
	if err != nil {
		return err
	}
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return err
	}
	s.client = client
	s.db = client.Database(s.dbName)
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if s.client == nil {
		return errNotConnected
	}
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) DB() *mongo.Database { return s.db }

func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	err := s.client.Disconnect(ctx)
	s.client, s.db = nil, nil
	return err
}

func (s *Store) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// Migrate applies the index migrations in dir against the store's database,
// including when the URI itself names none.
func (s *Store) Migrate(dir string, logger *logrus.Logger) error {
	if s.uri == "" {
		return errors.New("mongodb: store has no connection uri to migrate")
	}
	dsn, err := migrationURL(s.uri, s.dbName)
	if err != nil {
		return err
	}
	return RunMigrations(dsn, dir, logger)
}

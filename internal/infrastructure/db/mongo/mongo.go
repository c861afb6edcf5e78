package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/cohost-ai/rental-api/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

const (
	collectionUsers      = "users"
	collectionProperties = "properties"
	collectionLedger     = "ledger"
	collectionCounters   = "counters"
)

type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Store is an open connection to the rental database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects to cfg.URI and pings the primary before returning.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("mongo: database name is empty")
	}

	openCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName("rentald").
		SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(openCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	s := &Store{client: client, db: client.Database(cfg.Database)}
	if err := s.Ping(openCtx); err != nil {
		_ = client.Disconnect(openCtx)
		return nil, err
	}
	return s, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Bootstrap creates the indexes and inserts the seed catalog when the
// properties collection is empty. It is safe to run on every start.
func (s *Store) Bootstrap(ctx context.Context, seed []domain.Property) error {
	if err := EnsureIndexes(ctx, s.db); err != nil {
		return err
	}
	return s.Properties().Seed(ctx, seed)
}

func (s *Store) Users() *UserRepository          { return NewUserRepository(s.db) }
func (s *Store) Properties() *PropertyRepository { return NewPropertyRepository(s.db) }
func (s *Store) Ledger() *LedgerRepository       { return NewLedgerRepository(s.db) }

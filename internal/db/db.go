package db

import (
	"context"
	"fmt"

	"github.com/babylonlabs-io/staking-reward-ledger/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Database struct {
	dbName string
	client *mongo.Client
}

func New(ctx context.Context, cfg config.DbConfig) (*Database, error) {
	credential := options.Credential{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	clientOps := options.Client().ApplyURI(cfg.Address).SetAuth(credential)
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return nil, err
	}

	return &Database{
		dbName: cfg.DbName,
		client: client,
	}, nil
}

// Open returns the backend selected by cfg.Type.
func Open(ctx context.Context, cfg config.DbConfig) (DbInterface, error) {
	switch cfg.Type {
	case config.DbTypeMongo:
		db, err := New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.DbTypeBadger:
		db, err := NewBadger(cfg)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported db type %q", cfg.Type)
	}
}

func (db *Database) Ping(ctx context.Context) error {
	return db.client.Ping(ctx, nil)
}

func (db *Database) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

func (db *Database) collection(name string) *mongo.Collection {
	return db.client.Database(db.dbName).Collection(name)
}

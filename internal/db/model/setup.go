package model

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/babylonlabs-io/staking-reward-ledger/internal/config"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ConfigCollection       = "config"
	StakersCollection      = "stakers"
	ContractInfoCollection = "contract_info"
)

type index struct {
	Indexes map[string]int
	Unique  bool
}

var collections = map[string][]index{
	ConfigCollection:       {{Indexes: map[string]int{}}},
	ContractInfoCollection: {{Indexes: map[string]int{}}},
	StakersCollection: {
		{Indexes: map[string]int{"records.owner_address": 1}, Unique: false},
	},
}

// Setup creates the collections and indexes used by the ledger.
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	credential := options.Credential{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	clientOps := options.Client().ApplyURI(cfg.Address).SetAuth(credential)
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to disconnect mongo client after setup")
		}
	}()

	database := client.Database(cfg.DbName)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	existing, err := database.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	for collection, indexes := range collections {
		if !slices.Contains(existing, collection) {
			if err := database.CreateCollection(ctx, collection); err != nil {
				return fmt.Errorf("failed to create collection %s: %w", collection, err)
			}
		}

		for _, idx := range indexes {
			if len(idx.Indexes) == 0 {
				continue
			}
			if err := createIndex(ctx, database, collection, idx); err != nil {
				return err
			}
		}
	}

	log.Ctx(ctx).Info().Msg("Collections and indexes created successfully.")
	return nil
}

func createIndex(ctx context.Context, database *mongo.Database, collectionName string, idx index) error {
	keys := bson.D{}
	for field, order := range idx.Indexes {
		keys = append(keys, bson.E{Key: field, Value: order})
	}

	indexModel := mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetUnique(idx.Unique),
	}

	if _, err := database.Collection(collectionName).Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("failed to create index on %s: %w", collectionName, err)
	}

	return nil
}

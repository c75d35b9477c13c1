package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/babylonlabs-io/staking-reward-ledger/internal/db/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *Database) GetConfig(ctx context.Context) (*model.ConfigDocument, error) {
	filter := bson.M{"_id": model.ConfigDocumentID}
	res := db.collection(model.ConfigCollection).FindOne(ctx, filter)

	var doc model.ConfigDocument
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     model.ConfigDocumentID,
				Message: "config not found",
			}
		}
		return nil, err
	}

	return &doc, nil
}

func (db *Database) SaveConfig(ctx context.Context, cfg *model.ConfigDocument) error {
	cfg.ID = model.ConfigDocumentID
	filter := bson.M{"_id": model.ConfigDocumentID}

	_, err := db.collection(model.ConfigCollection).
		ReplaceOne(ctx, filter, cfg, options.Replace().SetUpsert(true))
	return err
}

func (db *Database) UpdateConfig(ctx context.Context, fn func(cfg *model.ConfigDocument) error) error {
	doc, err := db.GetConfig(ctx)
	if err != nil {
		return err
	}

	if err := fn(doc); err != nil {
		return err
	}

	doc.ID = model.ConfigDocumentID
	filter := bson.M{"_id": model.ConfigDocumentID}
	res, err := db.collection(model.ConfigCollection).ReplaceOne(ctx, filter, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{
			Key:     model.ConfigDocumentID,
			Message: "config not found",
		}
	}

	return nil
}

// Initialize writes contract info first and inserts the config last, so a
// config only exists once both are stored. Standalone mongo has no
// transactions: a failed config insert removes the contract info again.
func (db *Database) Initialize(ctx context.Context, info *model.ContractInfoDocument, cfg *model.ConfigDocument) error {
	if _, err := db.GetConfig(ctx); err == nil {
		return configExistsError()
	} else if !IsNotFoundError(err) {
		return err
	}

	if err := db.SaveContractInfo(ctx, info); err != nil {
		return err
	}

	cfg.ID = model.ConfigDocumentID
	if _, err := db.collection(model.ConfigCollection).InsertOne(ctx, cfg); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// a concurrent instantiate won, its contract info stays
			return configExistsError()
		}

		filter := bson.M{"_id": model.ContractInfoDocumentID}
		if _, delErr := db.collection(model.ContractInfoCollection).DeleteOne(ctx, filter); delErr != nil {
			return errors.Join(err, fmt.Errorf("failed to roll back contract info: %w", delErr))
		}
		return err
	}

	return nil
}

func configExistsError() error {
	return &DuplicateKeyError{
		Key:     model.ConfigDocumentID,
		Message: "config already exists",
	}
}

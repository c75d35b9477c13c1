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

func (db *Database) GetStaker(ctx context.Context, address string) (*model.StakerDocument, error) {
	filter := bson.M{"_id": address}
	res := db.collection(model.StakersCollection).FindOne(ctx, filter)

	var doc model.StakerDocument
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     address,
				Message: "staker not found",
			}
		}
		return nil, err
	}

	return &doc, nil
}

func (db *Database) SaveStaker(ctx context.Context, staker *model.StakerDocument) error {
	if staker.Records == nil {
		staker.Records = []model.StakeRecordDocument{}
	}

	filter := bson.M{"_id": staker.Address}
	_, err := db.collection(model.StakersCollection).
		ReplaceOne(ctx, filter, staker, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save staker %s: %w", staker.Address, err)
	}

	return nil
}

func (db *Database) IterateStakers(ctx context.Context, fn func(staker *model.StakerDocument) error) error {
	cursor, err := db.collection(model.StakersCollection).Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc model.StakerDocument
		if err := cursor.Decode(&doc); err != nil {
			return err
		}
		if err := fn(&doc); err != nil {
			return err
		}
	}

	return cursor.Err()
}

package db

import (
	"context"
	"errors"

	"github.com/babylonlabs-io/staking-reward-ledger/internal/db/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *Database) GetContractInfo(ctx context.Context) (*model.ContractInfoDocument, error) {
	filter := bson.M{"_id": model.ContractInfoDocumentID}
	res := db.collection(model.ContractInfoCollection).FindOne(ctx, filter)

	var doc model.ContractInfoDocument
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     model.ContractInfoDocumentID,
				Message: "contract info not found",
			}
		}
		return nil, err
	}

	return &doc, nil
}

func (db *Database) SaveContractInfo(ctx context.Context, info *model.ContractInfoDocument) error {
	info.ID = model.ContractInfoDocumentID
	filter := bson.M{"_id": model.ContractInfoDocumentID}

	_, err := db.collection(model.ContractInfoCollection).
		ReplaceOne(ctx, filter, info, options.Replace().SetUpsert(true))
	return err
}

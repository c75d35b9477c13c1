package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/babylonlabs-io/staking-reward-ledger/internal/config"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/db/model"
	"github.com/dgraph-io/badger/v4"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	configKey       = []byte(model.ConfigDocumentID)
	contractInfoKey = []byte(model.ContractInfoDocumentID)
	stakerKeyPrefix = []byte(model.StakersCollection + "/")
)

// BadgerDatabase is an embedded DbInterface. Documents are stored bson
// encoded, the same representation the mongo backend persists.
type BadgerDatabase struct {
	db *badger.DB
}

// NewBadger opens the badger store in cfg.DataDir, or in memory when the
// directory is empty.
func NewBadger(cfg config.DbConfig) (*BadgerDatabase, error) {
	opts := badger.DefaultOptions(cfg.DataDir).
		WithLogger(newBadgerLogger()).
		WithLoggingLevel(badger.WARNING)
	if cfg.DataDir == "" {
		opts = opts.WithInMemory(true)
	}

	bdb, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	return &BadgerDatabase{db: bdb}, nil
}

func stakerKey(address string) []byte {
	key := make([]byte, 0, len(stakerKeyPrefix)+len(address))
	key = append(key, stakerKeyPrefix...)
	return append(key, address...)
}

func (b *BadgerDatabase) Ping(_ context.Context) error {
	if b.db.IsClosed() {
		return errors.New("badger db is closed")
	}
	return nil
}

func (b *BadgerDatabase) Close(_ context.Context) error {
	return b.db.Close()
}

func (b *BadgerDatabase) GetConfig(_ context.Context) (*model.ConfigDocument, error) {
	var doc model.ConfigDocument
	err := b.db.View(func(txn *badger.Txn) error {
		return getDocument(txn, configKey, &doc, "config not found")
	})
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

func (b *BadgerDatabase) SaveConfig(_ context.Context, cfg *model.ConfigDocument) error {
	cfg.ID = model.ConfigDocumentID
	return b.db.Update(func(txn *badger.Txn) error {
		return setDocument(txn, configKey, cfg)
	})
}

func (b *BadgerDatabase) Initialize(_ context.Context, info *model.ContractInfoDocument, cfg *model.ConfigDocument) error {
	info.ID = model.ContractInfoDocumentID
	cfg.ID = model.ConfigDocumentID
	return b.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(configKey); err == nil {
			return configExistsError()
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if err := setDocument(txn, contractInfoKey, info); err != nil {
			return err
		}
		return setDocument(txn, configKey, cfg)
	})
}

// UpdateConfig runs the whole read-modify-write inside one badger
// transaction, nothing is committed if fn fails.
func (b *BadgerDatabase) UpdateConfig(_ context.Context, fn func(cfg *model.ConfigDocument) error) error {
	return b.db.Update(func(txn *badger.Txn) error {
		var doc model.ConfigDocument
		if err := getDocument(txn, configKey, &doc, "config not found"); err != nil {
			return err
		}

		if err := fn(&doc); err != nil {
			return err
		}

		doc.ID = model.ConfigDocumentID
		return setDocument(txn, configKey, &doc)
	})
}

func (b *BadgerDatabase) GetStaker(_ context.Context, address string) (*model.StakerDocument, error) {
	var doc model.StakerDocument
	err := b.db.View(func(txn *badger.Txn) error {
		return getDocument(txn, stakerKey(address), &doc, "staker not found")
	})
	if err != nil {
		return nil, err
	}
	if doc.Records == nil {
		doc.Records = []model.StakeRecordDocument{}
	}

	return &doc, nil
}

func (b *BadgerDatabase) SaveStaker(_ context.Context, staker *model.StakerDocument) error {
	if staker.Address == "" {
		return errors.New("staker address is empty")
	}
	if staker.Records == nil {
		staker.Records = []model.StakeRecordDocument{}
	}

	return b.db.Update(func(txn *badger.Txn) error {
		return setDocument(txn, stakerKey(staker.Address), staker)
	})
}

func (b *BadgerDatabase) IterateStakers(ctx context.Context, fn func(staker *model.StakerDocument) error) error {
	return b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = stakerKeyPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}

			var doc model.StakerDocument
			if err := bson.Unmarshal(val, &doc); err != nil {
				return fmt.Errorf("failed to decode staker %s: %w", it.Item().Key(), err)
			}
			if err := fn(&doc); err != nil {
				return err
			}
		}

		return nil
	})
}

func (b *BadgerDatabase) GetContractInfo(_ context.Context) (*model.ContractInfoDocument, error) {
	var doc model.ContractInfoDocument
	err := b.db.View(func(txn *badger.Txn) error {
		return getDocument(txn, contractInfoKey, &doc, "contract info not found")
	})
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

func (b *BadgerDatabase) SaveContractInfo(_ context.Context, info *model.ContractInfoDocument) error {
	info.ID = model.ContractInfoDocumentID
	return b.db.Update(func(txn *badger.Txn) error {
		return setDocument(txn, contractInfoKey, info)
	})
}

func getDocument(txn *badger.Txn, key []byte, out any, notFoundMsg string) error {
	item, err := txn.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return &NotFoundError{
				Key:     string(key),
				Message: notFoundMsg,
			}
		}
		return err
	}

	val, err := item.ValueCopy(nil)
	if err != nil {
		return err
	}

	return bson.Unmarshal(val, out)
}

func setDocument(txn *badger.Txn, key []byte, doc any) error {
	val, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	return txn.Set(key, val)
}

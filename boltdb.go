package main

import (
	"encoding/json"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
)

var playersBucket = []byte("players")

type boltdb struct {
	db *bolt.DB
}

func NewBoltDB(filename string) (store, error) {
	db, err := bolt.Open(filename, 0600, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", filename)
	}

	return &boltdb{db: db}, nil
}

func (b *boltdb) Close() error {
	return errors.Wrap(b.db.Close(), "unable to close database")
}

func (b *boltdb) load() ([]player, error) {
	var players []player
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(playersBucket)
		if bucket == nil {
			return nil
		}

		return errors.Wrap(bucket.ForEach(func(k, v []byte) error {
			var p player
			if err := json.Unmarshal(v, &p); err != nil {
				return errors.Wrap(err, "unable to unmarshal player")
			}
			players = append(players, p)
			return nil
		}), "unable to get bucket contents")
	})
	if err != nil {
		return nil, err
	}

	return players, nil
}

func (b *boltdb) save(players []player) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(playersBucket) != nil {
			if err := tx.DeleteBucket(playersBucket); err != nil {
				return errors.Wrap(err, "unable to reset bucket")
			}
		}
		bucket, err := tx.CreateBucket(playersBucket)
		if err != nil {
			return errors.Wrap(err, "unable to create bucket")
		}

		for _, p := range players {
			data, err := json.Marshal(p)
			if err != nil {
				return errors.Wrap(err, "unable to marshal player into json")
			}
			if err := bucket.Put([]byte(p.key()), data); err != nil {
				return errors.Wrap(err, "error puting player")
			}
		}

		return nil
	})

	return errors.Wrap(err, "unable to save players")
}

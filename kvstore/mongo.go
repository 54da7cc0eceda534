package kvstore

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore is a Store backed by a single MongoDB collection with the
// logical key as the document _id. Prefix scans use an anchored regex over
// _id, which Mongo serves from the _id index.
type MongoStore struct {
	collection *mongo.Collection
}

type kvDocument struct {
	Key   string `bson:"_id"`
	Value []byte `bson:"value"`
}

func NewMongoStore(collection *mongo.Collection) *MongoStore {
	return &MongoStore{collection: collection}
}

func (s *MongoStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc kvDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return doc.Value, true, nil
}

func (s *MongoStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.collection.ReplaceOne(
		ctx,
		bson.M{"_id": key},
		kvDocument{Key: key, Value: value},
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) Delete(ctx context.Context, key string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

func (s *MongoStore) GetByPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	filter := bson.M{"_id": bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)}}
	cursor, err := s.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []Entry
	for cursor.Next(ctx) {
		var doc kvDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Key: doc.Key, Value: doc.Value})
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

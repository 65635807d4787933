package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoStore maps each Collection onto a MongoDB collection of the same name.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// OpenMongo connects, pings and ensures the natural-key indexes exist.
func OpenMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	store := &MongoStore{client: client, db: client.Database(database)}
	if err := store.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return store, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	for _, c := range AllCollections {
		_, err := s.db.Collection(c.Name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: c.Key, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("creating %s.%s index: %w", c.Name, c.Key, err)
		}
	}
	secondary := map[string]string{Orders.Name: "mobile", Managers.Name: "phone"}
	for name, field := range secondary {
		_, err := s.db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: field, Value: 1}},
		})
		if err != nil {
			return fmt.Errorf("creating %s.%s index: %w", name, field, err)
		}
	}
	return nil
}

func (s *MongoStore) Insert(ctx context.Context, c Collection, _ string, doc any) error {
	_, err := s.db.Collection(c.Name).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("inserting into %s: %w", c.Name, err)
	}
	return nil
}

func (s *MongoStore) Upsert(ctx context.Context, c Collection, key string, doc any) error {
	_, err := s.db.Collection(c.Name).ReplaceOne(ctx, bson.M{c.Key: key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upserting into %s: %w", c.Name, err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, c Collection, key string, out any) error {
	err := s.db.Collection(c.Name).FindOne(ctx, bson.M{c.Key: key}).Decode(out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("getting %s/%s: %w", c.Name, key, err)
	}
	return nil
}

func (s *MongoStore) Find(ctx context.Context, c Collection, filter Filter, out any) error {
	query := bson.M{}
	for field, value := range filter {
		query[field] = value
	}
	// ObjectIDs grow with insertion time.
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := s.db.Collection(c.Name).Find(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("querying %s: %w", c.Name, err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("decoding %s: %w", c.Name, err)
	}
	return nil
}

func (s *MongoStore) Merge(ctx context.Context, c Collection, key string, fields map[string]any) error {
	set := bson.M{}
	for field, value := range fields {
		set[field] = value
	}
	result, err := s.db.Collection(c.Name).UpdateOne(ctx, bson.M{c.Key: key}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("updating %s/%s: %w", c.Name, key, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, c Collection, key string) error {
	result, err := s.db.Collection(c.Name).DeleteOne(ctx, bson.M{c.Key: key})
	if err != nil {
		return fmt.Errorf("deleting %s/%s: %w", c.Name, key, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

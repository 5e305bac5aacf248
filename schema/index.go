package schema

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBIndexer struct {
	ctx      context.Context
	dbName   string
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDBIndexer(connectionString, dbName string) *MongoDBIndexer {
	ctx := context.Background()
	opts := options.Client().ApplyURI(connectionString)
	client, err := mongo.NewClient(opts)
	if err != nil {
		panic(err)
	}
	if err := client.Connect(ctx); err != nil {
		panic(err)
	}

	return &MongoDBIndexer{
		ctx:      ctx,
		dbName:   dbName,
		Client:   client,
		Database: client.Database(dbName),
	}
}

func (m *MongoDBIndexer) createIndex(collection string, index mongo.IndexModel) error {
	c := m.Database.Collection(collection)
	_, err := c.Indexes().CreateOne(m.ctx, index)
	return err
}

func panicIfError(err error) {
	if err != nil {
		panic(err)
	}
}

func (m *MongoDBIndexer) IndexAll() {
	panicIfError(m.IndexRequestCollection())
	panicIfError(m.IndexHelplineCollection())
}

// IndexRequestCollection creates the indexes backing the request feed:
// the global timestamp ordering, the per-session view and the status view.
func (m *MongoDBIndexer) IndexRequestCollection() error {
	if err := m.createIndex(RequestCollection, mongo.IndexModel{
		Keys: bson.D{
			{Key: "ts", Value: -1},
			{Key: "_id", Value: -1},
		},
	}); err != nil {
		return err
	}

	if err := m.createIndex(RequestCollection, mongo.IndexModel{
		Keys: bson.D{
			{Key: "session_id", Value: 1},
			{Key: "ts", Value: -1},
		},
	}); err != nil {
		return err
	}

	return m.createIndex(RequestCollection, mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "ts", Value: -1},
		},
	})
}

func (m *MongoDBIndexer) IndexHelplineCollection() error {
	if err := m.createIndex(HelplineCollection, mongo.IndexModel{
		Keys: bson.M{
			"district": 1,
		},
	}); err != nil {
		return err
	}

	return m.createIndex(HelplineCollection, mongo.IndexModel{
		Keys: bson.M{
			"is_state_wide": 1,
		},
	})
}

package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mobicorp/storefront/internal/core/ports"
)

const (
	mongoDialTimeout = 10 * time.Second
	tokenCollection  = "session_tokens"
)

// MongoConfig captures the settings required to establish a MongoDB connection.
type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// DialMongo connects, pings, and returns the client with its database.
func DialMongo(ctx context.Context, cfg MongoConfig) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = mongoDialTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

type tokenDocument struct {
	ID        string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Mongo keeps the token in a single document whose _id is "token".
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewMongo(client *mongo.Client, db *mongo.Database) *Mongo {
	return &Mongo{client: client, coll: db.Collection(tokenCollection)}
}

func (m *Mongo) Load(ctx context.Context) (string, error) {
	var doc tokenDocument
	err := m.coll.FindOne(ctx, bson.M{"_id": ports.TokenKey}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("mongo find token: %w", err)
	}
	return doc.Value, nil
}

func (m *Mongo) Save(ctx context.Context, token string) error {
	doc := tokenDocument{ID: ports.TokenKey, Value: token, UpdatedAt: time.Now().UTC()}
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": ports.TokenKey}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo save token: %w", err)
	}
	return nil
}

func (m *Mongo) Clear(ctx context.Context) error {
	if _, err := m.coll.DeleteOne(ctx, bson.M{"_id": ports.TokenKey}); err != nil {
		return fmt.Errorf("mongo delete token: %w", err)
	}
	return nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

package mongodb

import (
	"context"
	"fmt"
	"os"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const TestURIEnv = "TEST_MONGO_URI"

func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("could not create mongo client: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("could not ping mongo: %w", err)
	}
	return client, nil
}

// CreateTestDatabase connects to TEST_MONGO_URI and returns a database with
// the given name. It returns nil when the variable is not set.
func CreateTestDatabase(name string) *mongo.Database {
	uri := os.Getenv(TestURIEnv)
	if uri == "" {
		return nil
	}
	client, err := Connect(context.Background(), uri)
	if err != nil {
		panic(fmt.Sprintf("Could not connect to the test mongo: %v", err))
	}
	return client.Database(name)
}

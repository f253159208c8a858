package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDB struct {
	Client   *mongo.Client
	URL      string
	Database string
	Timeout  time.Duration
}

func NewMongoDB(url, database string, timeout time.Duration) *MongoDB {
	return &MongoDB{URL: url, Database: database, Timeout: timeout}
}

// Connect dials the server and pings it within Timeout.
func (m *MongoDB) Connect(ctx context.Context) error {
	if m.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.Timeout)
		defer cancel()
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.URL))
	if err != nil {
		return fmt.Errorf("mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("mongo: ping: %w", err)
	}
	m.Client = client
	return nil
}

// DB returns the application database handle.
func (m *MongoDB) DB() *mongo.Database {
	return m.Client.Database(m.Database)
}

func (m *MongoDB) Disconnect() error {
	if m.Client == nil {
		return nil
	}
	return m.Client.Disconnect(context.Background())
}

package db

import "context"

type DBType string

const (
	Postgres DBType = "postgres"
	Mongo    DBType = "mongo"
	Memory   DBType = "memory"
)

// DB is a connection that the server opens at start-up and closes on exit.
type DB interface {
	Connect(ctx context.Context) error
	Disconnect() error
}

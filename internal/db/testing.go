package db

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"
)

const TestURLEnv = "TEST_POSTGRESQL_URL"

// CreateTestPool connects to the database named by TEST_POSTGRESQL_URL and
// applies migrations. It returns nil when the variable is not set.
func CreateTestPool() *pgxpool.Pool {
	connString := os.Getenv(TestURLEnv)
	if connString == "" {
		return nil
	}
	if err := ApplyMigrations(connString); err != nil {
		panic(err.Error())
	}
	pool, err := Connect(context.Background(), connString)
	if err != nil {
		panic(fmt.Sprintf("Could not connect to the test database: %v", err))
	}
	return pool
}

func TruncateTables(pool *pgxpool.Pool) {
	_, err := pool.Exec(context.Background(), "TRUNCATE \"user\"")
	if err != nil {
		panic("Could not truncate DB tables.")
	}
}

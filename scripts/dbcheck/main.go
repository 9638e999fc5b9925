package main

import (
	"context"
	"fmt"
	"os"

	"storefront/internal/config"

	"github.com/jackc/pgx/v5"
)

// Connects with the configured DB_* settings and reports the database name
// and the applied schema migrations.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.Database.ConnectionString())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	var dbName string
	err = conn.QueryRow(ctx, "SELECT current_database()").Scan(&dbName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully connected to database: %s\n", dbName)

	rows, err := conn.Query(ctx, "SELECT name FROM schema_migrations ORDER BY name")
	if err != nil {
		fmt.Println("No migrations applied yet")
		return
	}
	versions, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Reading migrations failed: %v\n", err)
		os.Exit(1)
	}
	for _, v := range versions {
		fmt.Printf("  applied: %s\n", v)
	}
}

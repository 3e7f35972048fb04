package sqlc

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"weather-search/pkg/resource"
)

// Open connects to the Postgres database described by the app.db properties and pings it
func Open(ctx context.Context) (*sql.DB, error) {
	host := resource.GetString("app.db.host")
	port := resource.GetString("app.db.port")
	password := resource.GetString("app.db.password")
	username := resource.GetString("app.db.username")
	database := resource.GetString("app.db.database")
	schema := resource.GetStringOrDefault("app.db.schema", "public")
	sslMode := resource.GetStringOrDefault("app.db.ssl-mode", "disable")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		host, port, username, password, database, sslMode, schema)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	db.SetMaxOpenConns(resource.GetIntOrDefault("app.db.max-open-conns", 20))
	db.SetMaxIdleConns(resource.GetIntOrDefault("app.db.max-idle-conns", 5))
	db.SetConnMaxLifetime(resource.GetDurationOrDefault("app.db.conn-max-lifetime", 30*time.Minute))

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	return db, nil
}

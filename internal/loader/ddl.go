package loader

import (
	"context"
	"fmt"
)

// column type names per provider. Everything else about the schema is shared.
type typeSet struct {
	id        string
	text      string
	money     string
	count     string
	timestamp string
}

var providerTypes = map[string]typeSet{
	"postgresql": {id: "TEXT PRIMARY KEY", text: "TEXT", money: "DOUBLE PRECISION", count: "INTEGER", timestamp: "TIMESTAMPTZ"},
	"mysql":      {id: "VARCHAR(64) PRIMARY KEY", text: "VARCHAR(255)", money: "DOUBLE", count: "INT", timestamp: "DATETIME(6)"},
	"sqlite":     {id: "TEXT PRIMARY KEY", text: "TEXT", money: "REAL", count: "INTEGER", timestamp: "TEXT"},
}

func typesFor(provider string) (typeSet, error) {
	switch provider {
	case "postgres":
		provider = "postgresql"
	case "sqlite3":
		provider = "sqlite"
	}
	ts, ok := providerTypes[provider]
	if !ok {
		return typeSet{}, fmt.Errorf("unsupported provider: %s", provider)
	}
	return ts, nil
}

// EnsureTables creates the four analytical tables if they are missing.
func (l *Loader) EnsureTables(ctx context.Context) error {
	ts, err := typesFor(l.provider)
	if err != nil {
		return err
	}

	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS customers (
			customer_id %s,
			email %s,
			name %s,
			segment %s,
			ltv %s,
			registration_date %s,
			created_at %s
		)`, ts.id, ts.text, ts.text, ts.text, ts.money, ts.timestamp, ts.timestamp),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS products (
			product_id %s,
			name %s,
			category %s,
			brand %s,
			price %s,
			launch_date %s,
			created_at %s
		)`, ts.id, ts.text, ts.text, ts.text, ts.money, ts.timestamp, ts.timestamp),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS transactions (
			transaction_id %s,
			customer_id %s,
			product_id %s,
			amount %s,
			quantity %s,
			timestamp %s,
			channel %s,
			status %s
		)`, ts.id, ts.text, ts.text, ts.money, ts.count, ts.timestamp, ts.text, ts.text),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS interactions (
			interaction_id %s,
			customer_id %s,
			product_id %s,
			type %s,
			timestamp %s,
			duration %s,
			device %s,
			session_id %s
		)`, ts.id, ts.text, ts.text, ts.text, ts.timestamp, ts.count, ts.text, ts.text),
	}

	for _, stmt := range stmts {
		if _, err := l.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

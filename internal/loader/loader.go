package loader

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/Lumos-Labs-HQ/relgen/internal/batch"
	"github.com/Lumos-Labs-HQ/relgen/internal/model"
	"github.com/fatih/color"
	"github.com/parquet-go/parquet-go"
)

// Loader is the bulk-loading collaborator: it reads every artifact under a
// table directory in sequence order and pushes the rows into an analytical
// SQL store. It consumes generated artifacts and owns no generation logic.
type Loader struct {
	db              *sql.DB
	provider        string
	insertBatchSize int
	retry           batch.Policy
}

// TableResult reports one table's load outcome. Failed files are a partial
// success, mirroring the writer's failed-batch semantics.
type TableResult struct {
	Table       string
	Rows        int64
	FailedFiles []string
}

func New(db *sql.DB, provider string, insertBatchSize int, retry batch.Policy) *Loader {
	if insertBatchSize <= 0 {
		insertBatchSize = 1000
	}
	return &Loader{db: db, provider: provider, insertBatchSize: insertBatchSize, retry: retry}
}

// OpenDB connects with the stdlib driver registered for the provider.
func OpenDB(provider, url string) (*sql.DB, error) {
	var driverName string
	switch provider {
	case "postgresql", "postgres":
		driverName = "pgx"
	case "mysql":
		driverName = "mysql"
	case "sqlite", "sqlite3":
		driverName = "sqlite3"
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}

	db, err := sql.Open(driverName, url)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (l *Loader) placeholder() sq.PlaceholderFormat {
	if l.provider == "postgresql" || l.provider == "postgres" {
		return sq.Dollar
	}
	return sq.Question
}

// LoadDir loads every known table from the data directory. Tables without
// artifacts are warned about and skipped; load failures are retried per file
// and never abort sibling tables.
func (l *Loader) LoadDir(ctx context.Context, dataDir string) ([]TableResult, error) {
	if err := l.EnsureTables(ctx); err != nil {
		return nil, err
	}

	var results []TableResult
	for _, table := range model.Tables {
		files, err := batch.Artifacts(dataDir, table)
		if err != nil || len(files) == 0 {
			color.Yellow("  no artifacts for %s, skipping", table)
			continue
		}
		color.Cyan("  loading %s from %d artifacts...", table, len(files))

		result := TableResult{Table: table}
		for _, file := range files {
			var rows int64
			err := l.retry.Do(func() error {
				var loadErr error
				rows, loadErr = l.loadFile(ctx, table, file)
				return loadErr
			})
			if err != nil {
				color.Yellow("  failed to load %s: %v", file, err)
				result.FailedFiles = append(result.FailedFiles, file)
				continue
			}
			result.Rows += rows
		}
		results = append(results, result)
	}
	return results, nil
}

func (l *Loader) loadFile(ctx context.Context, table, path string) (int64, error) {
	switch table {
	case model.TableCustomers:
		return insertFile(ctx, l, table, path, customerColumns, customerValues)
	case model.TableProducts:
		return insertFile(ctx, l, table, path, productColumns, productValues)
	case model.TableTransactions:
		return insertFile(ctx, l, table, path, transactionColumns, transactionValues)
	case model.TableInteractions:
		return insertFile(ctx, l, table, path, interactionColumns, interactionValues)
	default:
		return 0, fmt.Errorf("unknown table: %s", table)
	}
}

// insertFile reads one parquet artifact and inserts its rows in bounded
// multi-row statements.
func insertFile[T any](ctx context.Context, l *Loader, table, path string, columns []string, values func(*T) []any) (int64, error) {
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	builder := sq.StatementBuilder.PlaceholderFormat(l.placeholder())
	var inserted int64
	for start := 0; start < len(rows); start += l.insertBatchSize {
		end := start + l.insertBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		ins := builder.Insert(table).Columns(columns...)
		for i := start; i < end; i++ {
			ins = ins.Values(values(&rows[i])...)
		}
		query, args, err := ins.ToSql()
		if err != nil {
			return inserted, fmt.Errorf("failed to build insert for %s: %w", table, err)
		}
		if _, err := l.db.ExecContext(ctx, query, args...); err != nil {
			return inserted, fmt.Errorf("failed to insert into %s: %w", table, err)
		}
		inserted += int64(end - start)
	}
	return inserted, nil
}

var customerColumns = []string{"customer_id", "email", "name", "segment", "ltv", "registration_date", "created_at"}

func customerValues(c *model.Customer) []any {
	return []any{c.CustomerID, c.Email, c.Name, c.Segment, c.LTV, c.RegistrationDate, c.CreatedAt}
}

var productColumns = []string{"product_id", "name", "category", "brand", "price", "launch_date", "created_at"}

func productValues(p *model.Product) []any {
	return []any{p.ProductID, p.Name, p.Category, p.Brand, p.Price, p.LaunchDate, p.CreatedAt}
}

var transactionColumns = []string{"transaction_id", "customer_id", "product_id", "amount", "quantity", "timestamp", "channel", "status"}

func transactionValues(t *model.Transaction) []any {
	return []any{t.TransactionID, t.CustomerID, t.ProductID, t.Amount, t.Quantity, t.Timestamp, t.Channel, t.Status}
}

var interactionColumns = []string{"interaction_id", "customer_id", "product_id", "type", "timestamp", "duration", "device", "session_id"}

func interactionValues(i *model.Interaction) []any {
	return []any{i.InteractionID, i.CustomerID, i.ProductID, i.Type, i.Timestamp, i.Duration, i.Device, i.SessionID}
}

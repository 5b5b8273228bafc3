package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/vaibhaw-/VetGen/internal/vetgen/dataset"
	"github.com/vaibhaw-/VetGen/internal/vetgen/export"
	"github.com/vaibhaw-/VetGen/internal/vetgen/logger"
)

// pingTimeout bounds the connectivity check in Open.
const pingTimeout = 5 * time.Second

// BuildDSN constructs a DSN for postgres/mysql
func BuildDSN(driver, user, pass, host string, port int, db string) string {
	if driver == "postgres" {
		if port == 0 {
			port = 5432
		}
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable", user, pass, host, port, db)
	}
	if port == 0 {
		port = 3306
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&multiStatements=true", user, pass, host, port, db)
}

// Open connects to the database for dialect d and verifies the connection.
func Open(ctx context.Context, d export.Dialect, dsn string) (*sql.DB, error) {
	if _, err := export.ParseDialect(string(d)); err != nil {
		return nil, err
	}
	db, err := sql.Open(string(d), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d, err)
	}

	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", d, err)
	}
	return db, nil
}

// Load recreates the six tables and inserts the dataset in a single
// transaction. Nothing is committed if any statement fails.
func Load(ctx context.Context, db *sql.DB, d export.Dialect, ds *dataset.Dataset) (dataset.Counts, error) {
	if _, err := export.ParseDialect(string(d)); err != nil {
		return dataset.Counts{}, err
	}
	log := logger.L()
	tables := export.SQLTables(ds)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return dataset.Counts{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		// no-op after a successful Commit
		_ = tx.Rollback()
	}()

	if d == export.Postgres {
		if _, err := tx.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS vet"); err != nil {
			return dataset.Counts{}, fmt.Errorf("create schema: %w", err)
		}
	}
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := tx.ExecContext(ctx, export.DropTableSQL(d, tables[i])); err != nil {
			return dataset.Counts{}, fmt.Errorf("drop %s: %w", tables[i].Name, err)
		}
	}
	for _, t := range tables {
		if _, err := tx.ExecContext(ctx, export.CreateTableSQL(d, t)); err != nil {
			return dataset.Counts{}, fmt.Errorf("create %s: %w", t.Name, err)
		}
	}
	log.Debugw("Schema created", "dialect", d, "tables", len(tables))

	inserted := map[string]int{}
	for _, t := range tables {
		n, err := insertRows(ctx, tx, d, t)
		if err != nil {
			return dataset.Counts{}, err
		}
		inserted[t.Name] = n
		log.Debugw("Rows inserted", "table", d.TableName(t.Name), "rows", n)
	}

	if err := tx.Commit(); err != nil {
		return dataset.Counts{}, fmt.Errorf("commit: %w", err)
	}

	counts := dataset.Counts{
		Patients:          inserted["patient"],
		Visits:            inserted["visit"],
		ExamDefinitions:   inserted["exam_definition"],
		TestResults:       inserted["test_result"],
		QuestionTemplates: inserted["question_template"],
		Medications:       inserted["medication"],
	}
	log.Infow("Dataset loaded",
		"dialect", d,
		"patients", counts.Patients,
		"visits", counts.Visits,
		"test_results", counts.TestResults,
		"medications", counts.Medications)
	return counts, nil
}

func insertRows(ctx context.Context, tx *sql.Tx, d export.Dialect, t export.SQLTable) (int, error) {
	stmt, err := tx.PrepareContext(ctx, export.InsertSQL(d, t))
	if err != nil {
		return 0, fmt.Errorf("prepare insert %s: %w", t.Name, err)
	}
	defer stmt.Close()

	for i, row := range t.Rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return i, fmt.Errorf("insert %s row %d: %w", t.Name, i+1, err)
		}
	}
	return len(t.Rows), nil
}

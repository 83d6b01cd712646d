// Package store exports imported records into PostgreSQL.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/javajack/xlimport"
)

// DB is the subset of *pgxpool.Pool and pgx.Tx the store needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Import identifies one run of the import action.
type Import struct {
	ID         uuid.UUID
	Source     string
	ImportedAt time.Time
}

// NewImport creates an Import with a fresh random ID.
func NewImport(source string, at time.Time) Import {
	return Import{ID: uuid.New(), Source: source, ImportedAt: at.UTC()}
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS xlimport_imports (
    id          UUID PRIMARY KEY,
    source      TEXT NOT NULL,
    imported_at TIMESTAMPTZ NOT NULL,
    row_count   INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS xlimport_records (
    import_id    UUID NOT NULL REFERENCES xlimport_imports(id) ON DELETE CASCADE,
    row_no       INTEGER NOT NULL,
    ts           TIMESTAMP NOT NULL,
    energy       DOUBLE PRECISION NOT NULL,
    ac_power     DOUBLE PRECISION NOT NULL,
    grid_voltage DOUBLE PRECISION NOT NULL,
    ac_current   DOUBLE PRECISION NOT NULL,
    dc_voltage   DOUBLE PRECISION NOT NULL,
    PRIMARY KEY (import_id, row_no)
)`

const insertImportSQL = `INSERT INTO xlimport_imports (id, source, imported_at, row_count)
VALUES ($1,$2,$3,$4)
ON CONFLICT (id) DO UPDATE
SET source = EXCLUDED.source,
    imported_at = EXCLUDED.imported_at,
    row_count = EXCLUDED.row_count`

const insertRecordSQL = `INSERT INTO xlimport_records (import_id, row_no, ts, energy, ac_power, grid_voltage, ac_current, dc_voltage)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (import_id, row_no) DO UPDATE
SET ts = EXCLUDED.ts,
    energy = EXCLUDED.energy,
    ac_power = EXCLUDED.ac_power,
    grid_voltage = EXCLUDED.grid_voltage,
    ac_current = EXCLUDED.ac_current,
    dc_voltage = EXCLUDED.dc_voltage`

const deleteStaleRecordsSQL = `DELETE FROM xlimport_records WHERE import_id = $1 AND row_no > $2`

// EnsureSchema creates the export tables if they do not exist.
func EnsureSchema(ctx context.Context, db DB) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// SaveImport writes the import row and all records in one batch. Saving
// the same Import again replaces its rows, including dropping rows past the
// end of a shorter record set.
func SaveImport(ctx context.Context, db DB, imp Import, records []xlimport.Record) error {
	batch := &pgx.Batch{}
	batch.Queue(insertImportSQL, imp.ID, imp.Source, imp.ImportedAt, len(records))
	batch.Queue(deleteStaleRecordsSQL, imp.ID, len(records))
	for i, r := range records {
		batch.Queue(insertRecordSQL, imp.ID, i+1, r.Date, r.Energy, r.ACPower, r.GridVoltage, r.ACCurrent, r.DCVoltage)
	}

	res := db.SendBatch(ctx, batch)
	defer res.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := res.Exec(); err != nil {
			return fmt.Errorf("save import %s (statement %d): %w", imp.ID, i, err)
		}
	}
	return nil
}

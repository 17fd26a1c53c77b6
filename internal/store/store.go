// Package store persists parsed variants and sample records to DuckDB, the
// way the donor's internal/duckdb package cached annotation results:
// append-only writes through the Appender API, queried back with plain SQL.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection holding the variants and samples
// tables this core writes.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at path. An empty path opens an
// in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for callers that need direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS variants (
		chrom VARCHAR,
		pos BIGINT,
		ref VARCHAR,
		alt VARCHAR,
		variant_type VARCHAR,
		start_pos BIGINT,
		end_pos BIGINT,
		global_major_allele VARCHAR,
		has_global_major BOOLEAN,
		PRIMARY KEY (chrom, pos, ref, alt)
	)`); err != nil {
		return err
	}

	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS samples (
		chrom VARCHAR,
		pos BIGINT,
		ref VARCHAR,
		alt VARCHAR,
		sample_index INTEGER,
		genotype VARCHAR,
		genotype_quality INTEGER,
		total_depth INTEGER,
		allele_depth_ref INTEGER,
		allele_depth_alt INTEGER,
		variant_frequency DOUBLE,
		failed_filter BOOLEAN,
		is_loss_of_heterozygosity BOOLEAN,
		PRIMARY KEY (chrom, pos, ref, alt, sample_index)
	)`)
	return err
}

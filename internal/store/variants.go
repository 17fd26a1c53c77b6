package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/varcore/varcore/internal/sample"
	"github.com/varcore/varcore/internal/variant"
)

// VariantRecord is one row of the variants table: a constructed Variant
// plus the chrom/pos/ref/alt identity a query looks it up by.
type VariantRecord struct {
	Chrom string
	Pos   int64
	Ref   string
	Alt   string
	V     *variant.Variant
}

// SampleRecord is one row of the samples table: a parsed Sample tied back
// to the variant it was extracted alongside.
type SampleRecord struct {
	Chrom       string
	Pos         int64
	Ref         string
	Alt         string
	SampleIndex int
	S           *sample.Sample
}

type variantKey struct {
	chrom, ref, alt string
	pos             int64
}

// WriteVariants batch-inserts variant records using the Appender API,
// deduplicating by (chrom, pos, ref, alt) — the same primary key the
// donor's WriteVariantResults deduplicated on before appending.
func (s *Store) WriteVariants(records []VariantRecord) error {
	if len(records) == 0 {
		return nil
	}

	seen := make(map[variantKey]bool, len(records))
	deduped := make([]VariantRecord, 0, len(records))
	for _, r := range records {
		k := variantKey{r.Chrom, r.Ref, r.Alt, r.Pos}
		if !seen[k] {
			seen[k] = true
			deduped = append(deduped, r)
		}
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "variants")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, r := range deduped {
		v := r.V
		if err := appender.AppendRow(
			r.Chrom, r.Pos, r.Ref, r.Alt, string(v.Type),
			v.Start, v.End, v.GlobalMajorAllele, v.HasGlobalMajor,
		); err != nil {
			return fmt.Errorf("append variant: %w", err)
		}
	}
	return appender.Flush()
}

// WriteSamples batch-inserts sample records using the Appender API.
func (s *Store) WriteSamples(records []SampleRecord) error {
	if len(records) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "samples")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, r := range records {
		sm := r.S
		var adRef, adAlt *int
		if len(sm.AlleleDepths) == 2 {
			adRef, adAlt = &sm.AlleleDepths[0], &sm.AlleleDepths[1]
		}
		if err := appender.AppendRow(
			r.Chrom, r.Pos, r.Ref, r.Alt, int32(r.SampleIndex),
			sm.Genotype, sm.GenotypeQuality, sm.TotalDepth,
			adRef, adAlt, sm.VariantFrequency,
			sm.FailedFilter, sm.IsLossOfHeterozygosity,
		); err != nil {
			return fmt.Errorf("append sample: %w", err)
		}
	}
	return appender.Flush()
}

// ClearVariants removes all rows from both tables, in a single statement
// per table since DuckDB lacks multi-table DELETE.
func (s *Store) ClearVariants() error {
	if _, err := s.db.Exec("DELETE FROM samples"); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM variants")
	return err
}

// LookupVariant returns the stored variant at (chrom, pos, ref, alt), or
// nil if none is stored.
func (s *Store) LookupVariant(chrom string, pos int64, ref, alt string) (*VariantRecord, error) {
	row := s.db.QueryRow(`SELECT variant_type, start_pos, end_pos, global_major_allele, has_global_major
		FROM variants WHERE chrom=? AND pos=? AND ref=? AND alt=?`, chrom, pos, ref, alt)

	var vtype, globalMajor string
	var start, end int64
	var hasGlobalMajor bool
	if err := row.Scan(&vtype, &start, &end, &globalMajor, &hasGlobalMajor); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup variant: %w", err)
	}

	return &VariantRecord{
		Chrom: chrom, Pos: pos, Ref: ref, Alt: alt,
		V: &variant.Variant{
			Type: variant.VariantType(vtype), Start: start, End: end,
			GlobalMajorAllele: globalMajor, HasGlobalMajor: hasGlobalMajor,
		},
	}, nil
}

// SamplesForVariant returns every sample row recorded for a variant, in
// sample_index order.
func (s *Store) SamplesForVariant(chrom string, pos int64, ref, alt string) ([]SampleRecord, error) {
	rows, err := s.db.Query(`SELECT sample_index, genotype, genotype_quality, total_depth,
		allele_depth_ref, allele_depth_alt, variant_frequency, failed_filter, is_loss_of_heterozygosity
		FROM samples WHERE chrom=? AND pos=? AND ref=? AND alt=? ORDER BY sample_index`,
		chrom, pos, ref, alt)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	var out []SampleRecord
	for rows.Next() {
		var idx int
		var genotype *string
		var gq, td, adRef, adAlt *int
		var vf *float64
		var failedFilter, isLOH bool
		if err := rows.Scan(&idx, &genotype, &gq, &td, &adRef, &adAlt, &vf, &failedFilter, &isLOH); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		sm := &sample.Sample{
			Genotype: genotype, GenotypeQuality: gq, TotalDepth: td,
			VariantFrequency: vf, FailedFilter: failedFilter, IsLossOfHeterozygosity: isLOH,
		}
		if adRef != nil && adAlt != nil {
			sm.AlleleDepths = []int{*adRef, *adAlt}
		}
		out = append(out, SampleRecord{Chrom: chrom, Pos: pos, Ref: ref, Alt: alt, SampleIndex: idx, S: sm})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate samples: %w", err)
	}
	return out, nil
}
